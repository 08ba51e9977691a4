package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var weatherCmd = &cobra.Command{
	Use:   "weather [place]",
	Short: "Show the current weather",
	Long: `Show the weather the next entry would be logged with.
Without a place the configured location (or weather.default_place) is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWeather,
}

func init() {
	rootCmd.AddCommand(weatherCmd)
}

func runWeather(cmd *cobra.Command, args []string) error {
	ctx := cmdContext(cmd)
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		snap, err := newAPI().Weather(ctx, args[0])
		if err != nil {
			return fmt.Errorf("weather lookup failed: %w", err)
		}
		fmt.Fprintf(out, "%d°C, %s in %s\n", snap.Temp, snap.Description, snap.City)
		return nil
	}

	snap := newController().LoadWeather(ctx)
	fmt.Fprintf(out, "%d°C, %s in %s\n", snap.Temp, snap.Description, snap.City)
	return nil
}
