package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/i474232898/mood-tracker/internal/mood"
)

var logNote string

var logCmd = &cobra.Command{
	Use:   "log <mood>",
	Short: "Log a mood with an optional note",
	Long: `Log a mood. The current weather is looked up first and stored with the entry.

Moods: happy, excited, neutral, sad, stressed

Examples:
  moodctl log happy
  moodctl log stressed --note "release day"`,
	Args: cobra.ExactArgs(1),
	RunE: runLog,
}

func init() {
	rootCmd.AddCommand(logCmd)

	logCmd.Flags().StringVarP(&logNote, "note", "n", "", "optional note")
}

func runLog(cmd *cobra.Command, args []string) error {
	m := mood.Mood(strings.ToLower(strings.TrimSpace(args[0])))
	if !m.IsKnown() {
		return fmt.Errorf("unknown mood %q (choose one of %s)", m, knownMoodList())
	}

	ctx := cmdContext(cmd)
	ctrl := newController()
	ctrl.LoadWeather(ctx)

	if err := ctrl.Select(m); err != nil {
		return err
	}
	ctrl.SetNote(logNote)

	entry, err := ctrl.Submit(ctx)
	if err != nil {
		if n := ctrl.State().Notice; n != nil {
			return fmt.Errorf("%s: %w", n.Message, err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if n := ctrl.View().State.Notice; n != nil {
		fmt.Fprintln(out, n.Message)
	}
	printHistoryLine(out, entry)
	return nil
}

func knownMoodList() string {
	names := make([]string, 0, len(mood.KnownMoods))
	for _, m := range mood.KnownMoods {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}
