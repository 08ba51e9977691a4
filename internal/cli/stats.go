package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/i474232898/mood-tracker/internal/client"
	"github.com/i474232898/mood-tracker/internal/mood"
)

var (
	statsJSON bool
	statsToon bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mood counts for the last 7 days",
	Long: `Count logged moods per category over the last 7 days.
Moods outside the known set are not counted.

Examples:
  moodctl stats
  moodctl stats --json
  moodctl stats --toon`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&statsToon, "toon", false, "Output in LLM-friendly toon format")
}

type moodCount struct {
	Mood  mood.Mood `json:"mood"`
	Count int       `json:"count"`
}

func runStats(cmd *cobra.Command, args []string) error {
	ctrl := newController()
	ctrl.Refresh(cmdContext(cmd))
	view := ctrl.View()

	out := cmd.OutOrStdout()
	if view.HistoryError != "" {
		return fmt.Errorf("unable to load mood stats")
	}

	counts := make([]moodCount, 0, len(mood.KnownMoods))
	for _, m := range mood.KnownMoods {
		counts = append(counts, moodCount{Mood: m, Count: view.Stats.Count(m)})
	}

	switch {
	case statsJSON:
		return writeJSON(out, counts)
	case statsToon:
		return writeToon(out, counts)
	}

	fmt.Fprintln(out, "Last 7 days")
	fmt.Fprintln(out, "━━━━━━━━━━━")
	for _, c := range counts {
		fmt.Fprintf(out, "%s %-9s %d\n", client.EmojiFor(c.Mood), c.Mood, c.Count)
	}
	return nil
}
