package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"

	"github.com/i474232898/mood-tracker/internal/client"
	"github.com/i474232898/mood-tracker/internal/mood"
)

var (
	historyJSON bool
	historyToon bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your 10 most recent moods",
	Long: `Show the 10 most recent mood entries, newest first.

Examples:
  moodctl history
  moodctl history --json
  moodctl history --toon`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")
	historyCmd.Flags().BoolVar(&historyToon, "toon", false, "Output in LLM-friendly toon format")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctrl := newController()
	ctrl.Refresh(cmdContext(cmd))
	view := ctrl.View()

	out := cmd.OutOrStdout()
	if view.HistoryError != "" {
		fmt.Fprintln(out, view.HistoryError)
		return nil
	}

	switch {
	case historyJSON:
		return writeJSON(out, view.History)
	case historyToon:
		return writeToon(out, view.History)
	}

	if view.EmptyMessage != "" {
		fmt.Fprintln(out, view.EmptyMessage)
		return nil
	}
	for _, item := range view.History {
		printItem(out, item)
	}
	return nil
}

func printHistoryLine(w io.Writer, e mood.Entry) {
	items := client.BuildHistory([]mood.Entry{e}, time.Now())
	if len(items) > 0 {
		printItem(w, items[0])
	}
}

func printItem(w io.Writer, item client.HistoryItem) {
	fmt.Fprintf(w, "%s %-9s %s\n", item.Emoji, item.Mood, item.When)
	if item.Note != "" {
		fmt.Fprintf(w, "   %q\n", item.Note)
	}
	if item.Weather != "" {
		fmt.Fprintf(w, "   🌤️ %s\n", item.Weather)
	}
}

func writeJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(output))
	return nil
}

func writeToon(w io.Writer, v any) error {
	output, err := gotoon.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode Toon: %w", err)
	}
	fmt.Fprintln(w, output)
	return nil
}
