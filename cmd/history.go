package cmd

import (
	"encoding/json"
	"sort"

	"github.com/grauman/grauman/color"
	"github.com/grauman/grauman/history"
	"github.com/grauman/grauman/style"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolP("json", "j", false, "Print as json")
	historyCmd.Flags().IntP("limit", "n", 0, "Only show the most recent entries")
}

var historyCmd = &cobra.Command{
	Use:   "history [query]",
	Short: "Show what was played and where it stopped",
	Long:  "Show what was played and where it stopped, optionally only titles or URLs fuzzily matching query.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		saved, err := history.Get()
		handleErr(err)

		entries := lo.Values(saved)
		if len(args) == 1 {
			entries = lo.Filter(entries, func(e *history.Entry, _ int) bool {
				return fuzzy.MatchFold(args[0], e.Title) || fuzzy.MatchFold(args[0], e.URL)
			})
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
		})
		if limit := lo.Must(cmd.Flags().GetInt("limit")); limit > 0 && limit < len(entries) {
			entries = entries[:limit]
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			lo.Must0(json.NewEncoder(cmd.OutOrStdout()).Encode(entries))
			return
		}

		for _, entry := range entries {
			cmd.Printf("%s %s\n", style.Fg(color.Purple)(entry.String()), style.Faint(entry.URL))
		}
	},
}

func init() {
	historyCmd.AddCommand(historyRemoveCmd)
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove url...",
	Short: "Forget recorded positions",
	Args:  cobra.MinimumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		saved, err := history.Get()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return lo.Keys(saved), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		for _, url := range args {
			handleErr(history.Remove(url))
			success("removed %s", url)
		}
	},
}
