package cmd

import (
	"fmt"
	"strings"

	"github.com/grauman/grauman/icon"
	"github.com/grauman/grauman/util"
	"github.com/grauman/grauman/where"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
)

type clearTarget struct {
	name     string
	argLong  string
	argShort mo.Option[string]
	location func() string
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", mo.Some("c"), where.Cache},
	{"logs directory", "logs", mo.Some("l"), where.Logs},
	{"preferences file", "preferences", mo.Some("p"), where.Preferences},
	{"history file", "history", mo.Some("H"), where.History},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	for _, target := range clearTargets {
		help := fmt.Sprintf("clear %s", target.name)
		if target.argShort.IsPresent() {
			clearCmd.Flags().BoolP(target.argLong, target.argShort.MustGet(), false, help)
		} else {
			clearCmd.Flags().Bool(target.argLong, false, help)
		}
	}
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete cached data, logs or stored preferences",
	Run: func(cmd *cobra.Command, args []string) {
		targets := lo.Filter(clearTargets, func(t clearTarget, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(t.argLong))
		})

		if len(targets) == 0 {
			handleErr(cmd.Help())
			return
		}

		names := lo.Map(targets, func(t clearTarget, _ int) string { return t.name })
		if !lo.Must(cmd.Flags().GetBool("yes")) && !confirm(fmt.Sprintf("Delete the %s?", strings.Join(names, ", "))) {
			return
		}

		for _, target := range targets {
			name := util.Capitalize(target.name)
			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Loading), name))
			err := util.Delete(target.location())
			erase()
			handleErr(err)
			success("%s cleared", name)
		}
	},
}
