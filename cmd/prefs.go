package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/grauman/grauman/color"
	"github.com/grauman/grauman/constant"
	"github.com/grauman/grauman/grauman"
	"github.com/grauman/grauman/preference"
	"github.com/grauman/grauman/style"
	"github.com/grauman/grauman/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var errStorageDisabled = errors.New("preference storage is disabled, see storage.enabled")

var prefsSettings = []string{
	preference.Volume,
	preference.Muted,
	preference.Loop,
	preference.PlaybackSpeed,
	preference.ViewMode,
}

func completionPrefsSettings(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return prefsSettings, cobra.ShellCompDirectiveNoFileComp
}

// prefsStore opens the configured store under the --namespace flag.
func prefsStore(cmd *cobra.Command) (*preference.Store, error) {
	store := preference.FromConfig()
	if !store.Available() {
		return nil, errStorageDisabled
	}
	return store.Namespace(lo.Must(cmd.Flags().GetString("namespace"))), nil
}

// parsePreference validates raw the way the players would accept it.
func parsePreference(setting, raw string) (any, error) {
	switch setting {
	case preference.Volume:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 1 {
			return nil, fmt.Errorf("volume must be a number between 0 and 1, got %q", raw)
		}
		return v, nil
	case preference.Muted, preference.Loop:
		return strconv.ParseBool(raw)
	case preference.PlaybackSpeed:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || !lo.Contains(constant.PlaybackSpeeds, v) {
			return nil, fmt.Errorf("playback speed must be one of %v, got %q", constant.PlaybackSpeeds, raw)
		}
		return v, nil
	case preference.ViewMode:
		return grauman.ParseViewMode(raw)
	default:
		return nil, fmt.Errorf("unknown setting %s, available: %v", style.Fg(color.Red)(setting), prefsSettings)
	}
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.PersistentFlags().StringP("namespace", "n", "", "Preference namespace, the storage.base_key config when empty")
}

var prefsCmd = &cobra.Command{
	Use:     "prefs",
	Aliases: []string{"preferences"},
	Short:   "Inspect and edit stored playback preferences",
}

func init() {
	prefsCmd.AddCommand(prefsListCmd)
	prefsListCmd.Flags().BoolP("json", "j", false, "Print as json")
}

var prefsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored preferences",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := prefsStore(cmd)
		handleErr(err)

		all := store.All()
		if lo.Must(cmd.Flags().GetBool("json")) {
			lo.Must0(json.NewEncoder(cmd.OutOrStdout()).Encode(all))
			return
		}

		names := lo.Keys(all)
		sort.Strings(names)

		cmd.Println(style.Faint(fmt.Sprintf("%s in %s", util.Quantify(len(names), "preference", "preferences"), store.BaseKey())))
		for _, name := range names {
			cmd.Printf("%s %s\n", style.Fg(color.Purple)(name), style.Fg(color.Yellow)(string(all[name])))
		}
	},
}

func init() {
	prefsCmd.AddCommand(prefsGetCmd)
}

var prefsGetCmd = &cobra.Command{
	Use:               "get setting",
	Short:             "Print a stored preference",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionPrefsSettings,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := prefsStore(cmd)
		handleErr(err)

		raw, ok := store.Get(args[0]).Get()
		if !ok {
			handleErr(fmt.Errorf("%s is not stored", args[0]))
		}
		cmd.Println(string(raw))
	},
}

func init() {
	prefsCmd.AddCommand(prefsSetCmd)
}

var prefsSetCmd = &cobra.Command{
	Use:               "set setting value",
	Short:             "Store a preference",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completionPrefsSettings,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := prefsStore(cmd)
		handleErr(err)

		value, err := parsePreference(args[0], args[1])
		handleErr(err)

		store.Set(args[0], value)
		success("set %s to %s", style.Fg(color.Purple)(args[0]), style.Fg(color.Yellow)(fmt.Sprint(value)))
	},
}

func init() {
	prefsCmd.AddCommand(prefsResetCmd)
	prefsResetCmd.Flags().StringP("setting", "s", "", "Only reset this setting")
	prefsResetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
	_ = prefsResetCmd.RegisterFlagCompletionFunc("setting", completionPrefsSettings)
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove stored preferences",
	Run: func(cmd *cobra.Command, args []string) {
		store, err := prefsStore(cmd)
		handleErr(err)

		if setting := lo.Must(cmd.Flags().GetString("setting")); setting != "" {
			store.Remove(setting)
			success("reset %s", style.Fg(color.Purple)(setting))
			return
		}

		if !lo.Must(cmd.Flags().GetBool("yes")) && !confirm(fmt.Sprintf("Remove every preference in %s?", store.BaseKey())) {
			return
		}

		store.Reset()
		success("reset all preferences in %s", store.BaseKey())
	},
}
