package version

import (
	"fmt"

	"github.com/grauman/grauman/color"
	"github.com/grauman/grauman/constant"
	"github.com/grauman/grauman/icon"
	"github.com/grauman/grauman/key"
	"github.com/grauman/grauman/log"
	"github.com/grauman/grauman/style"
	"github.com/grauman/grauman/util"
	"github.com/spf13/viper"
)

// Notify prints a notice when a newer release than the running one exists.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking for a new version...", icon.Get(icon.Loading)))
	latest, err := Latest()
	erase()
	if err != nil {
		log.Warnf("version check failed: %s", err)
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint(ReleaseURL(latest)),
	)
}

// ReleaseURL is the page of the given release.
func ReleaseURL(version string) string {
	return "https://github.com/grauman/grauman/releases/tag/v" + version
}
