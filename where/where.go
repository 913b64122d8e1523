// Package where resolves the filesystem locations used by grauman.
package where

import (
	"os"
	"path/filepath"

	"github.com/grauman/grauman/constant"
	"github.com/grauman/grauman/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the default configuration directory.
const EnvConfigPath = "GRAUMAN_CONFIG_PATH"

func mkdir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config returns the configuration directory, honouring GRAUMAN_CONFIG_PATH.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return mkdir(custom)
	}

	base, err := os.UserConfigDir()
	if err != nil {
		base = filepath.Join(".", "config")
	}
	return mkdir(filepath.Join(base, constant.Grauman))
}

// Logs returns the directory holding daily log files.
func Logs() string {
	return mkdir(filepath.Join(Config(), "logs"))
}

// Preferences returns the file persisting user playback preferences.
func Preferences() string {
	return filepath.Join(Config(), "preferences.json")
}

// Cache returns the directory holding short-lived cached data.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return mkdir(filepath.Join(Config(), "cache"))
	}
	return mkdir(filepath.Join(base, constant.Grauman))
}

// History returns the file recording playback positions of the terminal player.
func History() string {
	return filepath.Join(Config(), "history.json")
}
