package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/grauman/grauman/color"
	"github.com/grauman/grauman/constant"
	"github.com/grauman/grauman/key"
	"github.com/grauman/grauman/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field is a registered configuration entry.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty renders the field for `grauman config info`.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable bound to the field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Grauman + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON includes both the current and the default value.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	default:
		return "unknown"
	}
}

// Default holds every registered field by key.
var Default = make(map[string]Field)

// EnvExposed lists the keys bound to environment variables.
var EnvExposed []string

func register(k string, v any, desc string) {
	if _, exists := Default[k]; exists {
		panic("duplicate config key: " + k)
	}
	Default[k] = Field{Key: k, Value: v, Description: desc}
	EnvExposed = append(EnvExposed, k)
}

func init() {
	register(key.PlayerAutoplay, false, "Start playback as soon as the media can play through")
	register(key.PlayerKeyboardShortcuts, true, "Enable player keyboard shortcuts")
	register(key.PlayerUpscale, "FULLSCREEN_ONLY", "Upscale policy.\nAvailable options are: FULLSCREEN_ONLY, NEVER, ALWAYS")
	register(key.PlayerTimeFormat, "TIME", "Elapsed/total time format.\nAvailable options are: TIME, SMPTE")
	register(key.DocumentPrinting, false, "Allow the document viewer to offer printing")
	register(key.DocumentDownloading, false, "Allow the document viewer to offer downloading")
	register(key.StorageEnabled, true, "Persist volume, loop, mute, speed and view mode between sessions")
	register(key.StorageBaseKey, constant.DefaultPreferenceBaseKey, "Namespace used for persisted preferences")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.ServerAddr, ":8090", "Listen address of `grauman serve`")
	register(key.ServerAllowedOrigins, []string{"*"}, "Origins allowed to call the policy server")
	register(key.PlayerMpvBinary, "mpv", "mpv executable used by `grauman play`")
	register(key.HistorySave, true, "Record how far media was played in `grauman play`")
	register(key.HistoryResume, true, "Resume `grauman play` where it was left off")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, false, "Check for a newer release when running commands")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"blue":     style.Fg(color.Blue),
	"purple":   style.Fg(color.Purple),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
