package cmd

import (
	"encoding/json"
	"path/filepath"
	"reflect"

	"github.com/grauman/grauman/asset"
	"github.com/grauman/grauman/history"
	transport "github.com/grauman/grauman/transport/http"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// schemaTargets are the json documents grauman reads or writes.
var schemaTargets = map[string]any{
	"asset":    &asset.Options{},
	"select":   &transport.SelectResponse{},
	"geometry": &transport.GeometryRequest{},
	"timecode": &transport.TimecodeResponse{},
	"history":  map[string]*history.Entry{},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:       "schema asset|select|geometry|timecode|history",
	Short:     "Print the JSON Schema of a document grauman reads or writes",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: lo.Keys(schemaTargets),
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return filepath.Base(t.PkgPath()) + "." + t.Name()
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(reflector.Reflect(schemaTargets[args[0]])))
	},
}
