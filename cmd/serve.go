package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grauman/grauman/color"
	"github.com/grauman/grauman/key"
	"github.com/grauman/grauman/log"
	"github.com/grauman/grauman/style"
	transport "github.com/grauman/grauman/transport/http"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 5 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", "", "Listen address")
	lo.Must0(viper.BindPFlag(key.ServerAddr, serveCmd.Flags().Lookup("addr")))

	serveCmd.Flags().StringSlice("allowed-origins", nil, "Origins allowed to call the server")
	lo.Must0(viper.BindPFlag(key.ServerAllowedOrigins, serveCmd.Flags().Lookup("allowed-origins")))
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve viewer selection, sizing and timecodes over HTTP",
	Long: `Serve viewer selection, sizing and timecodes over HTTP for browser front ends.

  POST /v1/select     asset json, environment from the User-Agent header
  POST /v1/geometry   asset, container, viewport, fullscreen and upscale
  GET  /v1/timecode   ?seconds=&fps=&format=`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		srv := transport.NewServer(viper.GetString(key.ServerAddr), viper.GetStringSlice(key.ServerAllowedOrigins))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errs := make(chan error, 1)
		go func() {
			errs <- srv.ListenAndServe()
		}()

		log.Infof("policy server listening on %s", srv.Addr)
		cmd.Printf("%s listening on %s\n", style.Fg(color.Green)("▇▇▇"), style.Bold(srv.Addr))

		select {
		case err := <-errs:
			if !errors.Is(err, http.ErrServerClosed) {
				handleErr(err)
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			handleErr(srv.Shutdown(shutdownCtx))
			log.Info("policy server stopped")
		}
	},
}
