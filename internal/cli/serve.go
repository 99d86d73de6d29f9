package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ChaseHampton/goobituaries/internal/aggregate"
	"github.com/ChaseHampton/goobituaries/internal/api"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve obituaries and condolences over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		a.startProbe(ctx)
		a.engine.LoadAll(ctx)

		refresher := aggregate.NewRefresher(a.engine, a.cfg.SourcesConfig.RefreshInterval, a.logger.Named("refresh"))
		refresher.Start(ctx)

		srv := api.NewServer(a.cfg.ServerConfig, a.cfg.SiteName, a.engine, a.logger)
		err = srv.Run(ctx)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if stopErr := refresher.Stop(shutdownCtx); stopErr != nil {
			a.logger.Warn("refresher did not stop", zap.Error(stopErr))
		}
		a.close(shutdownCtx)
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
