package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/newthinker/prospect/internal/app"
	"github.com/newthinker/prospect/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Check the configured symbols on an interval",
	Long: `Watch runs the signal check for every configured symbol, sleeps for the
configured interval and repeats until interrupted. With metrics enabled it
also serves the Prometheus endpoint.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, a.Metrics().Handler())
		metricsSrv = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}
		go func() {
			log.Info("metrics listening",
				zap.String("addr", cfg.Metrics.Addr),
				zap.String("path", cfg.Metrics.Path))
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server error", zap.Error(err))
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info("shutdown signal received")
		cancel()
	}()

	err = a.Watch(ctx)

	if metricsSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if serr := metricsSrv.Shutdown(shutdownCtx); serr != nil {
			log.Warn("metrics server shutdown", zap.Error(serr))
		}
		shutdownCancel()
	}

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
