package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ougirez/statdash/internal/pkg/constants"
	"github.com/ougirez/statdash/internal/pkg/logger"
)

const defaultGracefulTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the optional scheduled sync",
		RunE:  runServe,
	}
	cmd.Flags().String("address", "", "Address to listen on, overrides http.addr")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if addr, _ := cmd.Flags().GetString("address"); addr != "" {
		cfg.HTTP.Addr = addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.close()

	svc, err := app.apiService(cfg.HTTP)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Infof(gctx, "listening on %s", cfg.HTTP.Addr)
		return svc.Serve(cfg.HTTP.Addr)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
		defer cancel()
		logger.Infof(shutdownCtx, "shutting down")
		return svc.Shutdown(shutdownCtx)
	})

	if cfg.Sync.Interval > 0 {
		g.Go(func() error {
			scheduleSync(gctx, app, cfg.Sync.Interval)
			return nil
		})
	}

	return g.Wait()
}

// scheduleSync runs a full sync every interval until ctx is done.
func scheduleSync(ctx context.Context, app *application, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		report, err := app.orchestrator.Run(ctx, nil)
		switch {
		case errors.Is(err, constants.ErrSyncInProgress):
			logger.Warnf(ctx, "scheduled sync skipped: %v", err)
		case err != nil:
			logger.Errorf(ctx, "scheduled sync: %v", err)
		default:
			logger.Info(ctx, "scheduled sync done",
				"job_id", report.JobID, "succeeded", report.Succeeded, "failed", report.Failed, "rows", report.Rows)
		}
	}
}
