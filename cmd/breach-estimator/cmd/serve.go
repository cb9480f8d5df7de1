// Package cmd - serve command
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iwvelando/breach-estimator/internal/server"
	"github.com/iwvelando/breach-estimator/pkg/constants"
)

var (
	serverConfigFile string
	serveAddress     string
	serveMaxRequest  string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the selection lists and calculator over HTTP",
	Long: `Start an HTTP server exposing the reference data and the calculator as a
JSON API:

  GET  /api/states
  GET  /api/states/regulations?state=<state>
  GET  /api/federal/regulations
  GET  /api/federal/violations?regulation=<regulation>
  POST /api/calculate
  GET  /api/version

The server stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serverConfigFile, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "listen address override")
	serveCmd.Flags().StringVar(&serveMaxRequest, "max-request-size", "", "request body limit override, e.g. 64K")
}

func runServe(cmd *cobra.Command, args []string) error {
	srvCfg, err := server.LoadConfig(serverConfigFile)
	if err != nil {
		return err
	}
	if serveAddress != "" {
		srvCfg.Address = serveAddress
	}
	if serveMaxRequest != "" {
		size, err := server.ParseSize(serveMaxRequest)
		if err != nil {
			return err
		}
		srvCfg.SetRequestSizeBytes(size)
	}

	srvLogger := logger
	if srvCfg.Logging.Level != "" || srvCfg.Logging.Format != "" || srvCfg.Logging.OutputFile != "" {
		srvLogger, err = initializeLogger(srvCfg.Logging, logLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize server logger: %w", err)
		}
		defer func() {
			_ = srvLogger.Sync()
		}()
	}

	store, err := loadStore()
	if err != nil {
		return err
	}
	calculator, err := newCalculator(store)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              srvCfg.Address,
		Handler:           server.NewHandler(srvLogger, store, calculator, srvCfg.RequestSizeBytes(), Version),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		srvLogger.Info("server listening",
			zap.String("op", "cmd.runServe"),
			zap.String("address", srvCfg.Address),
			zap.Int64("max_request_bytes", srvCfg.RequestSizeBytes()),
			zap.String("reference", store.Source()),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		srvLogger.Info("shutting down server",
			zap.String("op", "cmd.runServe"),
		)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), srvCfg.ShutdownTimeoutDuration())
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
