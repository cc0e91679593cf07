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

	"github.com/MeKo-Tech/polished/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the colour API over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Listen address (host:port)")
	serveCmd.Flags().String("cache-control", "no-store", "Cache-Control header for API responses")
	serveCmd.Flags().Duration("shutdown-timeout", 5*time.Second, "Grace period for in-flight requests on shutdown")

	mustBind := func(key string, name string) {
		if err := viper.BindPFlag(key, serveCmd.Flags().Lookup(name)); err != nil {
			panic(fmt.Sprintf("failed to bind flag: %v", err))
		}
	}

	mustBind("serve.addr", "addr")
	mustBind("serve.cache_control", "cache-control")
	mustBind("serve.shutdown_timeout", "shutdown-timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	addr := viper.GetString("serve.addr")
	cacheControl := viper.GetString("serve.cache_control")
	shutdownTimeout := viper.GetDuration("serve.shutdown_timeout")
	swatchDB := viper.GetString("swatch-db")

	api, err := server.NewAPI(server.APIConfig{
		SwatchDBPath: swatchDB,
		CacheControl: cacheControl,
	}, logger)
	if err != nil {
		return err
	}
	defer api.Close()

	logger.Info("colour API listening",
		"addr", addr,
		"swatch_db", swatchDB,
	)

	srv := &http.Server{Addr: addr, Handler: server.NewMux(api), ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "requests", api.Status().TotalRequests)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
