package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geodir/internal/api"
	"github.com/sells-group/geodir/internal/catalog"
	"github.com/sells-group/geodir/internal/config"
	"github.com/sells-group/geodir/internal/query"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load the catalog and serve it over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		cat, _, err := loadCatalog(ctx)
		if err != nil {
			return err
		}

		srv := newServer(cat, cfg)

		// Graceful shutdown
		done := make(chan struct{})
		go func() {
			defer close(done)
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSecs)*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				zap.L().Warn("server shutdown", zap.Error(err))
			}
		}()

		zap.L().Info("starting server", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}
		<-done

		return nil
	},
}

// newServer builds the HTTP server for cat using the server, CORS and rate
// limit settings in c.
func newServer(cat *catalog.Catalog, c *config.Config) *http.Server {
	handler := api.NewRouter(query.NewService(cat), api.Options{
		AllowedOrigins: c.CORS.AllowedOrigins,
		RateLimit:      c.RateLimit.RPS,
		Burst:          c.RateLimit.Burst,
	})
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", c.Server.Port),
		Handler:           handler,
		ReadTimeout:       time.Duration(c.Server.ReadTimeoutSecs) * time.Second,
		WriteTimeout:      time.Duration(c.Server.WriteTimeoutSecs) * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
