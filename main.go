package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/supakorn-kn/go-docproxy/apis"
	collectionsAPI "github.com/supakorn-kn/go-docproxy/apis/collections"
	"github.com/supakorn-kn/go-docproxy/env"
	"github.com/supakorn-kn/go-docproxy/metric"
	"github.com/supakorn-kn/go-docproxy/mongodb"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {

	config, err := env.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	setupLogger(config.Server.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, config.MongoDB.ConnectTimeout)
	defer cancel()

	// serving starts only after the store answered a ping
	conn, err := mongodb.InitConnection(connectCtx, config.MongoDB)
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}

	defer disconnect(conn)

	slog.Info("Connected to MongoDB", "database", conn.DatabaseName())

	gin.SetMode(gin.ReleaseMode)

	metrics := metric.New()
	api := collectionsAPI.NewCollectionsAPI(conn, config.Server.AllowedCollections, metrics)
	g := apis.NewRouter(api, conn, apis.RouterOptions{
		AssetsDir: config.Server.AssetsDir,
		Metrics:   metrics,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Server.Port),
		Handler: g,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("run server: %w", err)
		}

		return nil

	case <-ctx.Done():
		slog.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	}
}

func setupLogger(format string) {

	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
		return
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

type disconnecter interface {
	Disconnect(ctx context.Context) error
}

func disconnect(conn disconnecter) {
	if err := conn.Disconnect(context.Background()); err != nil {
		slog.Error("Disconnect from MongoDB failed", "error", err)
	}
}
