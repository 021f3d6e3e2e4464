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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jimiolaniyan/accounts/auth"
	"github.com/jimiolaniyan/accounts/config"
)

const (
	connectTimeout    = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func main() {
	var (
		envFile string
		port    int
	)

	rootCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Serves account signup and signin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			return run(cmd.Context(), cfg)
		},
		SilenceUsage: true,
	}
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.Flags().IntVar(&port, "port", 3000, "port to listen on (overrides PORT)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	accounts, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	metrics := auth.NewMetrics(reg)
	svc := auth.NewService(accounts, auth.NewBcryptHasher(cfg.BcryptCost), auth.NewJWTSigner([]byte(cfg.SecretKey)), logger)

	router := auth.NewRouter(svc, accounts, metrics, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := newServer(cfg, router)

	errc := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newServer(cfg config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           http.TimeoutHandler(h, cfg.RequestTimeout, "request timed out"),
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

func openStore(ctx context.Context, cfg config.Config) (auth.Repository, func(), error) {
	if cfg.DBLocation == config.MemoryStore {
		slog.Warn("using in-memory account store")
		return auth.NewAccountRepository(), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.DBLocation))
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			slog.Error("disconnecting from mongo", "error", err)
		}
	}

	if err = client.Ping(connectCtx, nil); err != nil {
		closeFn()
		return nil, nil, err
	}

	c := client.Database(cfg.DBName).Collection(cfg.DBCollection)
	if err = auth.EnsureIndexes(connectCtx, c); err != nil {
		closeFn()
		return nil, nil, err
	}

	return auth.NewMongoAccountRepository(c), closeFn, nil
}
