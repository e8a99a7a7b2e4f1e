package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theirongolddev/debtpath/internal/logger"
	"github.com/theirongolddev/debtpath/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagServeAddr  string
	flagServeRedis string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the payoff HTTP API",
	Long: "Serve /v1/simulate, /v1/compare, /v1/amortize and /v1/scenarios as JSON.\n" +
		"Responses are cached in Redis when an address is configured.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().StringVar(&flagServeRedis, "redis", "", "Redis address for the response cache")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()
	if flagServeAddr != "" {
		cfg.Server.Addr = flagServeAddr
	}
	if flagServeRedis != "" {
		cfg.Server.RedisAddr = flagServeRedis
	}

	log, err := logger.New(cfg.Server.LogLevel, cfg.Server.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cache server.Cache = server.NopCache{}
	if cfg.Server.RedisAddr != "" {
		rc := server.NewRedisCache(cfg.Server.RedisAddr, time.Duration(cfg.Server.CacheTTLSec)*time.Second)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := rc.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Warn("response cache disabled", zap.String("redis", cfg.Server.RedisAddr), zap.Error(err))
			_ = rc.Close()
		} else {
			cache = rc
			log.Info("response cache enabled", zap.String("redis", cfg.Server.RedisAddr))
		}
	}

	svc, err := server.New(server.Config{
		Addr:      cfg.Server.Addr,
		MaxMonths: resolveMonths(cfg),
	}, log, cache)
	if err != nil {
		return fmt.Errorf("starting api: %w", err)
	}
	defer func() { _ = svc.Close() }()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
