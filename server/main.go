package main

import (
	"context"
	"errors"
	"flag"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go-itc-ledger/bank"
	"go-itc-ledger/config"
	"go-itc-ledger/currency"
	"go-itc-ledger/http"
	"os"
	"os/signal"
	"syscall"

	nhttp "net/http"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
		logger.Log("msg", "failed to load configuration", "err", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger(os.Stderr)

	registry, err := cfg.Registry()
	if err != nil {
		level.Error(logger).Log("msg", "invalid currency configuration", "err", err)
		os.Exit(1)
	}
	for _, c := range registry.Currencies() {
		level.Debug(logger).Log("msg", "currency registered", "code", c.Code(), "symbol", c.Symbol(), "ratio", c.Ratio())
	}

	var bankService bank.Service = bank.NewBank()
	bankService = bank.NewLoggingService(level.Info(log.With(logger, "component", "bank")), bankService)

	convertService := currency.NewService(registry)
	convertService = currency.NewLoggingService(level.Debug(log.With(logger, "component", "convert")), convertService)

	handler := http.NewServer(bankService, convertService, registry, level.Info(log.With(logger, "component", "http")))

	server := &nhttp.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		level.Info(logger).Log("msg", "server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nhttp.ErrServerClosed) {
			level.Error(logger).Log("msg", "server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	level.Info(logger).Log("msg", "shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		level.Error(logger).Log("msg", "server forced to shutdown", "err", err)
	}
}
