package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-verdict/internal/app"
	"stock-verdict/internal/httpapi"
	"stock-verdict/internal/logger"
	"stock-verdict/internal/trace"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	addr := flag.String("addr", "", "listen address (overrides server.addr)")
	flag.Parse()

	if err := app.InitializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig(ctx, *configPath)
	if err != nil {
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	a := app.Build(ctx, cfg)
	handler := httpapi.NewHandler(a.Verdicts, a.Provider, app.Version, cfg.Server.RequestTimeout)
	srv := httpapi.NewServer(cfg.Server.Addr, handler, a.Registry)
	srv.Start(ctx)

	logger.Info(ctx, "Server started", "addr", cfg.Server.Addr, "provider", a.Provider.Name())
	<-ctx.Done()
	logger.Info(context.Background(), "Shutting down", "cached_tickers", len(a.News.CachedTickers()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.ErrorWithErr(shutdownCtx, "Server shutdown failed", err)
	}
	if err := trace.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithErr(shutdownCtx, "Tracer shutdown failed", err)
	}
}
