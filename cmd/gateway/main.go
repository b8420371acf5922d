package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/tjfontaine/halo-conversation-gateway/internal/config"
	"github.com/tjfontaine/halo-conversation-gateway/internal/frontdoor/conversation"
	"github.com/tjfontaine/halo-conversation-gateway/internal/intent"
	"github.com/tjfontaine/halo-conversation-gateway/internal/orchestrator"
	"github.com/tjfontaine/halo-conversation-gateway/internal/provider"
	"github.com/tjfontaine/halo-conversation-gateway/internal/server"
	"github.com/tjfontaine/halo-conversation-gateway/internal/session"
	"github.com/tjfontaine/halo-conversation-gateway/internal/telemetry"
	"github.com/tjfontaine/halo-conversation-gateway/internal/tenant"
)

func main() {
	// Local development convenience; absent .env is fine.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	shutdown, err := telemetry.InitTracer(conversation.ServiceName, logger)
	if err != nil {
		logger.Error("failed to init telemetry", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer shutdown(context.Background())

	classifierOpts := []intent.ClassifierOption{}
	if cfg.Intent.AliasesFile != "" {
		rules, err := intent.LoadRules(cfg.Intent.AliasesFile)
		if err != nil {
			logger.Error("failed to load intent alias table", slog.String("error", err.Error()))
			os.Exit(1)
		}
		classifierOpts = append(classifierOpts, intent.WithRules(rules))
		logger.Info("loaded intent alias table",
			slog.String("path", cfg.Intent.AliasesFile),
			slog.Int("providers", len(rules)),
		)
	}
	classifier := intent.NewClassifier(classifierOpts...)

	dispatcher := provider.NewDispatcher(
		cfg.UpstreamTimeout(),
		logger,
		provider.BuildAdapters(cfg, nil)...,
	)

	orch := orchestrator.New(
		classifier,
		session.NewStore(),
		tenant.NewGuard(cfg.Routing.MaxTenants),
		dispatcher,
		cfg.DefaultProvider(),
		logger,
	)

	// Request timeout sits above the shared upstream timeout so a slow
	// adapter degrades before the transport gives up.
	srv := server.New(cfg.Server.Port, cfg.UpstreamTimeout()+10*time.Second, logger)
	conversation.NewHandler(orch).Register(srv.Router)

	logger.Info("gateway configured",
		slog.String("default_provider", string(cfg.DefaultProvider())),
		slog.Int("max_tenants", cfg.Routing.MaxTenants),
		slog.Duration("upstream_timeout", cfg.UpstreamTimeout()),
	)

	if err := srv.Start(); err != nil {
		logger.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
