package main

import (
	"context"
	"log/slog"
	"syscall"

	evbus "github.com/vardius/message-bus"

	"github.com/baglio/shop-portal/internal"
	"github.com/baglio/shop-portal/internal/adapters"
	"github.com/baglio/shop-portal/internal/app/api/core"
	handlersV0 "github.com/baglio/shop-portal/internal/app/api/v0/handlers"
	"github.com/baglio/shop-portal/internal/app/audit"
	"github.com/baglio/shop-portal/internal/app/health"
	"github.com/baglio/shop-portal/internal/backend"
	"github.com/baglio/shop-portal/internal/config"
)

func main() {
	ctx := internal.SignalAwareContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.GetConfig()
	internal.AssertNoError(err)

	internal.SetupLogging(cfg.Advanced.LogLevel, cfg.Advanced.LogJson)

	slog.Info("starting shop portal", "version", internal.Version)

	queueSize := 100
	eventBus := evbus.New(queueSize)

	auditRecorder, err := audit.NewRecorder(eventBus)
	internal.AssertNoError(err)
	auditRecorder.StartBackgroundJobs(ctx)

	metricsSrv := adapters.NewMetricsServer(cfg)
	go metricsSrv.Run(ctx)

	registry := backend.NewRegistry(cfg.Backend, metricsSrv)
	registry.StartBackgroundJobs(ctx)

	healthMonitor, err := health.NewMonitor(cfg, metricsSrv)
	internal.AssertNoError(err)
	healthMonitor.StartBackgroundJobs(ctx)

	session := handlersV0.NewSessionWrapper(cfg)
	clients := handlersV0.NewSessionClients(session, registry)
	validator := handlersV0.NewValidator()
	authenticator := handlersV0.NewAuthenticationHandler(clients, session)

	apiFrontend := handlersV0.NewRestApi(session,
		handlersV0.NewAuthEndpoint(clients, authenticator, session, validator, eventBus),
		handlersV0.NewShopEndpoint(clients),
		handlersV0.NewCartEndpoint(clients, authenticator, validator, eventBus),
		handlersV0.NewOrderEndpoint(clients, authenticator, validator, eventBus),
		handlersV0.NewProfileEndpoint(clients, authenticator, session, validator),
		handlersV0.NewContactEndpoint(clients, authenticator, validator, eventBus),
		handlersV0.NewAdminEndpoint(clients, authenticator, validator),
	)

	webSrv, err := core.NewServer(cfg, apiFrontend)
	internal.AssertNoError(err)

	go webSrv.Run(ctx, cfg.Web.ListeningAddress)

	// wait until context gets cancelled
	<-ctx.Done()

	slog.Info("stopped shop portal")
}
