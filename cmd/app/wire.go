//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yanqian/policy-advisor/internal/bootstrap"
	"github.com/yanqian/policy-advisor/internal/domain/catalog"
	"github.com/yanqian/policy-advisor/internal/domain/recommendation"
	"github.com/yanqian/policy-advisor/internal/infra/config"
	httpiface "github.com/yanqian/policy-advisor/internal/interface/http"
	"github.com/yanqian/policy-advisor/pkg/metrics"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		provideLogger,
		provideRegistry,
		wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
		wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
		metrics.NewRecommendations,
		provideEngineConfig,
		recommendation.NewEngine,
		provideStorage,
		provideRecommendationRepository,
		recommendation.NewService,
		provideCatalogConfig,
		provideCatalogRepository,
		provideCatalogStore,
		catalog.NewService,
		provideHealthChecker,
		httpiface.NewHandler,
		httpiface.NewHealthHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
