package di

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ferrohq/ferro/internal/config"
	"github.com/ferrohq/ferro/internal/observability"
)

// ObservabilityModule provides metrics and tracing
var ObservabilityModule = fx.Module("observability",
	fx.Provide(
		provideMetricsConfig,
		provideTracingConfig,
		provideMetricsProvider,
		provideTracingProvider,
	),
	fx.Invoke(shutdownObservability),
)

func provideMetricsConfig(cfg *config.AppConfig) *observability.MetricsConfig {
	mc := observability.DefaultMetricsConfig()
	mc.ServiceName = cfg.Name
	return mc
}

func provideTracingConfig(cfg *config.AppConfig) *observability.TracingConfig {
	tc := observability.DefaultTracingConfig()
	tc.ServiceName = cfg.Name
	tc.ServiceVersion = cfg.Version
	tc.Environment = cfg.Environment
	return tc
}

func provideMetricsProvider(cfg *observability.MetricsConfig, logger *zap.Logger) (*observability.MetricsProvider, error) {
	return observability.NewMetricsProvider(cfg, logger)
}

func provideTracingProvider(cfg *observability.TracingConfig, logger *zap.Logger) (*observability.TracingProvider, error) {
	return observability.NewTracingProvider(cfg, logger)
}

func shutdownObservability(
	lc fx.Lifecycle,
	mp *observability.MetricsProvider,
	tp *observability.TracingProvider,
) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := mp.Shutdown(ctx); err != nil {
				return err
			}
			return tp.Shutdown(ctx)
		},
	})
}
