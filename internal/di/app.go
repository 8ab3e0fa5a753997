package di

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ferrohq/ferro/internal/config"
)

// AppModule aggregates all application modules
var AppModule = fx.Options(
	ConfigModule,
	LoggerModule,
	AssetsModule,
	SecurityModule,
	InertiaModule,
	ObservabilityModule,
	ControllerModule,
	HTTPServerModule,
)

// PrintBanner prints the application startup banner
func PrintBanner(cfg *config.Config, logger *zap.Logger) {
	logger.Info("===========================================")
	logger.Info("        Ferro - Inertia for Go              ")
	logger.Info("===========================================")
	logger.Info("Application Info",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)
	logger.Info("===========================================")
}
