package di

import (
	"go.uber.org/fx"

	"github.com/ferrohq/ferro/internal/config"
)

// ConfigModule provides configuration dependencies
var ConfigModule = fx.Module("config",
	fx.Provide(
		config.Load,
		provideAppConfig,
		provideServerConfig,
		provideInertiaConfig,
		provideAssetsConfig,
		provideCSRFConfig,
	),
)

func provideAppConfig(cfg *config.Config) *config.AppConfig {
	return &cfg.App
}

func provideServerConfig(cfg *config.Config) *config.ServerConfig {
	return &cfg.Server
}

func provideInertiaConfig(cfg *config.Config) *config.InertiaConfig {
	return &cfg.Inertia
}

func provideAssetsConfig(cfg *config.Config) *config.AssetsConfig {
	return &cfg.Assets
}

func provideCSRFConfig(cfg *config.Config) *config.CSRFConfig {
	return &cfg.CSRF
}
