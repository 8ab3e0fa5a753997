package di

import (
	"go.uber.org/fx"

	"github.com/ferrohq/ferro/internal/config"
	"github.com/ferrohq/ferro/internal/security"
)

// SecurityModule provides security-related dependencies
var SecurityModule = fx.Module("security",
	fx.Provide(provideCSRFProvider),
)

func provideCSRFProvider(cfg *config.CSRFConfig) *security.CSRFProvider {
	return security.NewCSRFProvider(cfg)
}
