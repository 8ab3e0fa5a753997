package di

import (
	"fmt"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ferrohq/ferro/internal/assets"
	"github.com/ferrohq/ferro/internal/config"
	"github.com/ferrohq/ferro/internal/inertia"
)

// InertiaModule provides the response engine
var InertiaModule = fx.Module("inertia",
	fx.Provide(provideRenderer),
)

func provideRenderer(
	cfg *config.Config,
	mv *assets.ManifestVersion,
	logger *zap.Logger,
) (*inertia.Renderer, error) {
	tmpl := inertia.TemplateConfig{
		RootID:        cfg.Inertia.RootID,
		Development:   cfg.IsDevelopment(),
		DevServerBase: cfg.Assets.DevServer,
		EntryPoint:    cfg.Assets.EntryPoint,
	}

	if cfg.Inertia.Template != "" {
		custom, err := os.ReadFile(cfg.Inertia.Template)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", cfg.Inertia.Template, err)
		}
		tmpl.Custom = string(custom)
	}

	// The CSRF token reaches the renderer through shared props set by
	// the security middleware, so no provider is wired here.
	return inertia.New(inertia.Config{
		Version:      mv,
		Template:     tmpl,
		JSONFallback: cfg.Inertia.JSONFallback,
		Logger:       logger,
	})
}
