package di

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ferrohq/ferro/internal/assets"
	"github.com/ferrohq/ferro/internal/config"
)

// AssetsModule provides the asset version tracker
var AssetsModule = fx.Module("assets",
	fx.Provide(provideManifestVersion),
	fx.Invoke(watchManifest),
)

func provideManifestVersion(cfg *config.AssetsConfig, logger *zap.Logger) *assets.ManifestVersion {
	return assets.NewManifestVersion(cfg.Manifest, logger)
}

// watchManifest keeps the asset version current for the lifetime of the
// app. The filesystem watch is best effort; the cron schedule covers
// environments where notifications do not fire, such as NFS mounts.
func watchManifest(lc fx.Lifecycle, mv *assets.ManifestVersion, cfg *config.AssetsConfig, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := mv.Watch(); err != nil {
				logger.Warn("manifest watch unavailable", zap.Error(err))
			}
			if cfg.RefreshSchedule != "" {
				if err := mv.RefreshEvery(cfg.RefreshSchedule); err != nil {
					return err
				}
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return mv.Close()
		},
	})
}
