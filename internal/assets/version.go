package assets

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// DevVersion is served when no manifest exists, which is the normal
// state when assets come from the dev server instead of a build.
const DevVersion = "dev"

// versionHexLen truncates the digest; 16 hex chars is plenty to tell two
// asset builds apart and keeps the header small.
const versionHexLen = 16

// ManifestVersion derives the ambient asset version from the built Vite
// manifest: a truncated blake2b digest of the file's content. The stored
// version is swapped atomically, so concurrent renders always observe a
// complete string; writes happen only at boot and on deploy.
type ManifestVersion struct {
	path    string
	logger  *zap.Logger
	current atomic.Value // string
	watcher *fsnotify.Watcher
	cron    *cron.Cron
}

// NewManifestVersion hashes the manifest at path once. A missing or
// unreadable manifest yields DevVersion rather than an error; serving
// must not depend on a build having run.
func NewManifestVersion(path string, logger *zap.Logger) *ManifestVersion {
	m := &ManifestVersion{
		path:   path,
		logger: logger,
	}
	m.current.Store(m.compute())
	return m
}

// Version returns the current asset version. Safe for concurrent use.
func (m *ManifestVersion) Version() string {
	return m.current.Load().(string)
}

// Refresh re-hashes the manifest and publishes the new version.
func (m *ManifestVersion) Refresh() {
	fresh := m.compute()
	if prev := m.Version(); prev != fresh {
		m.logger.Info("asset version changed",
			zap.String("previous", prev),
			zap.String("current", fresh),
		)
	}
	m.current.Store(fresh)
}

func (m *ManifestVersion) compute() string {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return DevVersion
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])[:versionHexLen]
}

// Watch refreshes the version whenever the manifest is rewritten. The
// watch is placed on the manifest's directory because bundlers replace
// the file instead of updating it in place.
func (m *ManifestVersion) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	m.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 &&
					filepath.Clean(event.Name) == filepath.Clean(m.path) {
					m.logger.Debug("manifest changed", zap.String("file", event.Name))
					m.Refresh()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				m.logger.Error("manifest watcher error", zap.Error(err))
			}
		}
	}()

	return watcher.Add(filepath.Dir(m.path))
}

// RefreshEvery schedules a periodic re-hash, the fallback when the
// filesystem watch cannot be established (network mounts, containers
// with inotify limits).
func (m *ManifestVersion) RefreshEvery(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, m.Refresh); err != nil {
		return err
	}
	m.cron = c
	c.Start()
	return nil
}

// Close stops the watcher and the periodic refresh.
func (m *ManifestVersion) Close() error {
	if m.cron != nil {
		<-m.cron.Stop().Done()
	}
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}
