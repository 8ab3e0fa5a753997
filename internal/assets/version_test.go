package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestManifestVersion_HashesContent(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `{"main.js":{"file":"assets/main-abc.js"}}`)

	m := NewManifestVersion(path, zap.NewNop())

	v := m.Version()
	assert.Len(t, v, versionHexLen)
	assert.NotEqual(t, DevVersion, v)

	// Same content, same version.
	again := NewManifestVersion(path, zap.NewNop())
	assert.Equal(t, v, again.Version())
}

func TestManifestVersion_MissingManifestIsDev(t *testing.T) {
	m := NewManifestVersion(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
	assert.Equal(t, DevVersion, m.Version())
}

func TestManifestVersion_RefreshPicksUpChanges(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `{"build":"one"}`)
	m := NewManifestVersion(path, zap.NewNop())
	before := m.Version()

	writeManifest(t, dir, `{"build":"two"}`)
	m.Refresh()

	assert.NotEqual(t, before, m.Version())
}

func TestManifestVersion_Watch(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	path := writeManifest(t, dir, `{"build":"one"}`)
	m := NewManifestVersion(path, zap.NewNop())
	before := m.Version()

	require.NoError(t, m.Watch())
	defer m.Close()

	writeManifest(t, dir, `{"build":"two"}`)

	require.Eventually(t, func() bool {
		return m.Version() != before
	}, 2*time.Second, 10*time.Millisecond, "watcher did not pick up the rewrite")
}

func TestManifestVersion_ConcurrentReads(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `{"build":"one"}`)
	m := NewManifestVersion(path, zap.NewNop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			m.Refresh()
		}
	}()
	for i := 0; i < 1000; i++ {
		// A read must never observe a half-written version.
		v := m.Version()
		if len(v) != versionHexLen && v != DevVersion {
			t.Fatalf("torn version read: %q", v)
		}
	}
	<-done
}
