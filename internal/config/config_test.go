package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_OverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rewardforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("wall_timeout_s: 30\nworker_count: 4\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.WallTimeoutS)
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.Equal(t, 512, cfg.MemoryLimitMB) // untouched default
	assert.Equal(t, 12, cfg.CPUTimeS)       // untouched default
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"completions": ["a", "b"],
		"tests": ["t1", "t2"],
		"entry_points": ["f1", "f2"]
	}`), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)

	want := BatchManifest{
		Completions: []string{"a", "b"},
		Tests:       []string{"t1", "t2"},
		EntryPoints: []string{"f1", "f2"},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}
