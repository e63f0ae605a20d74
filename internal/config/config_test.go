package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Validate(Default()))
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  addr: "127.0.0.1:9000"
scoring:
  top_k: 5
  rule_weights:
    farmer: 2.0
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.App.Addr)
	assert.Equal(t, 5, cfg.Scoring.TopK)
	assert.Equal(t, 2.0, cfg.Scoring.RuleWeights["farmer"])

	// Untouched keys keep their defaults.
	assert.Equal(t, "scheme_store.db", cfg.Model.Path)
	assert.Equal(t, 100000, cfg.Model.MaxFeatures)
	assert.Equal(t, 0.6, cfg.Scoring.ContentWeight)
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.App.Addr = "not-an-addr"
	cfg.Model.Path = ""
	cfg.Scoring.TopK = 0

	err := Validate(cfg)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "app.addr")
	assert.Contains(t, msg, "model.path")
	assert.Contains(t, msg, "scoring.top_k")
}

func TestValidateZeroWeights(t *testing.T) {
	cfg := Default()
	cfg.Scoring.ContentWeight = 0
	cfg.Scoring.EligibilityWeight = 0
	cfg.Scoring.PopularityWeight = 0
	assert.Error(t, Validate(cfg))
}

func TestSaveAtomicRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	cfg := Default()
	cfg.Scoring.TopK = 7
	require.NoError(t, SaveAtomic(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Scoring.TopK)

	// Second save keeps a .bak of the previous file.
	cfg.Scoring.TopK = 9
	require.NoError(t, SaveAtomic(path, cfg))
	_, err = os.Stat(path + ".bak")
	assert.NoError(t, err)
}

func TestSaveAtomicRejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Scoring.TopK = -1
	err := SaveAtomic(filepath.Join(t.TempDir(), "config.yml"), cfg)
	assert.Error(t, err)
}

func TestEnsureUserConfig(t *testing.T) {
	dir := t.TempDir()

	// No shipped default: the built-in config gets materialized.
	path, err := EnsureUserConfig(dir, filepath.Join(dir, "no-such-default.yml"))
	require.NoError(t, err)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().App.Addr, cfg.App.Addr)
	assert.Equal(t, Default().Scoring.TopK, cfg.Scoring.TopK)
	assert.Equal(t, Default().Model.Path, cfg.Model.Path)

	// Second call leaves the existing file alone.
	require.NoError(t, os.WriteFile(path, []byte("scoring:\n  top_k: 3\n"), 0o644))
	again, err := EnsureUserConfig(dir, filepath.Join(dir, "no-such-default.yml"))
	require.NoError(t, err)
	assert.Equal(t, path, again)
	cfg, err = Load(again)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Scoring.TopK)
}
