package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_LoadConfig_missingDefaultFileIsNotAnError(t *testing.T) {
	assert := assert.New(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "kushc.toml"), false)
	assert.NoError(err)
	assert.Equal(DefaultConfig(), cfg)
}

func Test_LoadConfig_missingExplicitFileIsAnError(t *testing.T) {
	assert := assert.New(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "kushc.toml"), true)
	assert.Error(err)
}

func Test_LoadConfig_presentFileOverridesDefaults(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "kushc.toml")
	writeFile(t, path, "core = true\nreport_wrap = 60\npackage = \"app\"\n")

	cfg, err := LoadConfig(path, false)
	assert.NoError(err)
	assert.True(cfg.Core)
	assert.Equal(60, cfg.ReportWrap)
	assert.Equal("app", cfg.Package)
}

func Test_LoadConfig_malformedFileIsAnErrorEvenWhenNotRequired(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "kushc.toml")
	writeFile(t, path, "core = not valid toml\n")

	_, err := LoadConfig(path, false)
	assert.Error(err)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
}
