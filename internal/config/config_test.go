package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/spb/catalog"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, catalog.Version, cfg.Version)
	assert.Equal(t, "  ", cfg.IndentString())
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "spbmsg.yaml", "log_level: debug\nindent: 0\n")
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 0, cfg.Indent)
	assert.Equal(t, "", cfg.IndentString())
	assert.Equal(t, FormatConsole, cfg.LogFormat, "missing keys keep defaults")
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "spbmsg.toml", "log_format = \"json\"\nindent = 4\nversion = \"5.01\"\n")
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.LogFormat)
	assert.Equal(t, "    ", cfg.IndentString())
	assert.Equal(t, "5.01", cfg.Version)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "spbmsg.yml", "log_level: debug\nindent: 4\n")
	cfg, err := Load(path, []string{
		"SPBMSG_LOG_LEVEL=warn",
		"SPBMSG_INDENT=0",
		"UNRELATED=1",
	})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 0, cfg.Indent)
	assert.Equal(t, zerolog.WarnLevel, cfg.Level())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		environ []string
	}{
		{name: "unsupported extension", file: "spbmsg.json", content: "{}"},
		{name: "malformed yaml", file: "spbmsg.yaml", content: "log_level: [\n"},
		{name: "malformed toml", file: "spbmsg.toml", content: "indent = \n"},
		{name: "unknown level", file: "spbmsg.yaml", content: "log_level: loud\n"},
		{name: "unknown format", file: "spbmsg.yaml", content: "log_format: xml\n"},
		{name: "indent too wide", file: "spbmsg.yaml", content: "indent: 12\n"},
		{name: "empty version", file: "spbmsg.yaml", content: "version: \"\"\n"},
		{name: "indent not a number", file: "spbmsg.yaml", content: "", environ: []string{"SPBMSG_INDENT=two"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := Load(path, tt.environ)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}
