package docxgen

import (
	"compress/flate"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())

	assert.Equal(t, "en-US", config.Language)
	assert.Equal(t, "Calibri", config.DefaultFont)
	assert.Equal(t, 11.0, config.DefaultFontSize)
	assert.Equal(t, flate.DefaultCompression, config.CompressionLevel)
	assert.True(t, config.LiteralBreakMarkers)
	assert.Zero(t, config.MaxDepth, "nesting is unlimited by default")
	assert.False(t, config.MergeRuns)
	assert.True(t, config.Created.IsZero())
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("DOCXGEN_TITLE", "Quarterly")
	t.Setenv("DOCXGEN_LANGUAGE", "nl-NL")
	t.Setenv("DOCXGEN_COMPRESSION_LEVEL", "9")
	t.Setenv("DOCXGEN_MAX_DEPTH", "not-a-number")
	t.Setenv("DOCXGEN_LITERAL_BREAKS", "off")
	t.Setenv("DOCXGEN_MERGE_RUNS", "1")
	t.Setenv("DOCXGEN_DEFAULT_FONT_SIZE", "10.5")
	t.Setenv("DOCXGEN_LOG_LEVEL", "debug")

	config := ConfigFromEnvironment()
	assert.Equal(t, "Quarterly", config.Title)
	assert.Equal(t, "nl-NL", config.Language)
	assert.Equal(t, 9, config.CompressionLevel)
	assert.Zero(t, config.MaxDepth, "malformed values are ignored")
	assert.False(t, config.LiteralBreakMarkers)
	assert.True(t, config.MergeRuns)
	assert.Equal(t, 10.5, config.DefaultFontSize)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.toml")
		require.NoError(t, os.WriteFile(path, []byte(`
title = "Minutes"
creator = "Board"
literal_break_markers = false
page_size = "a4"
compression_level = 1
file_mode = 0o640
created = 2024-05-01T09:00:00Z
`), 0o644))

		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "Minutes", config.Title)
		assert.Equal(t, "Board", config.Creator)
		assert.False(t, config.LiteralBreakMarkers)
		assert.Equal(t, "a4", config.PageSize)
		assert.Equal(t, 1, config.CompressionLevel)
		assert.Equal(t, os.FileMode(0o640), config.FileMode)
		assert.True(t, config.Created.Equal(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)))
		assert.Equal(t, "Calibri", config.DefaultFont)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := filepath.Join(dir, "unknown.toml")
		require.NoError(t, os.WriteFile(path, []byte(`colour = "red"`), 0o644))
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.toml")
		require.NoError(t, os.WriteFile(path, []byte(`page_size = "tabloid"`), 0o644))
		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "invalid page size")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "nope.toml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{name: "defaults", modify: func(c *Config) {}},
		{name: "empty optional fields", modify: func(c *Config) {
			c.PageSize = ""
			c.LogFormat = ""
			c.MaxDepth = 0
			c.DefaultFontSize = 0
			c.Language = ""
		}},
		{name: "bad language", modify: func(c *Config) { c.Language = "english please" }, wantErr: "invalid language tag"},
		{name: "negative font size", modify: func(c *Config) { c.DefaultFontSize = -1 }, wantErr: "default font size"},
		{name: "huge font size", modify: func(c *Config) { c.DefaultFontSize = 5000 }, wantErr: "default font size"},
		{name: "bad page size", modify: func(c *Config) { c.PageSize = "legal" }, wantErr: "invalid page size"},
		{name: "compression too high", modify: func(c *Config) { c.CompressionLevel = 10 }, wantErr: "compression level"},
		{name: "compression too low", modify: func(c *Config) { c.CompressionLevel = -3 }, wantErr: "compression level"},
		{name: "negative depth", modify: func(c *Config) { c.MaxDepth = -1 }, wantErr: "max depth"},
		{name: "file mode with type bits", modify: func(c *Config) { c.FileMode = os.ModeDir | 0o755 }, wantErr: "file mode"},
		{name: "bad log level", modify: func(c *Config) { c.LogLevel = "verbose" }, wantErr: "invalid log level"},
		{name: "bad log format", modify: func(c *Config) { c.LogFormat = "xml" }, wantErr: "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)
			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Normalized(t *testing.T) {
	config := &Config{Language: "en-gb", PageSize: "A4"}
	n := config.normalized()

	assert.Equal(t, "en-GB", n.Language)
	assert.Equal(t, "a4", n.PageSize)
	assert.Equal(t, 11.0, n.DefaultFontSize)
	assert.Zero(t, n.MaxDepth)
	assert.Equal(t, os.FileMode(0o644), n.FileMode)
	// The receiver is untouched
	assert.Equal(t, "en-gb", config.Language)
}
