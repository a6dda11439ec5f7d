package docxgen

import (
	"compress/flate"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

// Config contains all configuration options for a render engine
type Config struct {
	// Title, Subject, Creator, Description and Keywords fill docProps/core.xml
	Title       string `toml:"title"`
	Subject     string `toml:"subject"`
	Creator     string `toml:"creator"`
	Description string `toml:"description"`
	Keywords    string `toml:"keywords"`
	// Language is a BCP 47 tag used for the document default language
	Language string `toml:"language"`
	// Created and Modified are written to core properties when set. Left zero, the
	// package carries no timestamps.
	Created  time.Time `toml:"created"`
	Modified time.Time `toml:"modified"`

	// DefaultFont is the document default font family
	DefaultFont string `toml:"default_font"`
	// DefaultFontSize is the document default font size in points, 0 for 11pt
	DefaultFontSize float64 `toml:"default_font_size"`
	// PageSize is letter (the default) or a4
	PageSize string `toml:"page_size"`

	// CompressionLevel is the Deflate level for package members (-2 to 9)
	CompressionLevel int `toml:"compression_level"`
	// LiteralBreakMarkers also treats the two characters `\n` in text as a paragraph break.
	// It is on by default; set it to false when text may contain a literal backslash-n.
	LiteralBreakMarkers bool `toml:"literal_break_markers"`
	// MergeRuns merges adjacent runs with identical formatting before serialization
	MergeRuns bool `toml:"merge_runs"`
	// MaxDepth limits how deeply element trees may nest, 0 for no limit
	MaxDepth int `toml:"max_depth"`
	// FileMode is the permission of files written by Render
	FileMode os.FileMode `toml:"file_mode"`

	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string `toml:"log_level"`
	// LogFormat is console (the default) or json
	LogFormat string `toml:"log_format"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Creator:             "go-docxgen",
		Language:            "en-US",
		DefaultFont:         "Calibri",
		DefaultFontSize:     11,
		PageSize:            "letter",
		CompressionLevel:    flate.DefaultCompression,
		LiteralBreakMarkers: true,
		FileMode:            0o644,
		LogLevel:            "info",
		LogFormat:           "console",
	}
}

// ConfigFromEnvironment creates a configuration from DOCXGEN_* environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()
	config.applyEnvironment(os.Getenv)
	return config
}

// LoadConfig reads a TOML configuration file. Keys missing from the file keep their
// default values; unknown keys are an error.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	config := DefaultConfig()
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return config, nil
}

// applyEnvironment overrides fields from the environment. Malformed numeric and
// boolean values are ignored.
func (c *Config) applyEnvironment(getenv func(string) string) {
	strs := []struct {
		key string
		dst *string
	}{
		{"DOCXGEN_TITLE", &c.Title},
		{"DOCXGEN_SUBJECT", &c.Subject},
		{"DOCXGEN_CREATOR", &c.Creator},
		{"DOCXGEN_LANGUAGE", &c.Language},
		{"DOCXGEN_DEFAULT_FONT", &c.DefaultFont},
		{"DOCXGEN_PAGE_SIZE", &c.PageSize},
		{"DOCXGEN_LOG_LEVEL", &c.LogLevel},
		{"DOCXGEN_LOG_FORMAT", &c.LogFormat},
	}
	for _, s := range strs {
		if val := getenv(s.key); val != "" {
			*s.dst = val
		}
	}

	if val := getenv("DOCXGEN_DEFAULT_FONT_SIZE"); val != "" {
		if size, err := strconv.ParseFloat(val, 64); err == nil {
			c.DefaultFontSize = size
		}
	}
	if val := getenv("DOCXGEN_COMPRESSION_LEVEL"); val != "" {
		if level, err := strconv.Atoi(val); err == nil {
			c.CompressionLevel = level
		}
	}
	if val := getenv("DOCXGEN_MAX_DEPTH"); val != "" {
		if depth, err := strconv.Atoi(val); err == nil {
			c.MaxDepth = depth
		}
	}
	if val := getenv("DOCXGEN_LITERAL_BREAKS"); val != "" {
		c.LiteralBreakMarkers = parseBool(val)
	}
	if val := getenv("DOCXGEN_MERGE_RUNS"); val != "" {
		c.MergeRuns = parseBool(val)
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Language != "" {
		if _, err := language.Parse(c.Language); err != nil {
			return fmt.Errorf("invalid language tag %q: %w", c.Language, err)
		}
	}

	if c.DefaultFontSize < 0 || c.DefaultFontSize*2 > maxHalfPoints {
		return fmt.Errorf("default font size %v is out of range", c.DefaultFontSize)
	}

	if _, ok := pageSizes[strings.ToLower(c.PageSize)]; !ok && c.PageSize != "" {
		return fmt.Errorf("invalid page size: %s", c.PageSize)
	}

	if c.CompressionLevel < flate.HuffmanOnly || c.CompressionLevel > flate.BestCompression {
		return fmt.Errorf("compression level %d is out of range", c.CompressionLevel)
	}

	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth cannot be negative")
	}

	if c.FileMode&^os.ModePerm != 0 {
		return fmt.Errorf("file mode %v must only carry permission bits", c.FileMode)
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}

	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s", c.LogFormat)
	}

	return nil
}

// normalized returns a copy with the language tag canonicalised and unset fields defaulted
func (c *Config) normalized() *Config {
	cp := *c
	if cp.Language != "" {
		if tag, err := language.Parse(cp.Language); err == nil {
			cp.Language = tag.String()
		}
	}
	defaults := DefaultConfig()
	cp.PageSize = strings.ToLower(cp.PageSize)
	if cp.PageSize == "" {
		cp.PageSize = defaults.PageSize
	}
	if cp.DefaultFontSize == 0 {
		cp.DefaultFontSize = defaults.DefaultFontSize
	}
	if cp.FileMode == 0 {
		cp.FileMode = defaults.FileMode
	}
	return &cp
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
