package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMappingFile    = "assetMap.ts"
	DefaultWatchPattern   = "*AssetMap.ts"
	DefaultPreviewCommand = "rbxAssetSync.previewAudio"
	DefaultCacheSize      = 256
	DefaultLogLevel       = "info"

	// FileName is the optional per-project settings file
	FileName = ".rbxasset.yaml"
)

// Config holds per-project settings
type Config struct {
	Root             string   `yaml:"-"`
	MappingFile      string   `yaml:"mapping_file"`
	WatchPattern     string   `yaml:"watch_pattern"`
	SourceExtensions []string `yaml:"source_extensions"`
	IgnoreDirs       []string `yaml:"ignore_dirs"`
	CacheSize        int      `yaml:"cache_size"`
	LogLevel         string   `yaml:"log_level"`
	PreviewCommand   string   `yaml:"preview_command"`
}

// ValidationError reports a bad configuration value
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

// Default returns the built-in configuration for root
func Default(root string) Config {
	return Config{
		Root:             root,
		MappingFile:      DefaultMappingFile,
		WatchPattern:     DefaultWatchPattern,
		SourceExtensions: []string{".ts"},
		IgnoreDirs:       []string{".git", "node_modules"},
		CacheSize:        DefaultCacheSize,
		LogLevel:         DefaultLogLevel,
		PreviewCommand:   DefaultPreviewCommand,
	}
}

// ProjectRoot returns the project root from RBXASSET_ROOT,
// falling back to the working directory.
func ProjectRoot() string {
	if env := os.Getenv("RBXASSET_ROOT"); env != "" {
		return env
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Load builds the configuration for root: defaults, then <root>/.env,
// then <root>/.rbxasset.yaml, then environment overrides.
func Load(root string) (Config, error) {
	root = expandHome(root)
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	cfg := Default(root)

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(filepath.Join(root, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(root, FileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", FileName, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	if env := os.Getenv("RBXASSET_MAPPING_FILE"); env != "" {
		cfg.MappingFile = env
	}
	if env := os.Getenv("RBXASSET_LOG_LEVEL"); env != "" {
		cfg.LogLevel = env
	}

	return cfg, cfg.Validate()
}

// Validate checks field values
func (c Config) Validate() error {
	if c.MappingFile == "" {
		return &ValidationError{Field: "mapping_file", Message: "must not be empty"}
	}
	if c.WatchPattern == "" {
		return &ValidationError{Field: "watch_pattern", Message: "must not be empty"}
	}
	if _, err := path.Match(c.WatchPattern, ""); err != nil {
		return &ValidationError{Field: "watch_pattern", Message: err.Error()}
	}
	for _, ext := range c.SourceExtensions {
		if !strings.HasPrefix(ext, ".") {
			return &ValidationError{Field: "source_extensions", Message: fmt.Sprintf("%q must start with a dot", ext)}
		}
	}
	if c.CacheSize < 0 {
		return &ValidationError{Field: "cache_size", Message: "must not be negative"}
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Field: "log_level", Message: fmt.Sprintf("unknown level %q", c.LogLevel)}
	}
	return nil
}

func expandHome(p string) string {
	if strings.HasPrefix(p, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, p[1:])
	}
	return p
}
