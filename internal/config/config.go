// Package config loads application configuration from YAML.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chmouel/lazyscripture/internal/models"
	"github.com/chmouel/lazyscripture/internal/theme"
	"gopkg.in/yaml.v3"
)

// AppConfig defines the global lazyscripture configuration options.
type AppConfig struct {
	CorpusDir          string // Directory holding the translation XML files
	DefaultTranslation string // Translation selected when no session state exists
	Theme              string // Theme name: see AvailableThemes in internal/theme
	DebugLog           string
	StateFile          string // Persisted reading position
	SnippetLength      int    // Display bound for search result snippets
	WatchCorpus        bool   // Reload automatically when corpus files change
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	home, _ := os.UserHomeDir()
	return &AppConfig{
		CorpusDir:          filepath.Join(home, ".local", "share", "lazyscripture", "translations"),
		DefaultTranslation: "BSB",
		Theme:              "",
		StateFile:          filepath.Join(home, ".local", "share", "lazyscripture", models.StateFilename),
		SnippetLength:      80,
		WatchCorpus:        true,
	}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func coerceInt(value any, defaultVal int) int {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return defaultVal
	case int:
		return v
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if i, err := strconv.Atoi(text); err == nil {
			return i
		}
	}
	return defaultVal
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()

	if corpusDir, ok := data["corpus_dir"].(string); ok {
		corpusDir = strings.TrimSpace(corpusDir)
		if corpusDir != "" {
			cfg.CorpusDir = corpusDir
		}
	}
	if translation, ok := data["default_translation"].(string); ok {
		translation = strings.TrimSpace(translation)
		if translation != "" {
			cfg.DefaultTranslation = translation
		}
	}
	if debugLog, ok := data["debug_log"].(string); ok {
		debugLog = strings.TrimSpace(debugLog)
		if debugLog != "" {
			cfg.DebugLog = debugLog
		}
	}
	if stateFile, ok := data["state_file"].(string); ok {
		stateFile = strings.TrimSpace(stateFile)
		if stateFile != "" {
			cfg.StateFile = stateFile
		}
	}
	if themeName, ok := data["theme"].(string); ok {
		if normalized := NormalizeThemeName(themeName); normalized != "" {
			cfg.Theme = normalized
		}
	}

	cfg.SnippetLength = coerceInt(data["snippet_length"], cfg.SnippetLength)
	cfg.WatchCorpus = coerceBool(data["watch_corpus"], cfg.WatchCorpus)

	return cfg
}

func getConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// LoadConfig reads the application configuration from a YAML file. A
// missing file yields the defaults; a malformed one does too, rather
// than failing startup.
func LoadConfig(configPath string) (*AppConfig, error) {
	var paths []string

	if configPath != "" {
		expanded, err := expandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		paths = []string{expanded}
	} else {
		configBase := filepath.Join(getConfigDir(), "lazyscripture")
		paths = []string{
			filepath.Join(configBase, "config.yaml"),
			filepath.Join(configBase, "config.yml"),
		}
	}

	var cfg *AppConfig

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		// #nosec G304 -- path comes from config flags owned by the user
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			return DefaultConfig(), nil
		}

		cfg = parseConfig(yamlData)
		break
	}

	if cfg == nil {
		cfg = DefaultConfig()
	}

	if cfg.Theme == "" {
		cfg.Theme = theme.DefaultDark()
	}

	return cfg, nil
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return filepath.Abs(path)
}

// NormalizeThemeName returns the canonical theme name if it is supported.
func NormalizeThemeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, known := range theme.AvailableThemes() {
		if name == known {
			return name
		}
	}
	return ""
}
