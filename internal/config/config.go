package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	LogLevel           string   `yaml:"log_level"`
	LogFormat          string   `yaml:"log_format"`
	Output             string   `yaml:"output"`
	ItemTypes          []string `yaml:"item_types"`
	CopyExtensions     []string `yaml:"copy_extensions"`
	CopyExcludes       []string `yaml:"copy_excludes"`
	ExcludedAssemblies []string `yaml:"excluded_assemblies"`
}

// Load loads configuration from multiple sources with precedence:
// 1. Environment variables
// 2. ./.env.local (dotenv) - walks up parent directories to find it
// 3. configPath, or ~/.config/tdsmerge/config.yaml when configPath is empty
//
// Empty list settings mean "use the built-in defaults".
func Load(configPath string) (*Config, error) {
	cfg := &Config{
		LogLevel:  "info",
		LogFormat: "console",
		Output:    "table",
	}

	// Load .env.local if it exists (walking up parent directories)
	if envPath := findEnvLocal(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	if err := loadYAMLConfig(cfg, configPath); err != nil {
		return nil, err
	}

	if logLevel := os.Getenv("TDSMERGE_LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat := os.Getenv("TDSMERGE_LOG_FORMAT"); logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if output := os.Getenv("TDSMERGE_OUTPUT"); output != "" {
		cfg.Output = output
	}
	if v := os.Getenv("TDSMERGE_ITEM_TYPES"); v != "" {
		cfg.ItemTypes = splitList(v)
	}
	if v := os.Getenv("TDSMERGE_COPY_EXTENSIONS"); v != "" {
		cfg.CopyExtensions = splitList(v)
	}
	if v := os.Getenv("TDSMERGE_COPY_EXCLUDES"); v != "" {
		cfg.CopyExcludes = splitList(v)
	}
	if v := getEnvOrFile("TDSMERGE_EXCLUDED_ASSEMBLIES", "TDSMERGE_EXCLUDED_ASSEMBLIES_FILE"); v != "" {
		cfg.ExcludedAssemblies = splitList(v)
	}

	for i, ext := range cfg.CopyExtensions {
		if !strings.HasPrefix(ext, ".") {
			cfg.CopyExtensions[i] = "." + ext
		}
	}

	return cfg, nil
}

// loadYAMLConfig merges a YAML config file into cfg. A missing default file
// is not an error; a missing explicit file is.
func loadYAMLConfig(cfg *Config, configPath string) error {
	explicit := configPath != ""
	if !explicit {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		configPath = filepath.Join(homeDir, ".config", "tdsmerge", "config.yaml")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", configPath, err)
	}
	return nil
}

// splitList splits a comma or newline separated list, dropping blanks.
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	var out []string
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// getEnvOrFile gets an environment variable value, or reads it from a file
// if the _FILE variant is set
func getEnvOrFile(envVar, fileVar string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}

	if filePath := os.Getenv(fileVar); filePath != "" {
		data, err := os.ReadFile(filePath)
		if err == nil {
			return string(data)
		}
	}

	return ""
}

// findEnvLocal searches for .env.local starting from cwd and walking up
// parent directories. Stops at the user's home directory.
// Returns the path to .env.local if found, empty string otherwise.
func findEnvLocal() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if _, err := os.Stat(".env.local"); err == nil {
			return ".env.local"
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	homeDir = filepath.Clean(homeDir)
	dir := filepath.Clean(cwd)

	for {
		envPath := filepath.Join(dir, ".env.local")
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}

		if dir == homeDir {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}
