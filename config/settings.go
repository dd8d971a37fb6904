package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
)

const (
	DefaultCategory      = "Misc"
	DefaultPromptRetries = 3
	DefaultIgnore        = ".*"
)

// Settings are the tool's own knobs, as opposed to the registry document.
type Settings struct {
	RegistryPath    string
	DefaultCategory string
	IgnorePatterns  []string
	PromptRetries   int
	LogLevel        zerolog.Level
}

// LoadSettings reads .env (if present) and the PAPR_* environment. A
// non-empty registryFlag takes precedence over PAPR_REGISTRY.
func LoadSettings(registryFlag string) (Settings, error) {
	_ = godotenv.Load()
	return settingsFromEnv(registryFlag, os.LookupEnv)
}

func settingsFromEnv(registryFlag string, lookupEnv func(string) (string, bool)) (Settings, error) {
	getenv := func(key string) string {
		v, _ := lookupEnv(key)
		return v
	}

	s := Settings{
		RegistryPath:    DefaultFileName,
		DefaultCategory: DefaultCategory,
		IgnorePatterns:  []string{DefaultIgnore},
		PromptRetries:   DefaultPromptRetries,
		LogLevel:        zerolog.WarnLevel,
	}

	path := strings.TrimSpace(registryFlag)
	if path == "" {
		path = strings.TrimSpace(getenv("PAPR_REGISTRY"))
	}
	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return s, fmt.Errorf("PAPR_REGISTRY %q: %w", path, err)
		}
		s.RegistryPath = expanded
	}

	if v := strings.TrimSpace(getenv("PAPR_DEFAULT_CATEGORY")); v != "" {
		s.DefaultCategory = v
	}

	// PAPR_IGNORE="" turns the default pattern off.
	if v, ok := lookupEnv("PAPR_IGNORE"); ok {
		s.IgnorePatterns = nil
		for _, part := range strings.Split(v, ",") {
			pattern := strings.TrimSpace(part)
			if pattern == "" {
				continue
			}
			if !doublestar.ValidatePattern(pattern) {
				return s, fmt.Errorf("PAPR_IGNORE: invalid pattern %q", pattern)
			}
			s.IgnorePatterns = append(s.IgnorePatterns, pattern)
		}
	}

	if v := strings.TrimSpace(getenv("PAPR_PROMPT_RETRIES")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return s, fmt.Errorf("PAPR_PROMPT_RETRIES must be a positive integer, got %q", v)
		}
		s.PromptRetries = n
	}

	if v := strings.TrimSpace(getenv("PAPR_LOG_LEVEL")); v != "" {
		level, err := zerolog.ParseLevel(strings.ToLower(v))
		if err != nil {
			return s, fmt.Errorf("PAPR_LOG_LEVEL: %w", err)
		}
		s.LogLevel = level
	}

	return s, nil
}
