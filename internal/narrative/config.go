package narrative

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultModel answers narrative prompts unless overridden.
const DefaultModel = "claude-sonnet-4-20250514"

// Config defines collaborator settings.
type Config struct {
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
	Disabled  bool   `yaml:"disabled"`
}

// LoadConfig loads narrative config from yaml or env. Precedence:
// yaml file pointed at by NARRATIVE_CONFIG, then env, then defaults.
func LoadConfig() (Config, error) {
	cfg := Config{
		Model:     getenvDefault("NARRATIVE_MODEL", DefaultModel),
		MaxTokens: getenvIntDefault("NARRATIVE_MAX_TOKENS", defaultMaxTokens),
		Disabled:  getenvBool("NARRATIVE_DISABLED"),
	}

	if path := os.Getenv("NARRATIVE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBool(key string) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && value
}
