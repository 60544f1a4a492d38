package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/TWRT/issue-disassembler/internal/client/gemini"
	"github.com/joho/godotenv"
)

const DefaultEnvFile = ".env.local"

type Config struct {
	GeminiModel   string
	GeminiToken   string
	GeminiBaseUrl string
	DBPath        string
	HTTPAddr      string
}

// Load seeds the process environment from the env file (TODO_ENV_FILE or
// .env.local) and reads the settings. A missing env file is fine and
// variables already set in the environment are never overridden. Missing
// model or token are left empty.
func Load() (*Config, error) {
	envFile := getenv("TODO_ENV_FILE", DefaultEnvFile)
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = os.Getenv("GEMINI_MIDEL")
	}

	return &Config{
		GeminiModel:   model,
		GeminiToken:   os.Getenv("GEMINI_API_TOKEN"),
		GeminiBaseUrl: getenv("GEMINI_BASE_URL", gemini.DefaultBaseUrl),
		DBPath:        getenv("TODO_DB_PATH", "./todos.db"),
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
	}, nil
}

func (c *Config) Missing() []string {
	var missing []string
	if c.GeminiModel == "" {
		missing = append(missing, "GEMINI_MODEL")
	}
	if c.GeminiToken == "" {
		missing = append(missing, "GEMINI_API_TOKEN")
	}
	return missing
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
