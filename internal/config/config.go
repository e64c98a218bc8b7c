package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"pokedex-insights-go/internal/pokeapi"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	APIBaseURL       string
	FetchLimit       int
	FetchTimeout     time.Duration
	FetchConcurrency int

	// DatasetPath switches the record source to a workbook snapshot.
	DatasetPath string
}

// Load reads the environment, after merging a .env file when one exists.
func Load() (Config, error) {
	_ = godotenv.Load() // loads .env

	cfg := Config{
		Port:        envOr("PORT", "8080"),
		Environment: envOr("ENVIRONMENT", "local"),
		LogLevel:    envOr("LOG_LEVEL", "info"),
		APIBaseURL:  envOr("POKEAPI_BASE_URL", pokeapi.DefaultBaseURL),
		DatasetPath: os.Getenv("DATASET_PATH"),
	}

	var err error
	if cfg.FetchLimit, err = envInt("POKEAPI_LIMIT", pokeapi.DefaultLimit); err != nil {
		return Config{}, err
	}
	if cfg.FetchConcurrency, err = envInt("POKEAPI_CONCURRENCY", pokeapi.DefaultConcurrency); err != nil {
		return Config{}, err
	}
	timeoutSec, err := envInt("POKEAPI_TIMEOUT_SEC", int(pokeapi.DefaultTimeout/time.Second))
	if err != nil {
		return Config{}, err
	}
	cfg.FetchTimeout = time.Duration(timeoutSec) * time.Second
	return cfg, nil
}

// ClientOptions maps the fetch settings onto the API client.
func (c Config) ClientOptions() pokeapi.Options {
	return pokeapi.Options{
		BaseURL:     c.APIBaseURL,
		Limit:       c.FetchLimit,
		Concurrency: c.FetchConcurrency,
		Timeout:     c.FetchTimeout,
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", k, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("config %s: must be positive, got %d", k, n)
	}
	return n, nil
}
