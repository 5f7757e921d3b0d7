package config

import (
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	TablePrefix string

	// Relational store
	DatabaseURL string

	// Azure Speech
	SpeechKey      string
	SpeechRegion   string
	SpeechLanguage string

	// Azure Cognitive Search
	SearchEndpoint string
	SearchKey      string
	SearchIndex    string
	SearchIndexer  string

	// IndexerWait is how long the trigger endpoint blocks after starting the
	// remote indexing job before running the sync engine inline.
	IndexerWait time.Duration

	// Audio pipeline
	FFmpegPath string
	ScratchDir string
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix: getTablePrefix(env),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		SpeechKey:      getEnv("SPEECH_KEY", ""),
		SpeechRegion:   getEnv("SPEECH_REGION", ""),
		SpeechLanguage: getEnv("SPEECH_LANGUAGE", "es-ES"),

		SearchEndpoint: getEnv("SEARCH_ENDPOINT", ""),
		SearchKey:      getEnv("SEARCH_KEY", ""),
		SearchIndex:    getEnv("SEARCH_INDEX", ""),
		SearchIndexer:  getEnv("SEARCH_INDEXER", ""),

		IndexerWait: time.Duration(getEnvInt("INDEXER_WAIT_SECONDS", 30)) * time.Second,

		FFmpegPath: getEnv("FFMPEG_PATH", "ffmpeg"),
		ScratchDir: getEnv("SCRATCH_DIR", os.TempDir()),
	}
}

// Validate fails fast at startup when the external collaborators are not
// fully configured.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, is.Port),
		validation.Field(&c.DatabaseURL, validation.Required),
		validation.Field(&c.SpeechKey, validation.Required),
		validation.Field(&c.SpeechRegion, validation.Required),
		validation.Field(&c.SpeechLanguage, validation.Required),
		validation.Field(&c.SearchEndpoint, validation.Required, is.URL),
		validation.Field(&c.SearchKey, validation.Required),
		validation.Field(&c.SearchIndex, validation.Required),
		validation.Field(&c.SearchIndexer, validation.Required),
		validation.Field(&c.IndexerWait, validation.Min(time.Duration(0))),
	)
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
