package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DBType           string
	PostgresURL      string
	MongoURL         string
	MongoDatabase    string
	Port             string
	DBConnectTimeout time.Duration
	LogLevel         string

	AuthUser         string
	AuthPasswordHash string

	OpenAIKey   string
	OpenAIModel string

	R2Bucket          string
	R2AccountID       string
	R2PublicURL       string
	R2AccessKeyID     string
	R2SecretAccessKey string

	StatementTemplate string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	cfg := &Config{
		DBType:            getenv("DB_TYPE", "mongo"),
		PostgresURL:       os.Getenv("POSTGRES_URL"),
		MongoURL:          os.Getenv("MONGO_URL"),
		MongoDatabase:     getenv("MONGO_DATABASE", "abinterior"),
		Port:              getenv("PORT", "8080"),
		DBConnectTimeout:  10 * time.Second,
		LogLevel:          getenv("LOG_LEVEL", "info"),
		AuthUser:          os.Getenv("AUTH_USER"),
		AuthPasswordHash:  os.Getenv("AUTH_PASSWORD_HASH"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       os.Getenv("OPENAI_MODEL"),
		R2Bucket:          os.Getenv("R2_BUCKET"),
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2PublicURL:       os.Getenv("R2_PUBLIC_URL"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		StatementTemplate: os.Getenv("STATEMENT_TEMPLATE"),
	}

	if v := os.Getenv("DB_CONNECT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			log.Warn().Str("value", v).Msg("invalid DB_CONNECT_TIMEOUT, using 10s")
		} else {
			cfg.DBConnectTimeout = d
		}
	}
	return cfg
}

// R2Enabled reports whether statement sharing can be configured.
func (c *Config) R2Enabled() bool {
	return c.R2Bucket != "" && c.R2AccountID != "" && c.R2PublicURL != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
