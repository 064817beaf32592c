package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config is everything the process reads from the environment. A .env file in
// the working directory is honored when present.
type Config struct {
	Port           string
	DatabaseURL    string
	RedisAddr      string
	ResendAPIKey   string
	ResendFrom     string
	CompanyName    string
	Seed           bool
	GinReleaseMode bool
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           getenv("PORT", "5000"),
		DatabaseURL:    getenv("DB_URL", "crm.db"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		ResendFrom:     getenv("RESEND_FROM_EMAIL", "Canvas Cartel <onboarding@resend.dev>"),
		CompanyName:    getenv("COMPANY_NAME", "Canvas Cartel"),
		Seed:           os.Getenv("SEED") != "false",
		GinReleaseMode: os.Getenv("GIN_MODE") == "release",
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
