package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port         int
	LogLevel     string
	GeminiAPIKey string
	GeminiModel  string
	UploadDir    string
	NatsURL      string
	NatsToken    string
}

func Load() Config {
	return Config{
		Port:         envInt("CAREERBOT_PORT", 8760),
		LogLevel:     envStr("LOG_LEVEL", "info"),
		GeminiAPIKey: envStr("GEMINI_API_KEY", ""),
		GeminiModel:  envStr("CAREERBOT_MODEL", "gemini-2.5-flash"),
		UploadDir:    envStr("CAREERBOT_UPLOAD_DIR", "uploads"),
		NatsURL:      envStr("NATS_URL", ""),
		NatsToken:    envStr("NATS_TOKEN", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
