package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	AnthropicAPIKey  string
	AnthropicBaseURL string
	ClaudeModel      string
	ClaudeOCRModel   string

	GeminiAPIKey string
	GeminiModel  string

	MaxFieldChars int
	MaxTokens     int
	OCRMaxTokens  int

	TelegramBotToken string
	DatabaseURL      string
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("env %s: not an integer: %q", k, v)
	}
	return n
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8000"),

		AnthropicAPIKey:  mustEnv("ANTHROPIC_API_KEY"),
		AnthropicBaseURL: getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
		ClaudeModel:      getEnv("CLAUDE_MODEL", "claude-sonnet-4-5-20250929"),
		ClaudeOCRModel:   getEnv("CLAUDE_OCR_MODEL", "claude-3-5-haiku-20241022"),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		MaxFieldChars: getEnvInt("MAX_FIELD_CHARS", 10000),
		MaxTokens:     getEnvInt("MAX_TOKENS", 8192),
		OCRMaxTokens:  getEnvInt("OCR_MAX_TOKENS", 1024),

		// Only the bot binary needs these; it checks for them itself.
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
	}
}
