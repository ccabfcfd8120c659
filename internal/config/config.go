package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Telegram TelegramConfig
	Ai       AIConfig
	Helpdesk HelpdeskConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host         string
	Port         int
	Email        string
	Password     string
	SenderName   string
	SupportEmail string
}

type TelegramConfig struct {
	BotToken      string
	WebhookSecret string
}

type AIConfig struct {
	QAServiceURL  string
	OllamaBaseURL string
	LLMModel      string
}

// HelpdeskConfig holds the session-orchestration tunables.
type HelpdeskConfig struct {
	AnswerCacheTTL      time.Duration
	AnswerCacheMax      int
	DirectoryTTL        time.Duration
	SweepInterval       time.Duration
	IdleThreshold       time.Duration
	QATimeout           time.Duration
	DeliveryRetries     int
	DeliveryRetryDelay  time.Duration
	AnswerMaxChars      int
	ScopeMatchThreshold float64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/helpdesk.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:         getEnv("SMTP_HOST", ""),
			Port:         getEnvAsInt("SMTP_PORT", 587),
			Email:        getEnv("SMTP_EMAIL", ""),
			Password:     getEnv("SMTP_PASSWORD", ""),
			SenderName:   getEnv("SMTP_SENDER_NAME", "AI Helpdesk"),
			SupportEmail: getEnv("SUPPORT_EMAIL", "support@company.com"),
		},
		Telegram: TelegramConfig{
			BotToken:      getEnv("TELEGRAM_BOT_TOKEN", ""),
			WebhookSecret: getEnv("TELEGRAM_WEBHOOK_SECRET", ""),
		},
		Ai: AIConfig{
			QAServiceURL:  getEnv("QA_SERVICE_URL", "http://localhost:8100"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMModel:      getEnv("LLM_MODEL", "phi3.5"),
		},
		Helpdesk: HelpdeskConfig{
			AnswerCacheTTL:      getEnvAsDuration("ANSWER_CACHE_TTL", 1*time.Hour),
			AnswerCacheMax:      getEnvAsInt("ANSWER_CACHE_MAX_ENTRIES", 1000),
			DirectoryTTL:        getEnvAsDuration("PROJECT_DIRECTORY_TTL", 24*time.Hour),
			SweepInterval:       getEnvAsDuration("INACTIVITY_SWEEP_INTERVAL", 60*time.Second),
			IdleThreshold:       getEnvAsDuration("INACTIVITY_THRESHOLD", 5*time.Minute),
			QATimeout:           getEnvAsDuration("QA_TIMEOUT", 60*time.Second),
			DeliveryRetries:     getEnvAsInt("DELIVERY_MAX_ATTEMPTS", 3),
			DeliveryRetryDelay:  getEnvAsDuration("DELIVERY_RETRY_DELAY", 1*time.Second),
			AnswerMaxChars:      getEnvAsInt("ANSWER_MAX_CHARS", 4000),
			ScopeMatchThreshold: getEnvAsFloat("SCOPE_MATCH_THRESHOLD", 1.0),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
