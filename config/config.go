package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

var (
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisAddress  string
	RedisPassword string

	MailHost     string
	MailPort     string
	MailUsername string
	MailPassword string

	JWTSecret       string
	DefaultPassword string

	ClientUrl  string
	SchoolName string
	APIPort    string
)

// LoadEnv loads the .env file (if present) and fills the package-level
// configuration variables from the environment
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	PostgresHost = getEnv("POSTGRES_HOST", "localhost")
	PostgresPort = getEnv("POSTGRES_PORT", "5432")
	PostgresUser = getEnv("POSTGRES_USER", "postgres")
	PostgresPassword = getEnv("POSTGRES_PASSWORD", "postgres")
	PostgresDB = getEnv("POSTGRES_DB", "school_events")

	RedisAddress = getEnv("REDIS_ADDRESS", "localhost:6379")
	RedisPassword = getEnv("REDIS_PASSWORD", "")

	MailHost = getEnv("MAIL_HOST", "")
	MailPort = getEnv("MAIL_PORT", "587")
	MailUsername = getEnv("MAIL_USERNAME", "")
	MailPassword = getEnv("MAIL_PASSWORD", "")

	JWTSecret = getEnv("JWT_SECRET", "")
	DefaultPassword = getEnv("DEFAULT_ADMIN_PASSWORD", "")

	ClientUrl = getEnv("CLIENT_URL", "http://localhost:5173")
	SchoolName = getEnv("SCHOOL_NAME", "")
	APIPort = getEnv("API_PORT", "8080")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Notification dispatch configuration
type NotificationConfig struct {
	RetryDelay      time.Duration // Delay before the single redelivery attempt
	QueueSize       int           // Buffered queue capacity
	DiplomaCooldown time.Duration // Suppress duplicate fan-out for one diploma
}

var DefaultNotificationConfig = NotificationConfig{
	RetryDelay:      24 * time.Hour,
	QueueSize:       256,
	DiplomaCooldown: time.Hour,
}
