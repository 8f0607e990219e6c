package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/eventschedule/eventschedule/internal/models"
)

type Config struct {
	ServerAddr string
	LogLevel   string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret   []byte
	JWTIssuer   string
	JWTAudience string
	TokenTTL    time.Duration

	BcryptCost int

	KafkaAddress []string

	ResetBaseURL string
	MailFrom     string
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		ServerAddr: EnvDefault("SERVER_ADDR", ":8080"),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTSecret:   []byte(os.Getenv("JWT_SECRET")),
		JWTIssuer:   EnvDefault("JWT_ISSUER", "eventschedule"),
		JWTAudience: EnvDefault("JWT_AUDIENCE", "eventschedule-clients"),
		TokenTTL:    EnvDurationDefault("TOKEN_TTL", time.Hour),

		BcryptCost: EnvIntDefault("BCRYPT_COST", bcrypt.DefaultCost),

		KafkaAddress: CSV(os.Getenv("KAFKA_ADDRESS")),

		ResetBaseURL: EnvDefault("RESET_BASE_URL", "http://localhost:3000"),
		MailFrom:     EnvDefault("MAIL_FROM", "no-reply@eventschedule.local"),
	}

	MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	MustNonEmpty(cfg.DBHost, "DB_HOST")
	MustNonEmpty(cfg.DBPort, "DB_PORT")
	MustNonEmpty(cfg.DBUser, "DB_USER")
	MustNonEmpty(cfg.DBName, "DB_NAME")

	return cfg, nil
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := db.AutoMigrate(&models.Account{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}
