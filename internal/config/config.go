package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения
type Config struct {
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:":8080"`
	DatabasePath  string `env:"DATABASE_PATH" envDefault:"coffeeshop.db"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // "json" или "text"

	// Секрет подписи токенов. Ротация секрета инвалидирует все
	// выпущенные токены.
	JWTSecret string        `env:"JWT_SECRET,required"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	// Базовый URL приложения для ссылок в письмах
	AppURL string `env:"APP_URL" envDefault:"http://localhost:8080"`

	Email EmailConfig
}

// EmailConfig описывает SMTP-транспорт. Без EMAIL_USER/EMAIL_PASSWORD
// почтовый сервис работает как no-op.
type EmailConfig struct {
	Host     string `env:"EMAIL_HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"EMAIL_PORT" envDefault:"587"`
	Secure   bool   `env:"EMAIL_SECURE"` // true для 465, false для 587
	User     string `env:"EMAIL_USER"`
	Password string `env:"EMAIL_PASSWORD"`
	From     string `env:"EMAIL_FROM"` // пустой — используется EMAIL_USER
}

// Load загружает конфигурацию из переменных окружения.
// В режиме разработки подхватывает .env файл, если он есть.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); !os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return cfg, nil
}
