package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	Version     string

	DatabaseURL string

	WorkflowWebhookURL string
	WebhookTimeout     time.Duration

	StripeWebhookSecret string
	SentryDSN           string

	RabbitMQUser string
	RabbitMQPass string
	RabbitMQHost string
	RabbitMQPort string

	RedisAddr string

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string

	SignupRateLimit      int
	LinkageStatsInterval time.Duration
	CORSAllowedOrigins   []string
}

// FromEnv carrega o .env (se existir) e lê as variáveis do processo.
func FromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("⚠️ .env ignorado: %v", err)
	}
	return Load(os.Getenv)
}

// Load monta o Config a partir de getenv. Nomes seguem o padrão dos secrets
// (azure-sql-connection-string -> AZURE_SQL_CONNECTION_STRING).
func Load(getenv func(string) string) (*Config, error) {
	var errs []error

	cfg := &Config{
		Port:        withDefault(getenv("PORT"), "8080"),
		Environment: withDefault(getenv("APP_ENV"), "development"),
		Version:     withDefault(getenv("APP_VERSION"), "1.0.0"),

		DatabaseURL: firstNonEmpty(getenv("DATABASE_URL"), getenv("AZURE_SQL_CONNECTION_STRING")),

		WorkflowWebhookURL: firstNonEmpty(getenv("WORKFLOW_WEBHOOK_URL"), getenv("AZURE_LOGIC_APP_URL")),

		StripeWebhookSecret: getenv("STRIPE_WEBHOOK_SECRET"),
		SentryDSN:           getenv("SENTRY_DSN"),

		RabbitMQUser: withDefault(getenv("RABBITMQ_USER"), "guest"),
		RabbitMQPass: withDefault(getenv("RABBITMQ_PASS"), "guest"),
		RabbitMQHost: getenv("RABBITMQ_HOST"),
		RabbitMQPort: withDefault(getenv("RABBITMQ_PORT"), "5672"),

		RedisAddr: getenv("REDIS_ADDR"),

		MailHost: getenv("MAIL_HOST"),
		MailUser: getenv("MAIL_USER"),
		MailPass: getenv("MAIL_PASS"),
		MailFrom: getenv("MAIL_FROM"),

		CORSAllowedOrigins: splitList(withDefault(getenv("CORS_ALLOWED_ORIGINS"), "*")),
	}

	var err error
	if cfg.WebhookTimeout, err = parseDuration(getenv, "WEBHOOK_TIMEOUT", 30*time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.LinkageStatsInterval, err = parseDuration(getenv, "LINKAGE_STATS_INTERVAL", 5*time.Minute); err != nil {
		errs = append(errs, err)
	}
	if cfg.MailPort, err = parseInt(getenv, "MAIL_PORT", 587); err != nil {
		errs = append(errs, err)
	}
	if cfg.SignupRateLimit, err = parseInt(getenv, "SIGNUP_RATE_LIMIT", 10); err != nil {
		errs = append(errs, err)
	}

	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL (or AZURE_SQL_CONNECTION_STRING) is required"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func (c *Config) RabbitMQEnabled() bool {
	return c.RabbitMQHost != ""
}

func (c *Config) MailEnabled() bool {
	return c.MailHost != ""
}

func withDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseDuration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	return d, nil
}

func parseInt(getenv func(string) string, key string, def int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: invalid number %q", key, raw)
	}
	return n, nil
}
