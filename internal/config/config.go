package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv   string
	Server   ServerConfig
	Database DatabaseConfig
	Mail     MailConfig
	Sender   SenderConfig
	Outreach OutreachConfig
	Sweep    SweepConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
}

type ServerConfig struct {
	Address            string
	CORSAllowedOrigins []string
	TrustProxyHeaders  bool
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type MailConfig struct {
	Provider    string // smtp | ses
	Host        string
	Port        int
	User        string
	Password    string
	FromAddress string
	AWSRegion   string
	AWSKeyID    string
	AWSSecret   string
}

type SenderConfig struct {
	Name    string
	Company string
	Phone   string
}

type OutreachConfig struct {
	SendDelay time.Duration
}

type SweepConfig struct {
	Enabled  bool
	Schedule string
	Timezone string
	LockTTL  time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	URL string
}

func LoadAll() (*Config, error) {
	var errs []error

	cfg := &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Address:            getEnv("SERVER_ADDRESS", ":8080"),
			CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,*")),
			TrustProxyHeaders:  getEnvBool("TRUST_PROXY_HEADERS", false, &errs),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10, &errs),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5, &errs),
			ConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 5, &errs)) * time.Minute,
		},
		Mail: MailConfig{
			Provider:    strings.ToLower(getEnv("EMAIL_PROVIDER", "smtp")),
			Host:        os.Getenv("MAIL_HOST"),
			Port:        getEnvInt("MAIL_PORT", 587, &errs),
			User:        os.Getenv("MAIL_USER"),
			Password:    os.Getenv("MAIL_PASS"),
			FromAddress: os.Getenv("MAIL_FROM_ADDRESS"),
			AWSRegion:   getEnv("AWS_REGION", "us-east-1"),
			AWSKeyID:    os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecret:   os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
		Sender: SenderConfig{
			Name:    getEnv("SENDER_NAME", "Your Local Home Buyer"),
			Company: getEnv("SENDER_COMPANY", "Cash Home Buyers"),
			Phone:   os.Getenv("SENDER_PHONE"),
		},
		Outreach: OutreachConfig{
			SendDelay: time.Duration(getEnvInt("OUTREACH_SEND_DELAY_MS", 1000, &errs)) * time.Millisecond,
		},
		Sweep: SweepConfig{
			Enabled:  getEnvBool("SWEEP_ENABLED", true, &errs),
			Schedule: getEnv("SWEEP_SCHEDULE", "0 9 * * *"),
			Timezone: getEnv("SWEEP_TIMEZONE", "America/New_York"),
			LockTTL:  time.Duration(getEnvInt("SWEEP_LOCK_TTL_SECONDS", 3600, &errs)) * time.Second,
		},
		Redis: loadRedisConfig(&errs),
		RabbitMQ: RabbitMQConfig{
			URL: os.Getenv("RABBITMQ_URL"),
		},
	}

	errs = append(errs, validate(cfg)...)
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func loadRedisConfig(errs *[]error) RedisConfig {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return RedisConfig{Enabled: false}
	}
	return RedisConfig{
		Enabled:  true,
		Address:  addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getEnvInt("REDIS_DB", 0, errs),
	}
}

func validate(cfg *Config) []error {
	var errs []error
	if cfg.Database.URL == "" {
		errs = append(errs, errors.New("missing required env var: DATABASE_URL"))
	}
	if cfg.Database.MaxOpenConns <= 0 {
		errs = append(errs, errors.New("DB_MAX_OPEN_CONNS must be > 0"))
	}
	if cfg.Mail.FromAddress == "" {
		errs = append(errs, errors.New("missing required env var: MAIL_FROM_ADDRESS"))
	}
	switch cfg.Mail.Provider {
	case "smtp":
		if cfg.Mail.Host == "" {
			errs = append(errs, errors.New("MAIL_HOST is required when EMAIL_PROVIDER=smtp"))
		}
	case "ses":
	default:
		errs = append(errs, fmt.Errorf("unknown EMAIL_PROVIDER %q (want smtp or ses)", cfg.Mail.Provider))
	}
	if cfg.Outreach.SendDelay < 0 {
		errs = append(errs, errors.New("OUTREACH_SEND_DELAY_MS must be >= 0"))
	}
	if cfg.Sweep.LockTTL <= 0 {
		errs = append(errs, errors.New("SWEEP_LOCK_TTL_SECONDS must be > 0"))
	}
	if _, err := time.LoadLocation(cfg.Sweep.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid SWEEP_TIMEZONE %q: %w", cfg.Sweep.Timezone, err))
	}
	return errs
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid int for env %s: %s", key, v))
		return def
	}
	return i
}

func getEnvBool(key string, def bool, errs *[]error) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid bool for env %s: %s", key, v))
		return def
	}
	return b
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
