package config

import (
	"errors"
	"fmt"
	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
	"net/http"
	"os"
	"time"
)

const (
	defaultEmailConfirmationTTL = "120h"
	defaultOutboxKey            = "mail:outbox"
	defaultLinkEndpoint         = "/records/{resource_id}"
	defaultCacheTTL             = 300
)

type AppConfig struct {
	DatabaseConfig DatabaseConfig   `yaml:"databaseConfig"`
	RedisConfig    RedisConfig      `yaml:"redisConfig"`
	ServerAddr     string           `yaml:"serverAddr"`
	S3Config       S3Config         `yaml:"s3Config"`
	JWT            JWTConfig        `yaml:"jwt"`
	SecretLinks    SecretLinkConfig `yaml:"secretLinks"`
	Site           SiteConfig       `yaml:"site"`
	Mail           MailConfig       `yaml:"mail"`
	TTL            TTL              `yaml:"TTL"`
}

func LoadConfig(path string) (*AppConfig, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseConfig(file)
}

// ParseConfig : разбирает yaml, проставляет значения по умолчанию и проверяет конфигурацию
func ParseConfig(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("некорректная конфигурация: %w", err)
	}

	return &cfg, nil
}

func (cfg *AppConfig) applyDefaults() {
	if cfg.SecretLinks.EmailConfirmationTTL == "" {
		cfg.SecretLinks.EmailConfirmationTTL = defaultEmailConfirmationTTL
	}
	if cfg.SecretLinks.LinkEndpoint == "" {
		cfg.SecretLinks.LinkEndpoint = defaultLinkEndpoint
	}
	if cfg.Mail.OutboxKey == "" {
		cfg.Mail.OutboxKey = defaultOutboxKey
	}
	if cfg.TTL.S3AndRedis == 0 {
		cfg.TTL.S3AndRedis = defaultCacheTTL
	}
	if cfg.JWT.AccessTokenTTL == "" {
		cfg.JWT.AccessTokenTTL = "15m"
	}
}

func (cfg *AppConfig) Validate() error {
	if cfg.SecretLinks.SecretKey == "" {
		return errors.New("secretLinks.secret_key обязателен")
	}
	if _, err := cfg.EmailConfirmationTTL(); err != nil {
		return fmt.Errorf("secretLinks.email_confirmation_ttl: %w", err)
	}
	if _, err := time.ParseDuration(cfg.JWT.AccessTokenTTL); err != nil {
		return fmt.Errorf("jwt.access_token_ttl: %w", err)
	}
	return nil
}

// EmailConfirmationTTL : время жизни токена из письма подтверждения email
func (cfg *AppConfig) EmailConfirmationTTL() (time.Duration, error) {
	return time.ParseDuration(cfg.SecretLinks.EmailConfirmationTTL)
}

func (cfg *AppConfig) CacheTTL() time.Duration {
	return time.Duration(cfg.TTL.S3AndRedis) * time.Second
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:    serverAddress,
		Handler: router,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
