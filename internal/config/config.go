package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"

	"github.com/sgurzheyev/Clean-Egypt-co/internal/logger"
	"go.uber.org/zap"
)

// Config хранит все конфигурационные параметры приложения.
// Все значения приходят из окружения (или config.yaml), в исходниках
// не должно быть ни одного идентификатора сервиса или ключа.
type Config struct {
	AppEnv   string `mapstructure:"env"`
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	DatabaseURL string `mapstructure:"database_url"`
	DBHost      string
	DBPort      string
	DBUser      string
	DBName      string

	TelegramToken     string `mapstructure:"telegram_apitoken"`
	BotUsername       string `mapstructure:"bot_username"`
	OperatorChatID    int64  `mapstructure:"operator_chat_id"`
	WorkerGroupChatID int64  `mapstructure:"worker_group_chat_id"`

	MinioEndpoint  string `mapstructure:"minio_endpoint"`
	MinioAccessKey string `mapstructure:"minio_access_key"`
	MinioSecretKey string `mapstructure:"minio_secret_key"`
	MinioBucket    string `mapstructure:"minio_bucket"`
	MinioUseSSL    bool   `mapstructure:"minio_use_ssl"`

	MailerSendAPIKey string `mapstructure:"mailersend_api_key"`
	MailFromName     string `mapstructure:"mail_from_name"`
	MailFromEmail    string `mapstructure:"mail_from_email"`

	// PortalBaseURL — адрес портала исполнителя, подставляется в кнопку
	// "Take job" в уведомлении рабочей группе.
	PortalBaseURL string `mapstructure:"portal_base_url"`
}

// NotificationTargets возвращает список chat_id, получающих уведомление о новом заказе.
// Нулевые ID отбрасываются, чтобы не слать сообщения в никуда.
func (c *Config) NotificationTargets() []int64 {
	var targets []int64
	if c.OperatorChatID != 0 {
		targets = append(targets, c.OperatorChatID)
	}
	if c.WorkerGroupChatID != 0 {
		targets = append(targets, c.WorkerGroupChatID)
	}
	return targets
}

// LoadConfig загружает конфигурацию: значения по умолчанию, затем
// config.yaml (если есть), затем переменные окружения поверх.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("env", "dev")
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("minio_bucket", "order-photos")
	v.SetDefault("minio_use_ssl", true)
	v.SetDefault("mail_from_name", "CleanEgypt")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("ошибка чтения config.yaml: %w", err)
		}
	}

	v.AutomaticEnv()
	// Явные привязки, чтобы AutomaticEnv работал и без config.yaml.
	for _, key := range []string{
		"env", "port", "log_level", "database_url",
		"telegram_apitoken", "bot_username", "operator_chat_id", "worker_group_chat_id",
		"minio_endpoint", "minio_access_key", "minio_secret_key", "minio_bucket", "minio_use_ssl",
		"mailersend_api_key", "mail_from_name", "mail_from_email", "portal_base_url",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("ошибка привязки переменной %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	if cfg.TelegramToken == "" {
		logger.Log.Warn("TELEGRAM_APITOKEN is not set, order notifications will be disabled")
	}
	if cfg.OperatorChatID == 0 {
		logger.Log.Warn("OPERATOR_CHAT_ID is not set")
	}
	if cfg.MinioEndpoint == "" {
		logger.Log.Warn("MINIO_ENDPOINT is not set, photo uploads will be disabled")
	}
	if cfg.MailerSendAPIKey == "" {
		logger.Log.Warn("MAILERSEND_API_KEY is not set, confirmation emails will be disabled")
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL не установлена")
	}
	parsedURL, err := url.Parse(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга DATABASE_URL: %w", err)
	}
	cfg.DBHost = parsedURL.Hostname()
	cfg.DBPort = parsedURL.Port()
	if cfg.DBPort == "" {
		cfg.DBPort = "5432"
	}
	cfg.DBUser = parsedURL.User.Username()
	cfg.DBName = strings.TrimPrefix(parsedURL.Path, "/")

	logger.Log.Info("configuration loaded",
		zap.String("env", cfg.AppEnv),
		zap.String("db_host", cfg.DBHost),
		zap.String("db_name", cfg.DBName),
	)
	return cfg, nil
}
