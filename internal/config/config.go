package config

import (
	"fmt"
	"path"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	RepositoryPath       string `mapstructure:"repository_path"`
	RepositoryPassword   string `mapstructure:"repository_password"`
	ObjectStoreAccessKey string `mapstructure:"object_store_access_key"`
	ObjectStoreSecretKey string `mapstructure:"object_store_secret_key"`
	ObjectStoreRegion    string `mapstructure:"object_store_region"`

	ScratchDir string `mapstructure:"scratch_dir"`
	LogDir     string `mapstructure:"log_dir"`
	LogLevel   string `mapstructure:"log_level"`

	Telegram TelegramConfig `mapstructure:"telegram"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("scratch_dir", "/var/backups/stackvault/dump")
	v.SetDefault("log_dir", "/var/log")
	v.SetDefault("log_level", "info")
	v.SetDefault("object_store_region", "us-east-1")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.RepositoryPath == "" {
		return fmt.Errorf("repository_path is required")
	}
	if c.RepositoryPassword == "" {
		return fmt.Errorf("repository_password is required")
	}
	return nil
}

// Bucket returns the object-store bucket backing the repository: the
// final component of the repository path (e.g. "s3:s3.amazonaws.com/acme"
// yields "acme").
func (c *Config) Bucket() string {
	return path.Base(strings.TrimRight(c.RepositoryPath, "/"))
}

// HasObjectStoreKeys reports whether the usage query can authenticate.
func (c *Config) HasObjectStoreKeys() bool {
	return c.ObjectStoreAccessKey != "" && c.ObjectStoreSecretKey != ""
}

// HasTelegram reports whether outcome notifications are configured.
func (c *Config) HasTelegram() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
