package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	sharedConfig "github.com/orris-inc/moderation/internal/shared/config"
	"github.com/orris-inc/moderation/internal/shared/constants"
)

type Config struct {
	Server     sharedConfig.ServerConfig     `mapstructure:"server" validate:"required"`
	Database   sharedConfig.DatabaseConfig   `mapstructure:"database"`
	Logger     sharedConfig.LoggerConfig     `mapstructure:"logger"`
	Redis      sharedConfig.RedisConfig      `mapstructure:"redis"`
	Moderation sharedConfig.ModerationConfig `mapstructure:"moderation"`
	Snapshot   sharedConfig.SnapshotConfig   `mapstructure:"snapshot"`
	Metrics    sharedConfig.MetricsConfig    `mapstructure:"metrics"`

	// Environment is the name passed to Load; it is not read from the file.
	Environment string `mapstructure:"-"`
}

// IsProduction reports whether the service runs with production semantics.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Environment) {
	case constants.EnvProduction, "prod", "release":
		return true
	}
	return false
}

// NeedsDatabase reports whether any configured component stores data in SQL.
func (c *Config) NeedsDatabase() bool {
	return c.Moderation.SQLRepositories || c.Snapshot.Driver == "sql"
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
// An optional explicit config file path may be given.
func Load(env string, configPath ...string) (*Config, error) {
	v := viper.New()

	if len(configPath) > 0 && configPath[0] != "" {
		v.SetConfigFile(configPath[0])
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix("MODERATION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, env)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Environment = env

	if err := Validate(&config); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Validate checks struct-tag constraints on the loaded configuration.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper, env string) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.rate_limit", 0)

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "moderation.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Moderation defaults
	v.SetDefault("moderation.seed_demo_data", env != constants.EnvProduction)
	v.SetDefault("moderation.sql_repositories", false)
	v.SetDefault("moderation.auto_ban.warning_threshold", 3)
	v.SetDefault("moderation.auto_ban.window_days", 10)
	v.SetDefault("moderation.page.default_limit", 20)
	v.SetDefault("moderation.page.max_limit", 200)
	v.SetDefault("moderation.events_channel", "moderation:events")
	v.SetDefault("moderation.timezone", "UTC")

	// Snapshot defaults
	v.SetDefault("snapshot.driver", "memory")
	v.SetDefault("snapshot.key", "moderation")
	v.SetDefault("snapshot.bolt_path", "data/moderation.snapshot.db")
	v.SetDefault("snapshot.flush_interval", 30)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
