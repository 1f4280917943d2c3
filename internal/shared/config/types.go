package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host" validate:"required"`
	Port           int      `mapstructure:"port" validate:"min=1,max=65535"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	// RateLimit caps mutating requests per actor per minute; 0 disables it.
	// It needs Redis.
	RateLimit int `mapstructure:"rate_limit" validate:"min=0"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects one of the supported gorm drivers.
// Driver "sqlite" uses Database as the file path (":memory:" is allowed).
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver" validate:"oneof=mysql postgres sqlite"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database" validate:"required"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case "postgres":
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database, sslMode)
	case "sqlite":
		return d.Database
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format     string `mapstructure:"format" validate:"omitempty,oneof=console json"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type AutoBanConfig struct {
	WarningThreshold int `mapstructure:"warning_threshold" validate:"min=1"`
	WindowDays       int `mapstructure:"window_days" validate:"min=1"`
}

type PageConfig struct {
	DefaultLimit int `mapstructure:"default_limit" validate:"min=1"`
	MaxLimit     int `mapstructure:"max_limit" validate:"gtefield=DefaultLimit"`
}

// ModerationConfig holds policy knobs for the moderation service.
type ModerationConfig struct {
	SeedDemoData    bool          `mapstructure:"seed_demo_data"`
	SQLRepositories bool          `mapstructure:"sql_repositories"`
	AutoBan         AutoBanConfig `mapstructure:"auto_ban"`
	Page            PageConfig    `mapstructure:"page"`
	EventsChannel   string        `mapstructure:"events_channel"`
	// Timezone is the IANA zone background jobs are scheduled in.
	Timezone string `mapstructure:"timezone"`
}

// SnapshotConfig selects where the aggregate graph snapshot is kept.
type SnapshotConfig struct {
	Driver   string `mapstructure:"driver" validate:"oneof=memory sql redis bolt disabled"`
	Key      string `mapstructure:"key" validate:"required"`
	BoltPath string `mapstructure:"bolt_path"`
	// FlushInterval is how often, in seconds, unsaved changes are retried.
	// 0 disables the background flush.
	FlushInterval int `mapstructure:"flush_interval" validate:"min=0"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}
