// Package config handles application configuration loading and validation using Viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Google    GoogleConfig    `mapstructure:"google"`
	Jira      JiraConfig      `mapstructure:"jira"`
	Workday   WorkdayConfig   `mapstructure:"workday"`
	Challenge ChallengeConfig `mapstructure:"challenge"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
}

// DatabaseConfig contains database connection settings for PostgreSQL and Redis.
type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// PostgresConfig contains PostgreSQL database connection and pool settings.
type PostgresConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Database        string `mapstructure:"database"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"ssl_mode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// RedisConfig contains Redis cache connection and pool settings.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
	CacheTTL int    `mapstructure:"cache_ttl"` // seconds
}

// GoogleConfig contains Google Calendar and Docs API settings.
type GoogleConfig struct {
	CalendarURL string `mapstructure:"calendar_url"`
	CalendarID  string `mapstructure:"calendar_id"`
	DocsURL     string `mapstructure:"docs_url"`
}

// JiraConfig contains fallback JIRA credentials used when a user has none configured.
type JiraConfig struct {
	Host     string `mapstructure:"host"`
	Email    string `mapstructure:"email"`
	APIToken string `mapstructure:"api_token"`
	JQLQuery string `mapstructure:"jql_query"`
}

// WorkdayConfig contains the capacity model constants.
type WorkdayConfig struct {
	StandardHours        float64 `mapstructure:"standard_hours"`
	ContextSwitchMinutes int     `mapstructure:"context_switch_minutes"`
}

// ChallengeConfig contains weekly challenge settings.
type ChallengeConfig struct {
	TargetPercentage int `mapstructure:"target_percentage"`
	LookbackDays     int `mapstructure:"lookback_days"`
}

// SchedulerConfig contains recurring job settings.
type SchedulerConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CapacityTime      string `mapstructure:"capacity_time"`      // HH:MM, daily capacity recompute
	ChallengeSchedule string `mapstructure:"challenge_schedule"` // cron expression for weekly challenge generation
	Timezone          string `mapstructure:"timezone"`
	SkipWeekends      bool   `mapstructure:"skip_weekends"`
}

// MetricsConfig contains metrics exporter settings.
type MetricsConfig struct {
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
}

// PrometheusConfig contains Prometheus metrics exporter settings.
type PrometheusConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig contains application logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Load reads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/meeting-pulse/")
	}

	setDefaults(v)

	// Bind specific environment variables (explicit bindings for 12-factor app compliance)
	// Server configuration
	_ = v.BindEnv("server.port", "SERVER_PORT")
	_ = v.BindEnv("server.environment", "SERVER_ENVIRONMENT")

	// PostgreSQL configuration
	_ = v.BindEnv("database.postgres.host", "POSTGRES_HOST")
	_ = v.BindEnv("database.postgres.port", "POSTGRES_PORT")
	_ = v.BindEnv("database.postgres.database", "POSTGRES_DB")
	_ = v.BindEnv("database.postgres.user", "POSTGRES_USER")
	_ = v.BindEnv("database.postgres.password", "POSTGRES_PASSWORD")
	_ = v.BindEnv("database.postgres.ssl_mode", "POSTGRES_SSL_MODE")
	_ = v.BindEnv("database.postgres.max_open_conns", "POSTGRES_MAX_OPEN_CONNS")
	_ = v.BindEnv("database.postgres.max_idle_conns", "POSTGRES_MAX_IDLE_CONNS")
	_ = v.BindEnv("database.postgres.conn_max_lifetime", "POSTGRES_CONN_MAX_LIFETIME")

	// Redis configuration
	_ = v.BindEnv("database.redis.host", "REDIS_HOST")
	_ = v.BindEnv("database.redis.port", "REDIS_PORT")
	_ = v.BindEnv("database.redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("database.redis.db", "REDIS_DB")
	_ = v.BindEnv("database.redis.pool_size", "REDIS_POOL_SIZE")
	_ = v.BindEnv("database.redis.cache_ttl", "REDIS_CACHE_TTL")

	// Google Calendar configuration
	_ = v.BindEnv("google.calendar_url", "GOOGLE_CALENDAR_URL")
	_ = v.BindEnv("google.calendar_id", "GOOGLE_CALENDAR_ID")
	_ = v.BindEnv("google.docs_url", "GOOGLE_DOCS_URL")

	// JIRA configuration
	_ = v.BindEnv("jira.host", "JIRA_HOST")
	_ = v.BindEnv("jira.email", "JIRA_EMAIL")
	_ = v.BindEnv("jira.api_token", "JIRA_API_TOKEN")
	_ = v.BindEnv("jira.jql_query", "JIRA_JQL_QUERY")

	// Logging configuration
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.format", "LOG_FORMAT")
	_ = v.BindEnv("logging.output", "LOG_OUTPUT")

	// Scheduler configuration
	_ = v.BindEnv("scheduler.enabled", "SCHEDULER_ENABLED")
	_ = v.BindEnv("scheduler.capacity_time", "SCHEDULER_CAPACITY_TIME")
	_ = v.BindEnv("scheduler.challenge_schedule", "SCHEDULER_CHALLENGE_SCHEDULE")
	_ = v.BindEnv("scheduler.timezone", "SCHEDULER_TIMEZONE")
	_ = v.BindEnv("scheduler.skip_weekends", "SCHEDULER_SKIP_WEEKENDS")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults registers fallbacks for settings that have sensible defaults.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("google.calendar_url", "https://www.googleapis.com/calendar/v3")
	v.SetDefault("google.calendar_id", "primary")
	v.SetDefault("google.docs_url", "https://docs.googleapis.com/v1")
	v.SetDefault("jira.jql_query", `status in ("To Do", "In Progress")`)
	v.SetDefault("workday.standard_hours", 8)
	v.SetDefault("workday.context_switch_minutes", 20)
	v.SetDefault("challenge.target_percentage", 80)
	v.SetDefault("challenge.lookback_days", 14)
	v.SetDefault("scheduler.timezone", "UTC")
	v.SetDefault("database.redis.cache_ttl", 300)
	v.SetDefault("metrics.prometheus.path", "/metrics")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Database.Postgres.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}
	if c.Database.Postgres.Database == "" {
		return fmt.Errorf("database.postgres.database is required")
	}
	if c.Database.Postgres.User == "" {
		return fmt.Errorf("database.postgres.user is required")
	}
	if c.Database.Redis.Host == "" {
		return fmt.Errorf("database.redis.host is required")
	}
	if c.Workday.StandardHours <= 0 {
		return fmt.Errorf("workday.standard_hours must be positive")
	}
	if c.Workday.ContextSwitchMinutes < 0 {
		return fmt.Errorf("workday.context_switch_minutes must not be negative")
	}
	if c.Challenge.TargetPercentage <= 0 || c.Challenge.TargetPercentage > 100 {
		return fmt.Errorf("challenge.target_percentage must be in (0, 100]")
	}
	return nil
}

// GetLocation returns the timezone location.
func (c *SchedulerConfig) GetLocation() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
