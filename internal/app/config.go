package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/coursehub-backend/internal/data/db"
	"github.com/yungbote/coursehub-backend/internal/observability"
	"github.com/yungbote/coursehub-backend/internal/platform/envutil"
	"github.com/yungbote/coursehub-backend/internal/platform/logger"
)

type Config struct {
	Port            string        `yaml:"port"`
	LogMode         string        `yaml:"log_mode"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	DB      DBConfig      `yaml:"db"`
	Auth    AuthConfig    `yaml:"auth"`
	Redis   RedisConfig   `yaml:"redis"`
	Metrics MetricsConfig `yaml:"metrics"`
	Otel    OtelConfig    `yaml:"otel"`
	CORS    CORSConfig    `yaml:"cors"`
}

type DBConfig struct {
	Driver          string        `yaml:"driver"`
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Name            string        `yaml:"name"`
	SSLMode         string        `yaml:"sslmode"`
	SQLitePath      string        `yaml:"sqlite_path"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	OpTimeout       time.Duration `yaml:"op_timeout"`
	AutoMigrate     bool          `yaml:"auto_migrate"`
}

type AuthConfig struct {
	JWTSecretKey string `yaml:"jwt_secret_key"`
	Issuer       string `yaml:"issuer"`
}

type RedisConfig struct {
	Addr    string `yaml:"addr"`
	Channel string `yaml:"channel"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Environment string  `yaml:"environment"`
	Version     string  `yaml:"version"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

func defaultConfig() Config {
	return Config{
		Port:            "8080",
		LogMode:         "development",
		ShutdownTimeout: 15 * time.Second,
		DB: DBConfig{
			Driver:          db.DriverPostgres,
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Name:            "coursehub",
			SSLMode:         "disable",
			SQLitePath:      "coursehub.db",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			OpTimeout:       5 * time.Second,
			AutoMigrate:     true,
		},
		Redis: RedisConfig{Channel: "coursehub.enrollments"},
		Metrics: MetricsConfig{
			Addr: ":9090",
		},
		Otel: OtelConfig{
			ServiceName: "coursehub-backend",
			Environment: "development",
			SampleRatio: 1,
		},
	}
}

// LoadConfig layers defaults, then the YAML file named by CONFIG_PATH, then environment variables.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := defaultConfig()
	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
		if log != nil {
			log.Info("Loaded config file", "path", path)
		}
	}
	applyEnv(&cfg, log)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, log *logger.Logger) {
	cfg.Port = envutil.String("PORT", cfg.Port, log)
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode, log)
	cfg.ShutdownTimeout = envutil.Duration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout, log)

	cfg.DB.Driver = strings.ToLower(envutil.String("DB_DRIVER", cfg.DB.Driver, log))
	cfg.DB.Host = envutil.String("POSTGRES_HOST", cfg.DB.Host, log)
	cfg.DB.Port = envutil.String("POSTGRES_PORT", cfg.DB.Port, log)
	cfg.DB.User = envutil.String("POSTGRES_USER", cfg.DB.User, log)
	cfg.DB.Password = envutil.String("POSTGRES_PASSWORD", cfg.DB.Password, nil)
	cfg.DB.Name = envutil.String("POSTGRES_NAME", cfg.DB.Name, log)
	cfg.DB.SSLMode = envutil.String("POSTGRES_SSLMODE", cfg.DB.SSLMode, log)
	cfg.DB.SQLitePath = envutil.String("SQLITE_PATH", cfg.DB.SQLitePath, log)
	cfg.DB.MaxOpenConns = envutil.Int("DB_MAX_OPEN_CONNS", cfg.DB.MaxOpenConns, log)
	cfg.DB.MaxIdleConns = envutil.Int("DB_MAX_IDLE_CONNS", cfg.DB.MaxIdleConns, log)
	cfg.DB.ConnMaxLifetime = envutil.Duration("DB_CONN_MAX_LIFETIME", cfg.DB.ConnMaxLifetime, log)
	cfg.DB.OpTimeout = envutil.Duration("DB_OP_TIMEOUT", cfg.DB.OpTimeout, log)
	cfg.DB.AutoMigrate = envutil.Bool("DB_AUTO_MIGRATE", cfg.DB.AutoMigrate)

	cfg.Auth.JWTSecretKey = envutil.String("JWT_SECRET_KEY", cfg.Auth.JWTSecretKey, nil)
	cfg.Auth.Issuer = envutil.String("JWT_ISSUER", cfg.Auth.Issuer, log)

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr, log)
	cfg.Redis.Channel = envutil.String("REDIS_CHANNEL", cfg.Redis.Channel, log)

	cfg.Metrics.Enabled = envutil.Bool("METRICS_ENABLED", cfg.Metrics.Enabled)
	cfg.Metrics.Addr = envutil.String("METRICS_ADDR", cfg.Metrics.Addr, log)

	cfg.Otel.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Otel.Enabled)
	cfg.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Otel.ServiceName, log)
	cfg.Otel.Environment = envutil.String("OTEL_ENVIRONMENT", cfg.Otel.Environment, log)
	cfg.Otel.Version = envutil.String("OTEL_SERVICE_VERSION", cfg.Otel.Version, log)
	cfg.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Otel.Endpoint, log)
	cfg.Otel.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", cfg.Otel.Headers, nil)
	cfg.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Otel.Insecure)
	cfg.Otel.SampleRatio = envutil.Float("OTEL_SAMPLE_RATIO", cfg.Otel.SampleRatio, log)

	cfg.CORS.AllowOrigins = envutil.List("CORS_ALLOW_ORIGINS", cfg.CORS.AllowOrigins)
}

func (c Config) validate() error {
	switch c.DB.Driver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if strings.TrimSpace(c.Auth.JWTSecretKey) == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return nil
}

func (c Config) dbConfig() db.Config {
	return db.Config{
		Driver:           c.DB.Driver,
		PostgresHost:     c.DB.Host,
		PostgresPort:     c.DB.Port,
		PostgresUser:     c.DB.User,
		PostgresPassword: c.DB.Password,
		PostgresName:     c.DB.Name,
		PostgresSSLMode:  c.DB.SSLMode,
		SQLitePath:       c.DB.SQLitePath,
		MaxOpenConns:     c.DB.MaxOpenConns,
		MaxIdleConns:     c.DB.MaxIdleConns,
		ConnMaxLifetime:  c.DB.ConnMaxLifetime,
	}
}

func (c Config) metricsConfig() observability.MetricsConfig {
	return observability.MetricsConfig{
		Enabled: c.Metrics.Enabled,
		Addr:    c.Metrics.Addr,
	}
}

func (c Config) otelConfig() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.Otel.Enabled,
		ServiceName: c.Otel.ServiceName,
		Environment: c.Otel.Environment,
		Version:     c.Otel.Version,
		Endpoint:    c.Otel.Endpoint,
		Headers:     observability.ParseHeaders(c.Otel.Headers),
		Insecure:    c.Otel.Insecure,
		SampleRatio: c.Otel.SampleRatio,
	}
}
