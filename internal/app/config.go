package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/foodexplorer-backend/internal/data/db"
	"github.com/yungbote/foodexplorer-backend/internal/platform/envutil"
	"github.com/yungbote/foodexplorer-backend/internal/platform/logger"
)

type Config struct {
	Environment string `yaml:"environment"`
	ServerPort  int    `yaml:"server_port"`

	DBDriver string `yaml:"db_driver"`
	DBDSN    string `yaml:"db_dsn"`
	DBLogSQL bool   `yaml:"db_log_sql"`

	JWTSecret    string        `yaml:"jwt_secret"`
	JWTExpiresIn time.Duration `yaml:"jwt_expires_in"`
	BcryptCost   int           `yaml:"bcrypt_cost"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	MetricsEnabled     bool     `yaml:"metrics_enabled"`

	OtelEnabled     bool    `yaml:"otel_enabled"`
	OtelServiceName string  `yaml:"otel_service_name"`
	OtelEndpoint    string  `yaml:"otel_endpoint"`
	OtelHeaders     string  `yaml:"otel_headers"`
	OtelInsecure    bool    `yaml:"otel_insecure"`
	OtelSampleRatio float64 `yaml:"otel_sample_ratio"`
}

func defaultConfig() Config {
	return Config{
		Environment:     "development",
		ServerPort:      3333,
		DBDriver:        db.DriverSQLite,
		DBDSN:           "foodexplorer.db",
		JWTSecret:       "default",
		JWTExpiresIn:    24 * time.Hour,
		BcryptCost:      8,
		OtelServiceName: "foodexplorer",
		OtelSampleRatio: 0.1,
	}
}

// LoadConfig layers defaults, the YAML file named by CONFIG_FILE, a .env
// file, and finally the process environment.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := defaultConfig()

	if path := envutil.String("CONFIG_FILE", ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
		log.Info("Loaded config file", "path", path)
	}

	envFile := envutil.String("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", envFile, err)
		}
	} else {
		log.Info("Loaded env file", "path", envFile)
	}

	cfg.Environment = envutil.String("APP_ENV", cfg.Environment)
	cfg.ServerPort = envutil.Int("SERVER_PORT", cfg.ServerPort)
	cfg.DBDriver = envutil.String("DB_DRIVER", cfg.DBDriver)
	cfg.DBDSN = envutil.String("DB_DSN", cfg.DBDSN)
	cfg.DBLogSQL = envutil.Bool("DB_LOG_SQL", cfg.DBLogSQL)
	cfg.JWTSecret = envutil.String("JWT_SECRET", cfg.JWTSecret)
	cfg.JWTExpiresIn = envutil.Duration("JWT_EXPIRES_IN", cfg.JWTExpiresIn)
	cfg.BcryptCost = envutil.Int("BCRYPT_COST", cfg.BcryptCost)
	cfg.CORSAllowedOrigins = envutil.List("CORS_ALLOWED_ORIGINS", cfg.CORSAllowedOrigins)
	cfg.MetricsEnabled = envutil.Bool("METRICS_ENABLED", cfg.MetricsEnabled)
	cfg.OtelEnabled = envutil.Bool("OTEL_ENABLED", cfg.OtelEnabled)
	cfg.OtelServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.OtelServiceName)
	cfg.OtelEndpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OtelEndpoint)
	cfg.OtelHeaders = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", cfg.OtelHeaders)
	cfg.OtelInsecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.OtelInsecure)
	cfg.OtelSampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", cfg.OtelSampleRatio)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	if cfg.JWTSecret == "default" {
		log.Warn("JWT_SECRET is not set; using the insecure default")
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.DBDriver {
	case db.DriverSQLite, db.DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("DB_DSN is required")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.ServerPort)
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	return nil
}

func (c Config) Addr() string { return fmt.Sprintf(":%d", c.ServerPort) }
