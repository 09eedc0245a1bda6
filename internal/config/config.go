package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	envPrefix = "BOOKMARKER"

	sslModeDisable = "disable"
	sslModeRequire = "require"

	defaultJWTSecret = "change-me"
)

type (
	Config struct {
		Host          string        `mapstructure:"HOST"`
		Port          string        `mapstructure:"PORT"`
		GRPCPort      string        `mapstructure:"GRPC_PORT"`
		DBHost        string        `mapstructure:"DB_HOST"`
		DBPort        string        `mapstructure:"DB_PORT"`
		DBUser        string        `mapstructure:"DB_USER"`
		DBPassword    string        `mapstructure:"DB_PASSWORD"`
		DBName        string        `mapstructure:"DB_NAME"`
		DBSSLMode     string        `mapstructure:"DB_SSL_MODE"`
		DBAutoMigrate bool          `mapstructure:"DB_AUTO_MIGRATE"`
		JWTSecret     string        `mapstructure:"JWT_SECRET"`
		JWTTTL        time.Duration `mapstructure:"JWT_TTL"`
		BcryptCost    int           `mapstructure:"BCRYPT_COST"`
		LogLevel      string        `mapstructure:"LOG_LEVEL"`
		LogDev        bool          `mapstructure:"LOG_DEV"`
	}
)

var defaults = map[string]interface{}{
	"HOST":            "0.0.0.0",
	"PORT":            "1323",
	"GRPC_PORT":       "9000",
	"DB_HOST":         "0.0.0.0",
	"DB_PORT":         "5432",
	"DB_USER":         "user",
	"DB_PASSWORD":     "password",
	"DB_NAME":         "db",
	"DB_SSL_MODE":     sslModeDisable,
	"DB_AUTO_MIGRATE": true,
	"JWT_SECRET":      defaultJWTSecret,
	"JWT_TTL":         15 * time.Minute,
	"BCRYPT_COST":     12,
	"LOG_LEVEL":       "info",
	"LOG_DEV":         false,
}

// NewConfig reads the BOOKMARKER_* environment, optionally seeded from a .env
// file in the working directory.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env")
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)

	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// DSN is the libpq-style connection string for the configured database.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func (c *Config) HTTPListen() string {
	return c.Host + ":" + c.Port
}

func (c *Config) GRPCListen() string {
	return c.Host + ":" + c.GRPCPort
}

func validate(cfg *Config) error {
	if err := validateSSLMode(cfg.DBSSLMode); err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return errors.New("JWT secret is empty")
	}
	if cfg.JWTTTL <= 0 {
		return errors.New(fmt.Sprintf("JWT TTL must be positive: %s", cfg.JWTTTL))
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return errors.New(fmt.Sprintf("bcrypt cost is out of range: %d", cfg.BcryptCost))
	}
	return nil
}

func validateSSLMode(mode string) error {
	validSSLValues := []string{sslModeDisable, sslModeRequire}
	for _, validValue := range validSSLValues {
		if mode == validValue {
			return nil
		}
	}
	return errors.New(fmt.Sprintf("DB SSL mode is invalid: %s", mode))
}
