package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	AuthModeDev    = "dev"
	AuthModeJWT    = "jwt"
	AuthModeRemote = "remote"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Port string

	DBDSN         string
	MongoURI      string
	MongoDatabase string

	CORSOrigins []string

	AuthMode      string
	JWTSigningKey string
	AuthBaseURL   string
	AuthAPIKey    string

	LogLevel  string
	LogFormat string
	AppName   string

	ShutdownTimeout time.Duration
}

// Storage elige el backend: DB_DSN > MONGODB_URI > memoria.
func (c Config) Storage() string {
	switch {
	case c.DBDSN != "":
		return StoragePostgres
	case c.MongoURI != "":
		return StorageMongo
	default:
		return StorageMemory
	}
}

func (c Config) Addr() string {
	return ":" + c.Port
}

// Load lee, en orden de prioridad: variables de entorno, .env (si existe) y
// el archivo de config opcional (yaml/json/toml según extensión).
func Load(configFile string) (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	cfg := Config{
		Port:            strings.TrimSpace(v.GetString("port")),
		DBDSN:           strings.TrimSpace(v.GetString("db_dsn")),
		MongoURI:        strings.TrimSpace(v.GetString("mongodb_uri")),
		MongoDatabase:   strings.TrimSpace(v.GetString("mongodb_database")),
		CORSOrigins:     splitList(v.GetString("cors_origins")),
		AuthMode:        strings.ToLower(strings.TrimSpace(v.GetString("auth_mode"))),
		JWTSigningKey:   v.GetString("jwt_signing_key"),
		AuthBaseURL:     strings.TrimSpace(v.GetString("auth_base_url")),
		AuthAPIKey:      v.GetString("auth_api_key"),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		LogFormat:       strings.ToLower(strings.TrimSpace(v.GetString("log_format"))),
		AppName:         strings.TrimSpace(v.GetString("app_name")),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db_dsn", "")
	v.SetDefault("mongodb_uri", "")
	v.SetDefault("mongodb_database", "tourplanner")
	v.SetDefault("cors_origins", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("auth_mode", AuthModeDev)
	v.SetDefault("jwt_signing_key", "")
	v.SetDefault("auth_base_url", "")
	v.SetDefault("auth_api_key", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("app_name", "tourplanner")
	v.SetDefault("shutdown_timeout", "10s")
}

func (c Config) Validate() error {
	if n, err := strconv.Atoi(c.Port); err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("%w: PORT must be a valid port number, got %q", ErrInvalidConfig, c.Port)
	}

	switch c.AuthMode {
	case AuthModeDev:
	case AuthModeJWT:
		if c.JWTSigningKey == "" {
			return fmt.Errorf("%w: JWT_SIGNING_KEY is required when AUTH_MODE=jwt", ErrInvalidConfig)
		}
	case AuthModeRemote:
		if c.AuthBaseURL == "" || strings.TrimSpace(c.AuthAPIKey) == "" {
			return fmt.Errorf("%w: AUTH_BASE_URL and AUTH_API_KEY are required when AUTH_MODE=remote", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: AUTH_MODE must be dev, jwt or remote, got %q", ErrInvalidConfig, c.AuthMode)
	}

	if c.Storage() == StorageMongo && c.MongoDatabase == "" {
		return fmt.Errorf("%w: MONGODB_DATABASE is required with MONGODB_URI", ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: SHUTDOWN_TIMEOUT must be positive", ErrInvalidConfig)
	}
	return nil
}

// loadDotEnv busca .env desde el cwd hacia arriba. No pisa variables ya definidas.
func loadDotEnv() error {
	dir, err := os.Getwd()
	if err != nil {
		return nil
	}
	for {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			return nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
