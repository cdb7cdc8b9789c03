package api

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"go.temporal.io/sdk/client"
	"gopkg.in/yaml.v3"

	"github.com/fbraem/kwai/internal/platform/observability"
)

// SettingsFileEnv names the optional YAML settings file.
const SettingsFileEnv = "KWAI_SETTINGS_FILE"

// Config carries the settings of the kwai processes. Values are resolved from the
// defaults, then the settings file, then the environment.
type Config struct {
	HTTP          HTTPConfig           `yaml:"http"`
	Database      DatabaseConfig       `yaml:"database"`
	Security      SecurityConfig       `yaml:"security"`
	Email         EmailConfig          `yaml:"email"`
	Website       WebsiteConfig        `yaml:"website"`
	Files         FilesConfig          `yaml:"files"`
	Temporal      TemporalConfig       `yaml:"temporal"`
	Purger        PurgerConfig         `yaml:"purger"`
	Observability observability.Config `yaml:"observability"`
}

type HTTPConfig struct {
	Port    string `yaml:"port" env:"PORT" validate:"required,numeric"`
	GinMode string `yaml:"gin_mode" env:"GIN_MODE" validate:"omitempty,oneof=debug release test"`
}

// DatabaseConfig selects PostgreSQL when a DSN is set, SQLite otherwise.
type DatabaseConfig struct {
	PostgresDSN string `yaml:"postgres_dsn" env:"POSTGRES_DSN"`
	SQLitePath  string `yaml:"sqlite_path" env:"KWAI_SQLITE_PATH" validate:"required_without=PostgresDSN"`
}

type SecurityConfig struct {
	JWTSecret          string        `yaml:"jwt_secret" env:"KWAI_JWT_SECRET" validate:"required"`
	JWTRefreshSecret   string        `yaml:"jwt_refresh_secret" env:"KWAI_JWT_REFRESH_SECRET" validate:"required,nefield=JWTSecret"`
	AccessTokenExpiry  time.Duration `yaml:"access_token_expiry" env:"KWAI_ACCESS_TOKEN_EXPIRY" validate:"gt=0"`
	RefreshTokenExpiry time.Duration `yaml:"refresh_token_expiry" env:"KWAI_REFRESH_TOKEN_EXPIRY" validate:"gtfield=AccessTokenExpiry"`
	SecureCookies      bool          `yaml:"secure_cookies" env:"KWAI_SECURE_COOKIES"`
	CookieDomain       string        `yaml:"cookie_domain" env:"KWAI_COOKIE_DOMAIN"`
}

type EmailConfig struct {
	Mailer   string `yaml:"mailer" env:"KWAI_MAILER" validate:"oneof=log smtp"`
	Host     string `yaml:"host" env:"KWAI_SMTP_HOST" validate:"required_if=Mailer smtp"`
	Port     int    `yaml:"port" env:"KWAI_SMTP_PORT" validate:"required_if=Mailer smtp"`
	User     string `yaml:"user" env:"KWAI_SMTP_USER"`
	Password string `yaml:"password" env:"KWAI_SMTP_PASSWORD"`
}

type WebsiteConfig struct {
	URL   string `yaml:"url" env:"KWAI_WEBSITE_URL" validate:"required,url"`
	Email string `yaml:"email" env:"KWAI_WEBSITE_EMAIL" validate:"required,email"`
	Name  string `yaml:"name" env:"KWAI_WEBSITE_NAME" validate:"required"`
}

// FilesConfig stores uploads in S3 when a bucket is set, in UploadDir otherwise.
type FilesConfig struct {
	UploadDir  string `yaml:"upload_dir" env:"KWAI_UPLOAD_DIR" validate:"required_without=S3Bucket"`
	S3Bucket   string `yaml:"s3_bucket" env:"KWAI_S3_BUCKET"`
	S3Prefix   string `yaml:"s3_prefix" env:"KWAI_S3_PREFIX"`
	S3Region   string `yaml:"s3_region" env:"KWAI_S3_REGION"`
	S3Endpoint string `yaml:"s3_endpoint" env:"KWAI_S3_ENDPOINT"`
}

// TemporalConfig selects how identity events are processed. With Events set to
// inline, or when the cluster can't be reached, mails are sent by the API itself.
type TemporalConfig struct {
	Address   string `yaml:"address" env:"TEMPORAL_ADDRESS" validate:"required"`
	Namespace string `yaml:"namespace" env:"TEMPORAL_NAMESPACE" validate:"required"`
	Events    string `yaml:"events" env:"KWAI_EVENTS" validate:"oneof=temporal inline"`
}

type PurgerConfig struct {
	Schedule string `yaml:"schedule" env:"KWAI_PURGE_SCHEDULE" validate:"required"`
}

// DefaultConfig returns the settings used for local development.
func DefaultConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: "8080"},
		Database: DatabaseConfig{SQLitePath: "kwai.db"},
		Security: SecurityConfig{
			AccessTokenExpiry:  2 * time.Hour,
			RefreshTokenExpiry: 60 * 24 * time.Hour,
		},
		Email:    EmailConfig{Mailer: "log", Port: 587},
		Website:  WebsiteConfig{URL: "http://localhost:3000", Email: "webmaster@localhost.localdomain", Name: "Kwai"},
		Files:    FilesConfig{UploadDir: "upload"},
		Temporal: TemporalConfig{Address: client.DefaultHostPort, Namespace: client.DefaultNamespace, Events: "temporal"},
		Purger:   PurgerConfig{Schedule: "0 * * * *"},
		Observability: observability.Config{
			ServiceName: "kwai-api",
			LogLevel:    "info",
		},
	}
}

// LoadConfig resolves and validates the configuration.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if path := strings.TrimSpace(os.Getenv(SettingsFileEnv)); path != "" {
		if err := loadSettingsFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			return Config{}, fmt.Errorf("invalid configuration: %w", invalid)
		}
		return Config{}, err
	}
	return cfg, nil
}

func loadSettingsFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read settings file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse settings file %s: %w", path, err)
	}
	return nil
}
