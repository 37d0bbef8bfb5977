// Package config contains utilities for loading configs.
package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

const (
	defaultConfigPath  = "/data/foodgram.yaml"
	appSecretBytes     = 32
	appSecretFilePerms = 0o600
)

const (
	EnvProd = "PROD"
	EnvDev  = "DEV"
)

type MediaBackend string

const (
	MediaBackendLocal MediaBackend = "local"
	MediaBackendS3    MediaBackend = "s3"
)

type AppSecret struct {
	Value   string `yaml:"value"`
	Path    string `yaml:"path" validate:"omitempty,filepath"`
	Version string `yaml:"version"`
}

type Database struct {
	Port     uint16 `yaml:"port"`
	Host     string `yaml:"host" validate:"omitempty,hostname_rfc1123"`
	Database string `yaml:"database" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password" validate:"required"`
}

func (d Database) URL() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s",
		d.User, d.Password, d.Host, d.Port, d.Database)
}

type Media struct {
	Backend   MediaBackend `yaml:"backend" validate:"oneof=local s3"`
	Volume    string       `yaml:"volume"`
	URLPrefix string       `yaml:"url_prefix"`

	S3Endpoint  string `yaml:"s3_endpoint" validate:"required_if=Backend s3"`
	S3Bucket    string `yaml:"s3_bucket" validate:"required_if=Backend s3"`
	S3AccessKey string `yaml:"s3_access_key" validate:"required_if=Backend s3"`
	S3SecretKey string `yaml:"s3_secret_key" validate:"required_if=Backend s3"`
	S3PublicURL string `yaml:"s3_public_url" validate:"omitempty,url"`
	S3UseSSL    bool   `yaml:"s3_use_ssl"`
}

type Admin struct {
	Email     string `yaml:"email" validate:"omitempty,email"`
	Username  string `yaml:"username" validate:"required_with=Email"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Password  string `yaml:"password" validate:"required_with=Email"`
}

type Config struct {
	AppSecret  AppSecret `yaml:"app_secret"`
	Database   Database  `yaml:"database"`
	Media      Media     `yaml:"media"`
	Admin      Admin     `yaml:"admin"`
	HostOrigin string    `yaml:"host_origin" validate:"url"`
	Port       uint16    `yaml:"port"`
	Env        string    `yaml:"env" validate:"oneof=DEV PROD"`
}

// LoadConfig builds the config from environment variables, letting an
// optional YAML file (FOODGRAM_CONFIG, default /data/foodgram.yaml)
// override the defaults first.
func LoadConfig() (*Config, error) {
	conf := defaults()

	path := loadWithDefault("FOODGRAM_CONFIG", defaultConfigPath)
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &conf); err != nil {
			return nil, fmt.Errorf("parsing config file %q: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading config file %q: %w", path, err)
	}

	if err := applyEnv(&conf); err != nil {
		return nil, err
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(conf); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	if err := loadAppSecret(&conf); err != nil {
		return nil, fmt.Errorf("loading app secret: %w", err)
	}

	return &conf, nil
}

func defaults() Config {
	return Config{
		AppSecret: AppSecret{
			Path:    "/data/secret",
			Version: "1",
		},
		Database: Database{
			Port: 5432,
			Host: "localhost",
		},
		Media: Media{
			Backend:   MediaBackendLocal,
			Volume:    "/data/media",
			URLPrefix: "/media",
		},
		HostOrigin: "http://localhost:8080",
		Port:       8080,
		Env:        EnvDev,
	}
}

func applyEnv(conf *Config) error {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&conf.Env, "ENV")
	setString(&conf.HostOrigin, "HOST_ORIGIN")

	setString(&conf.AppSecret.Value, "APP_SECRET")
	setString(&conf.AppSecret.Path, "APP_SECRET_PATH")
	setString(&conf.AppSecret.Version, "APP_SECRET_VERSION")

	setString(&conf.Database.Host, "DATABASE_HOST")
	setString(&conf.Database.Database, "DATABASE")
	setString(&conf.Database.User, "DATABASE_USER")
	setString(&conf.Database.Password, "DATABASE_PASSWORD")
	if v := os.Getenv("DATABASE_PORT"); v != "" {
		port, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return fmt.Errorf("invalid DATABASE_PORT (%q): %w", v, err)
		}
		conf.Database.Port = uint16(port)
	}

	if v := os.Getenv("MEDIA_BACKEND"); v != "" {
		conf.Media.Backend = MediaBackend(v)
	}
	setString(&conf.Media.Volume, "MEDIA_VOLUME")
	setString(&conf.Media.URLPrefix, "MEDIA_URL_PREFIX")
	setString(&conf.Media.S3Endpoint, "S3_ENDPOINT")
	setString(&conf.Media.S3Bucket, "S3_BUCKET")
	setString(&conf.Media.S3AccessKey, "S3_ACCESS_KEY")
	setString(&conf.Media.S3SecretKey, "S3_SECRET_KEY")
	setString(&conf.Media.S3PublicURL, "S3_PUBLIC_URL")
	if v := os.Getenv("S3_USE_SSL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid S3_USE_SSL (%q): %w", v, err)
		}
		conf.Media.S3UseSSL = b
	}

	setString(&conf.Admin.Email, "ADMIN_EMAIL")
	setString(&conf.Admin.Username, "ADMIN_USERNAME")
	setString(&conf.Admin.FirstName, "ADMIN_FIRST_NAME")
	setString(&conf.Admin.LastName, "ADMIN_LAST_NAME")
	setString(&conf.Admin.Password, "ADMIN_PASSWORD")

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return fmt.Errorf("invalid PORT (%q): %w", v, err)
		}
		conf.Port = uint16(port)
	}

	return nil
}

func newAppSecret() (string, error) {
	token := make([]byte, appSecretBytes)
	if _, err := rand.Reader.Read(token); err != nil {
		return "", fmt.Errorf("creating app secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(token), nil
}

// loadAppSecret resolves the secret value: explicit value wins, then
// the secret file; a missing file is created with a fresh secret.
func loadAppSecret(conf *Config) error {
	if conf.AppSecret.Value != "" {
		return nil
	}

	info, err := os.Lstat(conf.AppSecret.Path)
	if errors.Is(err, os.ErrNotExist) {
		file, err := os.OpenFile(conf.AppSecret.Path,
			os.O_WRONLY|os.O_CREATE|os.O_EXCL, appSecretFilePerms)
		if err != nil {
			return fmt.Errorf("creating secret file: %w", err)
		}
		defer func() { _ = file.Close() }()

		secret, err := newAppSecret()
		if err != nil {
			return err
		}
		if _, err := file.WriteString(secret); err != nil {
			return fmt.Errorf("writing secret file: %w", err)
		}
		conf.AppSecret.Value = secret
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking secret path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("expected file, got directory at %q", conf.AppSecret.Path)
	}

	data, err := os.ReadFile(conf.AppSecret.Path)
	if err != nil {
		return fmt.Errorf("reading secret file: %w", err)
	}
	conf.AppSecret.Value = string(data)
	return nil
}

func loadWithDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
