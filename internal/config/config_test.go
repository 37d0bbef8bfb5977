package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_USER", "testuser")
	t.Setenv("DATABASE_PASSWORD", "testpass")
	t.Setenv("DATABASE", "testdb")
	t.Setenv("APP_SECRET", "a-test-secret-value-for-signing-tokens")
	// Point the optional config file somewhere that does not exist.
	t.Setenv("FOODGRAM_CONFIG", filepath.Join(t.TempDir(), "none.yaml"))
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)

	conf, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned unexpected error: %v", err)
	}

	if conf.Env != EnvDev {
		t.Errorf("expected Env %q, got %q", EnvDev, conf.Env)
	}
	if conf.HostOrigin != "http://localhost:8080" {
		t.Errorf("expected HostOrigin %q, got %q", "http://localhost:8080", conf.HostOrigin)
	}
	if conf.Port != 8080 {
		t.Errorf("expected Port 8080, got %d", conf.Port)
	}
	if conf.Database.Port != 5432 {
		t.Errorf("expected Database.Port 5432, got %d", conf.Database.Port)
	}
	if conf.Database.Host != "localhost" {
		t.Errorf("expected Database.Host %q, got %q", "localhost", conf.Database.Host)
	}
	if conf.Media.Backend != MediaBackendLocal {
		t.Errorf("expected Media.Backend %q, got %q", MediaBackendLocal, conf.Media.Backend)
	}
	if conf.Media.Volume != "/data/media" {
		t.Errorf("expected Media.Volume %q, got %q", "/data/media", conf.Media.Volume)
	}
	if conf.AppSecret.Value != "a-test-secret-value-for-signing-tokens" {
		t.Error("expected APP_SECRET to take precedence")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ENV", "PROD")
	t.Setenv("HOST_ORIGIN", "https://foodgram.example.com")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_PORT", "5433")
	t.Setenv("MEDIA_BACKEND", "s3")
	t.Setenv("S3_ENDPOINT", "minio:9000")
	t.Setenv("S3_BUCKET", "media")
	t.Setenv("S3_ACCESS_KEY", "access")
	t.Setenv("S3_SECRET_KEY", "secret")

	conf, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned unexpected error: %v", err)
	}

	if conf.Env != EnvProd {
		t.Errorf("expected Env %q, got %q", EnvProd, conf.Env)
	}
	if conf.HostOrigin != "https://foodgram.example.com" {
		t.Errorf("unexpected HostOrigin %q", conf.HostOrigin)
	}
	if conf.Port != 9090 {
		t.Errorf("expected Port 9090, got %d", conf.Port)
	}
	if conf.Database.Port != 5433 {
		t.Errorf("expected Database.Port 5433, got %d", conf.Database.Port)
	}
	if conf.Media.Backend != MediaBackendS3 {
		t.Errorf("expected Media.Backend s3, got %q", conf.Media.Backend)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*testing.T)
	}{
		{
			name: "missing database credentials",
			setup: func(t *testing.T) {
				t.Setenv("FOODGRAM_CONFIG", filepath.Join(t.TempDir(), "none.yaml"))
			},
		},
		{
			name: "bad env value",
			setup: func(t *testing.T) {
				setRequired(t)
				t.Setenv("ENV", "STAGING")
			},
		},
		{
			name: "s3 backend without endpoint",
			setup: func(t *testing.T) {
				setRequired(t)
				t.Setenv("MEDIA_BACKEND", "s3")
			},
		},
		{
			name: "bad port",
			setup: func(t *testing.T) {
				setRequired(t)
				t.Setenv("PORT", "not-a-port")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)
			if _, err := LoadConfig(); err == nil {
				t.Fatal("expected LoadConfig() to fail")
			}
		})
	}
}

func TestLoadConfigYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foodgram.yaml")
	yaml := `
database:
  host: db.internal
  database: foodgram
  user: foodgram
  password: hunter22hunter22
host_origin: https://foodgram.example.com
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	t.Setenv("FOODGRAM_CONFIG", path)
	t.Setenv("APP_SECRET", "a-test-secret-value-for-signing-tokens")

	conf, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned unexpected error: %v", err)
	}
	if conf.Database.Host != "db.internal" {
		t.Errorf("expected Database.Host from file, got %q", conf.Database.Host)
	}
	if conf.HostOrigin != "https://foodgram.example.com" {
		t.Errorf("expected HostOrigin from file, got %q", conf.HostOrigin)
	}
	// File values still respect env overrides.
	t.Setenv("DATABASE_HOST", "other.internal")
	conf, err = LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned unexpected error: %v", err)
	}
	if conf.Database.Host != "other.internal" {
		t.Errorf("expected env override, got %q", conf.Database.Host)
	}
}

func TestAppSecretGeneratedAndPersisted(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_SECRET", "")
	secretPath := filepath.Join(t.TempDir(), "secret")
	t.Setenv("APP_SECRET_PATH", secretPath)

	conf, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned unexpected error: %v", err)
	}
	if conf.AppSecret.Value == "" {
		t.Fatal("expected a generated secret")
	}

	data, err := os.ReadFile(secretPath)
	if err != nil {
		t.Fatalf("reading persisted secret: %v", err)
	}
	if string(data) != conf.AppSecret.Value {
		t.Error("persisted secret differs from loaded value")
	}

	// A second load picks up the persisted secret.
	again, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned unexpected error: %v", err)
	}
	if again.AppSecret.Value != conf.AppSecret.Value {
		t.Error("expected the same secret on reload")
	}
}

func TestDatabaseURL(t *testing.T) {
	d := Database{
		Port:     5432,
		Host:     "db",
		Database: "foodgram",
		User:     "app",
		Password: "pw",
	}
	expected := "postgresql://app:pw@db:5432/foodgram"
	if got := d.URL(); got != expected {
		t.Errorf("URL() = %q, expected %q", got, expected)
	}
}
