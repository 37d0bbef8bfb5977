// Package setup is responsible for setting up components.
package setup

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/mlazarev/foodgram/internal/argon2id"
	"github.com/mlazarev/foodgram/internal/config"
	"github.com/mlazarev/foodgram/internal/database"
	"github.com/mlazarev/foodgram/internal/env"
	"github.com/mlazarev/foodgram/internal/filestore"
	"github.com/mlazarev/foodgram/internal/password"
)

// Database creates the connection pool and applies the schema when it
// is not yet present.
func Database(ctx context.Context, conf *config.Config) (*database.Database, error) {
	pool, err := pgxpool.New(ctx, conf.Database.URL())
	if err != nil {
		return nil, fmt.Errorf("creating database pool: %w", err)
	}

	db := database.NewDatabase(pool)
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}
	return db, nil
}

// FileStore builds the configured media backend.
func FileStore(conf *config.Config) (filestore.FileStore, error) {
	switch conf.Media.Backend {
	case config.MediaBackendLocal:
		return filestore.NewLocal(conf.Media.Volume, conf.Media.URLPrefix, conf.HostOrigin), nil

	case config.MediaBackendS3:
		client, err := minio.New(conf.Media.S3Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(conf.Media.S3AccessKey, conf.Media.S3SecretKey, ""),
			Secure: conf.Media.S3UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("creating s3 client: %w", err)
		}

		publicURL := conf.Media.S3PublicURL
		if publicURL == "" {
			scheme := "http"
			if conf.Media.S3UseSSL {
				scheme = "https"
			}
			publicURL = scheme + "://" + conf.Media.S3Endpoint
		}
		return filestore.NewS3(client, conf.Media.S3Bucket, publicURL), nil

	default:
		return nil, fmt.Errorf("unknown media backend %q", conf.Media.Backend)
	}
}

// Admin seeds an admin user if none exists. Requires env.Database.
func Admin(ctx context.Context, e *env.Env) error {
	admin := e.Config.Admin
	if admin.Email == "" || admin.Password == "" {
		e.Logger.Info("admin email and password not configured, skipping admin setup")
		return nil
	}

	if _, err := mail.ParseAddress(admin.Email); err != nil {
		return fmt.Errorf("parsing admin email: %w", err)
	}
	if err := password.ValidatePassword(admin.Password); err != nil {
		return fmt.Errorf("validating admin password: %w", err)
	}
	if admin.Username == "" {
		return errors.New("admin username must be set")
	}

	count, err := e.Database.GetAdminCount(ctx)
	if err != nil {
		return fmt.Errorf("getting admin count: %w", err)
	}
	if count > 0 {
		e.Logger.Info("admin already setup, skipping setup")
		return nil
	}

	hash, err := argon2id.Hash(admin.Password, argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	_, err = e.Database.CreateUser(ctx, database.CreateUserParams{
		Email:        admin.Email,
		Username:     admin.Username,
		FirstName:    admin.FirstName,
		LastName:     admin.LastName,
		PasswordHash: hash,
		Role:         database.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}

	e.Logger.Info("successfully setup admin")
	return nil
}
