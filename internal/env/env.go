// Package env provides a structure for managing application-wide dependencies.
package env

import (
	"context"
	"log/slog"

	"github.com/mlazarev/foodgram/internal/config"
	"github.com/mlazarev/foodgram/internal/database"
	"github.com/mlazarev/foodgram/internal/filestore"
	"github.com/mlazarev/foodgram/internal/log"
)

type Env struct {
	Logger    *slog.Logger
	Database  *database.Database
	FileStore filestore.FileStore
	Config    *config.Config
}

func New(conf *config.Config) *Env {
	return &Env{
		Logger: log.NullLogger(),
		Config: conf,
	}
}

func Null() *Env {
	return New(&config.Config{})
}

type envKeyType struct{}

var envKey envKeyType

// WithCtx injects the environment into a context.
func WithCtx(ctx context.Context, e *Env) context.Context {
	return context.WithValue(ctx, envKey, e)
}

// EnvFromCtx extracts the environment from a context. A context without
// one yields a null environment rather than a nil dereference.
func EnvFromCtx(ctx context.Context) *Env {
	if e, ok := ctx.Value(envKey).(*Env); ok {
		return e
	}
	return Null()
}
