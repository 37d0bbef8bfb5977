// Package token contains utilities for http tokens.
package token

import (
	"context"
	"errors"
	"net/http"

	"github.com/mlazarev/foodgram/internal/env"
	"github.com/mlazarev/foodgram/internal/jwt"
)

const (
	accessTokenLifetime = 60 * 60 // seconds
)

var ErrNoUserID = errors.New("no user id in context")

func AccessTokenName(e *env.Env) string {
	if e.Config.Env == "PROD" {
		return "__Host-Http-access"
	}
	return "access"
}

// NewAccessToken signs a JWT with the configured app secret and secret
// version.
func NewAccessToken(params jwt.JWTParams, e *env.Env) (string, error) {
	secret := e.Config.AppSecret.Value
	if secret == "" {
		return "", errors.New("app secret not configured")
	}
	version := e.Config.AppSecret.Version
	if version == "" {
		version = jwt.DefaultKID
	}
	return jwt.GenerateJWT(params, []byte(secret), version)
}

func NewAccessTokenCookie(token string, e *env.Env) *http.Cookie {
	return &http.Cookie{
		Name:     AccessTokenName(e),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   accessTokenLifetime,
		SameSite: http.SameSiteLaxMode,
		Secure:   e.Config.Env == "PROD",
	}
}

// ExpiredAccessTokenCookie clears the access cookie on logout.
func ExpiredAccessTokenCookie(e *env.Env) *http.Cookie {
	return &http.Cookie{
		Name:     AccessTokenName(e),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
		Secure:   e.Config.Env == "PROD",
	}
}

type userIDKeyType struct{}

var userIDKey userIDKeyType

func UserIDWithCtx(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromCtx extracts the authenticated user id. ErrNoUserID means
// the request was anonymous.
func UserIDFromCtx(ctx context.Context) (int64, error) {
	if v, ok := ctx.Value(userIDKey).(int64); ok {
		return v, nil
	}
	return 0, ErrNoUserID
}
