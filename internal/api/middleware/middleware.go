// Package middleware contains middleware functions for the API.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/httplog/v3"
	"github.com/golang-jwt/jwt/v5"
	apiError "github.com/mlazarev/foodgram/internal/api/error"
	"github.com/mlazarev/foodgram/internal/api/requestid"
	"github.com/mlazarev/foodgram/internal/api/token"
	"github.com/mlazarev/foodgram/internal/env"
	fgJwt "github.com/mlazarev/foodgram/internal/jwt"
	"github.com/mlazarev/foodgram/internal/log"
	"github.com/mlazarev/foodgram/internal/role"

	"github.com/oklog/ulid/v2"
)

// InjectEnv injects an environment struct into the request context.
func InjectEnv(environment *env.Env) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(env.WithCtx(r.Context(), environment)))
		})
	}
}

func LogRequest(logger *slog.Logger) func(http.Handler) http.Handler {
	return httplog.RequestLogger(logger, &httplog.Options{
		LogExtraAttrs: func(r *http.Request, reqBody string, respStatus int) []slog.Attr {
			if id := requestid.ExtractRequestID(r.Context()); id != 0 {
				return []slog.Attr{slog.Uint64("log_id", id)}
			}
			return []slog.Attr{slog.String("log_id", "N/A")}
		},
	})
}

// AddRequestID adds a request ID to the request context.
func AddRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := ulid.Now()
		r = r.WithContext(log.AppendCtx(r.Context(), slog.Uint64("log_id", requestID)))
		r = r.WithContext(requestid.InjectRequestID(r.Context(), requestID))
		next.ServeHTTP(w, r)
	})
}

// AddCors adds the necessary CORS headers to the response.
func AddCors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e := env.EnvFromCtx(r.Context())
		origin := r.Header.Get("Origin")

		allowedOrigin := e.Config.HostOrigin
		if e.Config.Env != "PROD" && origin != "" {
			// In dev mode, allow all origins
			allowedOrigin = origin
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// AuthorizeRequest creates a middleware that validates the JWT cookie
// and checks the user role.
func AuthorizeRequest(requiredRole role.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			e := env.EnvFromCtx(r.Context())
			requestID := strconv.FormatUint(requestid.ExtractRequestID(r.Context()), 10)

			userID, userRole, err := authenticate(r, e)
			if errors.Is(err, jwt.ErrTokenExpired) {
				e.Logger.ErrorContext(r.Context(), "access token expired", slog.Any("error", err))
				_ = apiError.EncodeError(w, apiError.ExpiredAccessToken, "access token expired", requestID)
				return
			} else if err != nil {
				e.Logger.ErrorContext(r.Context(), "invalid access token", slog.Any("error", err))
				_ = apiError.EncodeError(w, apiError.InvalidAccessToken, "invalid access token", requestID)
				return
			}

			if userRole < requiredRole {
				_ = apiError.EncodeError(w, apiError.InsufficientPermissions,
					"insufficient permissions", requestID)
				return
			}

			r = r.WithContext(log.AppendCtx(r.Context(), slog.Int64("user-id", userID)))
			r = r.WithContext(token.UserIDWithCtx(r.Context(), userID))
			next.ServeHTTP(w, r)
		})
	}
}

// OptionalAuthorize attaches the user identity when a valid access
// cookie is present and leaves the request anonymous otherwise. Read
// endpoints use it for the is_subscribed / is_favorited /
// is_in_shopping_cart projections.
func OptionalAuthorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e := env.EnvFromCtx(r.Context())

		userID, _, err := authenticate(r, e)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		r = r.WithContext(log.AppendCtx(r.Context(), slog.Int64("user-id", userID)))
		r = r.WithContext(token.UserIDWithCtx(r.Context(), userID))
		next.ServeHTTP(w, r)
	})
}

// authenticate validates the access cookie and extracts the subject and
// role claims.
func authenticate(r *http.Request, e *env.Env) (int64, role.Role, error) {
	cookie, err := r.Cookie(token.AccessTokenName(e))
	if err != nil {
		return 0, role.RoleUnknown, err
	}

	secret := e.Config.AppSecret.Value
	if secret == "" {
		return 0, role.RoleUnknown, errors.New("app secret not configured")
	}
	version := e.Config.AppSecret.Version
	if version == "" {
		version = fgJwt.DefaultKID
	}

	accessJwt, err := fgJwt.ValidateJWT(cookie.Value, version, []byte(secret))
	if err != nil {
		return 0, role.RoleUnknown, err
	}

	sub, err := accessJwt.Claims.GetSubject()
	if err != nil {
		return 0, role.RoleUnknown, err
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, role.RoleUnknown, err
	}

	claims, ok := accessJwt.Claims.(jwt.MapClaims)
	if !ok {
		return 0, role.RoleUnknown, errors.New("unexpected claims type")
	}
	roleClaim, ok := claims["role"].(string)
	if !ok {
		return 0, role.RoleUnknown, errors.New("missing role claim")
	}

	return userID, role.ToRole(roleClaim), nil
}
