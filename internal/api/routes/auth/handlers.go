// Package auth contains handlers for login and logout.
package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	apiError "github.com/mlazarev/foodgram/internal/api/error"
	"github.com/mlazarev/foodgram/internal/api/requestid"
	"github.com/mlazarev/foodgram/internal/api/token"
	"github.com/mlazarev/foodgram/internal/argon2id"
	"github.com/mlazarev/foodgram/internal/env"
	fgJson "github.com/mlazarev/foodgram/internal/json"
	"github.com/mlazarev/foodgram/internal/jwt"
)

// HandleLogin godoc
//
//	@Summary	Log in with email and password.
//	@Tags		Auth
//	@Accept		json
//	@Param		request	body	LoginRequest	true	"Login Request"
//	@Success	204
//	@Failure	401	{object}	apiError.Error	"Unauthorized"
//	@Router		/api/auth/login [POST]
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	// Decode JSON
	var request LoginRequest
	e.Logger.DebugContext(ctx, "Reading request body")
	defer func() { _ = r.Body.Close() }()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := fgJson.Decode(&request, decoder); err != nil {
		e.Logger.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(request); err != nil {
		e.Logger.ErrorContext(ctx, "Failed to validate request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}

	// Retrieve user information
	e.Logger.DebugContext(ctx, "Retrieving user information")
	user, err := e.Database.GetUserByEmail(ctx, request.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		e.Logger.ErrorContext(ctx, "User with email does not exist", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.InvalidCredentials, "email or password is incorrect", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to retrieve user information", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Compare passwords
	e.Logger.DebugContext(ctx, "Comparing passwords")
	match, err := argon2id.Verify(request.Password, user.PasswordHash)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to verify password hash", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if !match {
		e.Logger.ErrorContext(ctx, "Given password is incorrect")
		_ = apiError.EncodeError(w, apiError.InvalidCredentials, "email or password is incorrect", requestID)
		return
	}

	// Create access token
	e.Logger.DebugContext(ctx, "Generating access token")
	accessToken, err := token.NewAccessToken(jwt.JWTParams{
		UserID: strconv.FormatInt(user.ID, 10),
		Role:   string(user.Role),
	}, e)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to create access token", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	http.SetCookie(w, token.NewAccessTokenCookie(accessToken, e))
	w.WriteHeader(http.StatusNoContent)
}

// HandleLogout godoc
//
//	@Summary	Log out.
//	@Tags		Auth
//	@Success	204
//	@Router		/api/auth/logout [POST]
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	e := env.EnvFromCtx(r.Context())
	http.SetCookie(w, token.ExpiredAccessTokenCookie(e))
	w.WriteHeader(http.StatusNoContent)
}
