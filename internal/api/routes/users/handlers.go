// Package users contains handlers for the user resource.
package users

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	apiError "github.com/mlazarev/foodgram/internal/api/error"
	"github.com/mlazarev/foodgram/internal/api/pagination"
	"github.com/mlazarev/foodgram/internal/api/requestid"
	"github.com/mlazarev/foodgram/internal/api/token"
	"github.com/mlazarev/foodgram/internal/api/views"
	"github.com/mlazarev/foodgram/internal/argon2id"
	"github.com/mlazarev/foodgram/internal/database"
	"github.com/mlazarev/foodgram/internal/env"
	fgJson "github.com/mlazarev/foodgram/internal/json"
	"github.com/mlazarev/foodgram/internal/password"
)

// HandleCreateUser godoc
//
//	@Summary	Sign up.
//	@Tags		Users
//	@Accept		json
//	@Param		request	body	CreateUserRequest	true	"Create User Request"
//	@Success	201	{object}	views.User
//	@Failure	409	{object}	apiError.Error	"Status Conflict"
//	@Failure	422	{object}	apiError.Error	"Weak password"
//	@Router		/api/users/ [POST]
func HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	// Decode JSON
	var request CreateUserRequest
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
	if err := validateUsername(request.Username); err != nil {
		e.Logger.ErrorContext(ctx, "Failed to validate username", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, err.Error(), requestID)
		return
	}

	// Ensure password strength
	e.Logger.DebugContext(ctx, "Validating password")
	if err := password.ValidatePassword(request.Password); err != nil {
		e.Logger.ErrorContext(ctx, "Failed to validate password", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.WeakPassword, err.Error(), requestID) // OK to share the error with client.
		return
	}

	// Hash password
	e.Logger.DebugContext(ctx, "Hashing password")
	hash, err := argon2id.Hash(request.Password, argon2id.DefaultParams)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Create user
	e.Logger.DebugContext(ctx, "Creating user")
	userID, err := e.Database.CreateUser(ctx, database.CreateUserParams{
		Email:        request.Email,
		Username:     request.Username,
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		PasswordHash: hash,
	})
	if errors.Is(err, database.ErrEmailTaken) {
		e.Logger.ErrorContext(ctx, "User with email already exists", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.EmailConflict, "email already in use", requestID)
		return
	} else if errors.Is(err, database.ErrUsernameTaken) {
		e.Logger.ErrorContext(ctx, "User with username already exists", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.UsernameConflict, "username already in use", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to create user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Write response
	e.Logger.DebugContext(ctx, "Writing response")
	encodeJSON(w, e, http.StatusCreated, views.User{
		ID:        userID,
		Email:     request.Email,
		Username:  request.Username,
		FirstName: request.FirstName,
		LastName:  request.LastName,
	})
}

// HandleListUsers godoc
//
//	@Summary	List users.
//	@Tags		Users
//	@Success	200	{object}	pagination.Envelope
//	@Router		/api/users/ [GET]
func HandleListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	page, err := pagination.FromQuery(r.URL.Query())
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to parse pagination", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, err.Error(), requestID)
		return
	}

	users, err := e.Database.ListUsers(ctx, page.Limit, page.Offset())
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to list users", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	count, err := e.Database.CountUsers(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to count users", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	subscribed, err := subscribedSetFor(ctx, e, users)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to resolve subscriptions", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	results := make([]views.User, 0, len(users))
	for _, u := range users {
		results = append(results, views.NewUser(u, subscribed[u.ID]))
	}

	encodeJSON(w, e, http.StatusOK,
		pagination.NewEnvelope(r, e.Config.HostOrigin, page, count, results))
}

// HandleGetMe godoc
//
//	@Summary	Get the authenticated user.
//	@Tags		Users
//	@Success	200	{object}	views.User
//	@Security	AccessTokenCookie
//	@Router		/api/users/me [GET]
func HandleGetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	user, err := e.Database.GetUserByID(ctx, userID)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to get user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	encodeJSON(w, e, http.StatusOK, views.NewUser(user, false))
}

// HandleGetUser godoc
//
//	@Summary	Get a user profile.
//	@Tags		Users
//	@Param		userID	path	string	true	"User ID"
//	@Success	200	{object}	views.User
//	@Failure	404	{object}	apiError.Error	"User not found"
//	@Router		/api/users/{userID} [GET]
func HandleGetUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	targetID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to parse user id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "expected an integer id", requestID)
		return
	}

	user, err := e.Database.GetUserByID(ctx, targetID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.UserNotFound, "user not found", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to get user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	isSubscribed := false
	if viewerID, err := token.UserIDFromCtx(ctx); err == nil {
		isSubscribed, err = e.Database.IsSubscribed(ctx, viewerID, targetID)
		if err != nil {
			e.Logger.ErrorContext(ctx, "Failed to check subscription", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
	}

	encodeJSON(w, e, http.StatusOK, views.NewUser(user, isSubscribed))
}

// HandleSetPassword godoc
//
//	@Summary	Change the authenticated user's password.
//	@Tags		Users
//	@Accept		json
//	@Param		request	body	SetPasswordRequest	true	"Set Password Request"
//	@Success	204
//	@Failure	401	{object}	apiError.Error	"Wrong current password"
//	@Security	AccessTokenCookie
//	@Router		/api/users/set_password [POST]
func HandleSetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Decode JSON
	var request SetPasswordRequest
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

	// Verify the current password
	user, err := e.Database.GetUserByID(ctx, userID)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to get user", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	match, err := argon2id.Verify(request.CurrentPassword, user.PasswordHash)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to verify password hash", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if !match {
		_ = apiError.EncodeError(w, apiError.InvalidCredentials, "current password is incorrect", requestID)
		return
	}

	// Validate and store the new one
	if err := password.ValidatePassword(request.NewPassword); err != nil {
		_ = apiError.EncodeError(w, apiError.WeakPassword, err.Error(), requestID)
		return
	}
	hash, err := argon2id.Hash(request.NewPassword, argon2id.DefaultParams)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if err := e.Database.UpdateUserPassword(ctx, userID, hash); err != nil {
		e.Logger.ErrorContext(ctx, "Failed to update password", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSubscribe godoc
//
//	@Summary	Subscribe to an author.
//	@Tags		Subscriptions
//	@Param		userID	path	string	true	"Author ID"
//	@Param		recipes_limit	query	int	false	"Max recipes in the response"
//	@Success	201	{object}	views.Subscription
//	@Failure	400	{object}	apiError.Error	"Self subscription"
//	@Failure	404	{object}	apiError.Error	"Author not found"
//	@Failure	409	{object}	apiError.Error	"Already subscribed"
//	@Security	AccessTokenCookie
//	@Router		/api/users/{userID}/subscribe [POST]
func HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	authorID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "expected an integer id", requestID)
		return
	}
	limit := recipesLimit(r.URL.Query().Get("recipes_limit"))
	if err := limit.Validate(); err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "recipes_limit: "+err.Error(), requestID)
		return
	}

	if authorID == userID {
		_ = apiError.EncodeError(w, apiError.SelfSubscription, "cannot subscribe to yourself", requestID)
		return
	}

	// Resolve the author
	e.Logger.DebugContext(ctx, "Retrieving author")
	author, err := e.Database.GetUserByID(ctx, authorID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.UserNotFound, "author not found", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to get author", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	// Insert the subscription
	e.Logger.DebugContext(ctx, "Creating subscription")
	err = e.Database.Subscribe(ctx, userID, authorID)
	if errors.Is(err, database.ErrAlreadyExists) {
		_ = apiError.EncodeError(w, apiError.AlreadySubscribed, "already subscribed to this author", requestID)
		return
	} else if errors.Is(err, database.ErrSelfSubscription) {
		_ = apiError.EncodeError(w, apiError.SelfSubscription, "cannot subscribe to yourself", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to create subscription", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	view, err := subscriptionView(ctx, e, author, limit.Int())
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to build subscription view", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	encodeJSON(w, e, http.StatusCreated, view)
}

// HandleUnsubscribe godoc
//
//	@Summary	Unsubscribe from an author.
//	@Tags		Subscriptions
//	@Param		userID	path	string	true	"Author ID"
//	@Success	204
//	@Failure	400	{object}	apiError.Error	"Not subscribed"
//	@Security	AccessTokenCookie
//	@Router		/api/users/{userID}/subscribe [DELETE]
func HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	authorID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "expected an integer id", requestID)
		return
	}

	err = e.Database.Unsubscribe(ctx, userID, authorID)
	if errors.Is(err, database.ErrNotFound) {
		_ = apiError.EncodeError(w, apiError.NotSubscribed, "not subscribed to this author", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to delete subscription", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListSubscriptions godoc
//
//	@Summary	List subscribed authors with their recipes.
//	@Tags		Subscriptions
//	@Param		recipes_limit	query	int	false	"Max recipes per author"
//	@Success	200	{object}	pagination.Envelope
//	@Security	AccessTokenCookie
//	@Router		/api/users/subscriptions [GET]
func HandleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	page, err := pagination.FromQuery(r.URL.Query())
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, err.Error(), requestID)
		return
	}
	limit := recipesLimit(r.URL.Query().Get("recipes_limit"))
	if err := limit.Validate(); err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "recipes_limit: "+err.Error(), requestID)
		return
	}

	authors, err := e.Database.ListSubscribedAuthors(ctx, userID, page.Limit, page.Offset())
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to list subscribed authors", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	count, err := e.Database.CountSubscriptions(ctx, userID)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to count subscriptions", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	results := make([]views.Subscription, 0, len(authors))
	for _, author := range authors {
		view, err := subscriptionView(ctx, e, author, limit.Int())
		if err != nil {
			e.Logger.ErrorContext(ctx, "Failed to build subscription view", slog.Any("error", err))
			_ = apiError.EncodeInternalError(w, requestID)
			return
		}
		results = append(results, view)
	}

	encodeJSON(w, e, http.StatusOK,
		pagination.NewEnvelope(r, e.Config.HostOrigin, page, count, results))
}

// subscriptionView assembles the author projection with a bounded
// recipe list. A negative limit means all recipes.
func subscriptionView(ctx context.Context, e *env.Env, author database.User, limit int) (views.Subscription, error) {
	recipes, err := e.Database.RecipesByAuthor(ctx, author.ID, limit)
	if err != nil {
		return views.Subscription{}, err
	}
	count, err := e.Database.CountRecipesByAuthor(ctx, author.ID)
	if err != nil {
		return views.Subscription{}, err
	}

	return views.Subscription{
		ID:           author.ID,
		Email:        author.Email,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		IsSubscribed: true,
		Recipes:      views.NewRecipeShorts(recipes),
		RecipesCount: count,
	}, nil
}

// subscribedSetFor resolves is_subscribed for a batch of users; an
// anonymous viewer gets an empty set.
func subscribedSetFor(ctx context.Context, e *env.Env, users []database.User) (map[int64]bool, error) {
	viewerID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		return map[int64]bool{}, nil
	}

	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return e.Database.SubscribedSet(ctx, viewerID, ids)
}

func encodeJSON(w http.ResponseWriter, e *env.Env, status int, body any) {
	resp, err := json.Marshal(body)
	if err != nil {
		e.Logger.Error("Failed to marshal response", slog.Any("error", err))
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(resp); err != nil {
		e.Logger.Error("Failed to write response", slog.Any("error", err))
	}
}
