// Package tags contains handlers for the tag resource.
package tags

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	apiError "github.com/mlazarev/foodgram/internal/api/error"
	"github.com/mlazarev/foodgram/internal/api/requestid"
	"github.com/mlazarev/foodgram/internal/api/views"
	"github.com/mlazarev/foodgram/internal/database"
	"github.com/mlazarev/foodgram/internal/env"
	fgJson "github.com/mlazarev/foodgram/internal/json"
)

// HandleListTags godoc
//
//	@Summary	List all tags.
//	@Tags		Tags
//	@Success	200	{array}	views.Tag
//	@Router		/api/tags/ [GET]
func HandleListTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	tags, err := e.Database.ListTags(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to list tags", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	encodeJSON(w, e, http.StatusOK, views.NewTags(tags))
}

// HandleGetTag godoc
//
//	@Summary	Get a tag.
//	@Tags		Tags
//	@Param		tagID	path	string	true	"Tag ID"
//	@Success	200	{object}	views.Tag
//	@Failure	404	{object}	apiError.Error	"Tag not found"
//	@Router		/api/tags/{tagID} [GET]
func HandleGetTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	tagID, err := strconv.ParseInt(chi.URLParam(r, "tagID"), 10, 64)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "expected an integer id", requestID)
		return
	}

	tag, err := e.Database.GetTag(ctx, tagID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.TagNotFound, "tag not found", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to get tag", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	encodeJSON(w, e, http.StatusOK, views.NewTag(tag))
}

// HandleCreateTag godoc
//
//	@Summary	Create a tag.
//	@Tags		Admin
//	@Accept		json
//	@Param		request	body	CreateTagRequest	true	"Create Tag Request"
//	@Success	201	{object}	views.Tag
//	@Failure	409	{object}	apiError.Error	"Color or slug already in use"
//	@Security	AccessTokenCookie
//	@Router		/api/admin/tags/ [POST]
func HandleCreateTag(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	// Decode JSON
	var request CreateTagRequest
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

	e.Logger.DebugContext(ctx, "Creating tag")
	id, err := e.Database.CreateTag(ctx, database.CreateTagParams{
		Name:  request.Name,
		Color: request.Color,
		Slug:  request.Slug,
	})
	if errors.Is(err, database.ErrAlreadyExists) {
		_ = apiError.EncodeError(w, apiError.TagConflict, "tag color or slug already in use", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to create tag", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	encodeJSON(w, e, http.StatusCreated, views.Tag{
		ID:    id,
		Name:  request.Name,
		Color: request.Color,
		Slug:  request.Slug,
	})
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
