// Package ingredients contains handlers for the ingredient reference
// catalog.
package ingredients

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

// HandleListIngredients godoc
//
//	@Summary	List ingredients, optionally filtered by name prefix.
//	@Tags		Ingredients
//	@Param		name	query	string	false	"Case-insensitive name prefix"
//	@Success	200	{array}	views.Ingredient
//	@Router		/api/ingredients/ [GET]
func HandleListIngredients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	ingredients, err := e.Database.ListIngredients(ctx, r.URL.Query().Get("name"))
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to list ingredients", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	results := make([]views.Ingredient, 0, len(ingredients))
	for _, i := range ingredients {
		results = append(results, views.NewIngredient(i))
	}
	encodeJSON(w, e, http.StatusOK, results)
}

// HandleGetIngredient godoc
//
//	@Summary	Get an ingredient.
//	@Tags		Ingredients
//	@Param		ingredientID	path	string	true	"Ingredient ID"
//	@Success	200	{object}	views.Ingredient
//	@Failure	404	{object}	apiError.Error	"Ingredient not found"
//	@Router		/api/ingredients/{ingredientID} [GET]
func HandleGetIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	ingredientID, err := strconv.ParseInt(chi.URLParam(r, "ingredientID"), 10, 64)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "expected an integer id", requestID)
		return
	}

	ingredient, err := e.Database.GetIngredient(ctx, ingredientID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.IngredientNotFound, "ingredient not found", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to get ingredient", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	encodeJSON(w, e, http.StatusOK, views.NewIngredient(ingredient))
}

// HandleCreateIngredient godoc
//
//	@Summary	Create an ingredient.
//	@Tags		Admin
//	@Accept		json
//	@Param		request	body	CreateIngredientRequest	true	"Create Ingredient Request"
//	@Success	201	{object}	views.Ingredient
//	@Failure	409	{object}	apiError.Error	"Ingredient already exists"
//	@Security	AccessTokenCookie
//	@Router		/api/admin/ingredients/ [POST]
func HandleCreateIngredient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	// Decode JSON
	var request CreateIngredientRequest
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

	e.Logger.DebugContext(ctx, "Creating ingredient")
	id, err := e.Database.CreateIngredient(ctx, database.CreateIngredientParams{
		Name:            request.Name,
		MeasurementUnit: request.MeasurementUnit,
	})
	if errors.Is(err, database.ErrAlreadyExists) {
		_ = apiError.EncodeError(w, apiError.IngredientConflict, "ingredient already exists", requestID)
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to create ingredient", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	encodeJSON(w, e, http.StatusCreated, views.Ingredient{
		ID:              id,
		Name:            request.Name,
		MeasurementUnit: request.MeasurementUnit,
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
