// Package recipes contains handlers for the recipe resource and its
// favorite / shopping cart memberships.
package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"

	apiError "github.com/mlazarev/foodgram/internal/api/error"
	"github.com/mlazarev/foodgram/internal/api/pagination"
	"github.com/mlazarev/foodgram/internal/api/requestid"
	"github.com/mlazarev/foodgram/internal/api/token"
	"github.com/mlazarev/foodgram/internal/api/views"
	"github.com/mlazarev/foodgram/internal/database"
	"github.com/mlazarev/foodgram/internal/env"
	"github.com/mlazarev/foodgram/internal/image"
	fgJson "github.com/mlazarev/foodgram/internal/json"
	"github.com/mlazarev/foodgram/internal/recipe"
	"github.com/mlazarev/foodgram/internal/shoppinglist"
)

// writeErrorCode maps domain validation failures to API error codes.
func writeErrorCode(err error) (apiError.ErrorCode, bool) {
	switch {
	case errors.Is(err, recipe.ErrNoIngredients):
		return apiError.EmptyIngredients, true
	case errors.Is(err, recipe.ErrDuplicateIngredient):
		return apiError.DuplicateIngredient, true
	case errors.Is(err, recipe.ErrInvalidAmount):
		return apiError.InvalidAmount, true
	case errors.Is(err, recipe.ErrUnknownIngredient):
		return apiError.UnknownIngredient, true
	case errors.Is(err, recipe.ErrNoTags):
		return apiError.EmptyTags, true
	case errors.Is(err, recipe.ErrDuplicateTag):
		return apiError.DuplicateTag, true
	case errors.Is(err, recipe.ErrUnknownTag):
		return apiError.UnknownTag, true
	case errors.Is(err, recipe.ErrMissingImage):
		return apiError.MissingImage, true
	case errors.Is(err, recipe.ErrInvalidCookingTime):
		return apiError.InvalidCookingTime, true
	}
	return apiError.UnknownError, false
}

// HandleListRecipes godoc
//
//	@Summary	List recipes newest-first with optional filters.
//	@Tags		Recipes
//	@Param		author	query	int	false	"Author ID"
//	@Param		tags	query	[]string	false	"Tag slugs"
//	@Param		is_favorited	query	int	false	"Only favorites of the viewer"
//	@Param		is_in_shopping_cart	query	int	false	"Only the viewer's cart"
//	@Success	200	{object}	pagination.Envelope
//	@Router		/api/recipes/ [GET]
func HandleListRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	page, err := pagination.FromQuery(r.URL.Query())
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, err.Error(), requestID)
		return
	}

	filter := database.RecipeFilter{
		TagSlugs: r.URL.Query()["tags"],
		Limit:    page.Limit,
		Offset:   page.Offset(),
	}
	if author := r.URL.Query().Get("author"); author != "" {
		filter.AuthorID, err = strconv.ParseInt(author, 10, 64)
		if err != nil {
			_ = apiError.EncodeError(w, apiError.BadRequest, "author: expected an integer id", requestID)
			return
		}
	}

	// The membership flags only bind for an authenticated viewer.
	viewerID, viewerErr := token.UserIDFromCtx(ctx)
	if viewerErr == nil {
		if boolFlag(r.URL.Query().Get("is_favorited")) {
			filter.FavoritedBy = viewerID
		}
		if boolFlag(r.URL.Query().Get("is_in_shopping_cart")) {
			filter.InCartOf = viewerID
		}
	}

	recipes, err := e.Database.ListRecipes(ctx, filter)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to list recipes", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	count, err := e.Database.CountRecipes(ctx, filter)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to count recipes", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	results, err := recipeViews(ctx, e, recipes)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to build recipe views", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	encodeJSON(w, e, http.StatusOK,
		pagination.NewEnvelope(r, e.Config.HostOrigin, page, count, results))
}

// HandleGetRecipe godoc
//
//	@Summary	Get a recipe.
//	@Tags		Recipes
//	@Param		recipeID	path	string	true	"Recipe ID"
//	@Success	200	{object}	views.Recipe
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Router		/api/recipes/{recipeID} [GET]
func HandleGetRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	rec, ok := recipeFromPath(w, r, e, requestID)
	if !ok {
		return
	}

	result, err := recipeViews(ctx, e, []database.Recipe{rec})
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to build recipe view", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	encodeJSON(w, e, http.StatusOK, result[0])
}

// HandleCreateRecipe godoc
//
//	@Summary	Create a recipe.
//	@Tags		Recipes
//	@Accept		json
//	@Param		request	body	WriteRecipeRequest	true	"Write Recipe Request"
//	@Success	201	{object}	views.Recipe
//	@Failure	400	{object}	apiError.Error	"Invalid payload"
//	@Security	AccessTokenCookie
//	@Router		/api/recipes/ [POST]
func HandleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	write, ok := decodeWrite(w, r, e, requestID)
	if !ok {
		return
	}
	e.Logger.DebugContext(ctx, "Validating recipe payload")
	if err := write.Validate(true); err != nil {
		code, _ := writeErrorCode(err)
		_ = apiError.EncodeError(w, code, err.Error(), requestID)
		return
	}

	// Store the image before the insert so the row never references a
	// missing file.
	e.Logger.DebugContext(ctx, "Storing recipe image")
	imageURL, ok := storeImage(ctx, w, e, write.Image, requestID)
	if !ok {
		return
	}

	e.Logger.DebugContext(ctx, "Creating recipe")
	recipeID, err := e.Database.CreateRecipe(ctx, database.WriteRecipeParams{
		AuthorID:    userID,
		Name:        write.Name,
		Text:        write.Text,
		ImageURL:    imageURL,
		CookingTime: write.CookingTime,
		TagIDs:      write.TagIDs,
		Ingredients: write.Ingredients,
	})
	if err != nil {
		discardImage(ctx, e, imageURL)
		if code, ok := writeErrorCode(err); ok {
			_ = apiError.EncodeError(w, code, err.Error(), requestID)
			return
		}
		e.Logger.ErrorContext(ctx, "Failed to create recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	rec, err := e.Database.GetRecipe(ctx, recipeID)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to get created recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	result, err := recipeViews(ctx, e, []database.Recipe{rec})
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to build recipe view", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	encodeJSON(w, e, http.StatusCreated, result[0])
}

// HandleUpdateRecipe godoc
//
//	@Summary	Update a recipe. Only the author may update.
//	@Tags		Recipes
//	@Accept		json
//	@Param		recipeID	path	string	true	"Recipe ID"
//	@Param		request	body	WriteRecipeRequest	true	"Write Recipe Request"
//	@Success	200	{object}	views.Recipe
//	@Failure	403	{object}	apiError.Error	"Not the author"
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Security	AccessTokenCookie
//	@Router		/api/recipes/{recipeID} [PATCH]
func HandleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	rec, ok := recipeFromPath(w, r, e, requestID)
	if !ok {
		return
	}
	if rec.AuthorID != userID {
		_ = apiError.EncodeError(w, apiError.RecipeNotOwned, "only the author may update a recipe", requestID)
		return
	}

	write, ok := decodeWrite(w, r, e, requestID)
	if !ok {
		return
	}
	if err := write.Validate(false); err != nil {
		code, _ := writeErrorCode(err)
		_ = apiError.EncodeError(w, code, err.Error(), requestID)
		return
	}

	// A new image replaces the stored file; an omitted one keeps it.
	var imageURL string
	if write.Image != "" {
		imageURL, ok = storeImage(ctx, w, e, write.Image, requestID)
		if !ok {
			return
		}
	}

	e.Logger.DebugContext(ctx, "Updating recipe")
	err = e.Database.UpdateRecipe(ctx, rec.ID, database.WriteRecipeParams{
		AuthorID:    userID,
		Name:        write.Name,
		Text:        write.Text,
		ImageURL:    imageURL,
		CookingTime: write.CookingTime,
		TagIDs:      write.TagIDs,
		Ingredients: write.Ingredients,
	})
	if err != nil {
		discardImage(ctx, e, imageURL)
		if errors.Is(err, pgx.ErrNoRows) {
			_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
			return
		}
		if code, ok := writeErrorCode(err); ok {
			_ = apiError.EncodeError(w, code, err.Error(), requestID)
			return
		}
		e.Logger.ErrorContext(ctx, "Failed to update recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	if imageURL != "" {
		discardImage(ctx, e, rec.ImageURL)
	}

	updated, err := e.Database.GetRecipe(ctx, rec.ID)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to get updated recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	result, err := recipeViews(ctx, e, []database.Recipe{updated})
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to build recipe view", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	encodeJSON(w, e, http.StatusOK, result[0])
}

// HandleDeleteRecipe godoc
//
//	@Summary	Delete a recipe. Only the author may delete.
//	@Tags		Recipes
//	@Param		recipeID	path	string	true	"Recipe ID"
//	@Success	204
//	@Failure	403	{object}	apiError.Error	"Not the author"
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Security	AccessTokenCookie
//	@Router		/api/recipes/{recipeID} [DELETE]
func HandleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	rec, ok := recipeFromPath(w, r, e, requestID)
	if !ok {
		return
	}
	if rec.AuthorID != userID {
		_ = apiError.EncodeError(w, apiError.RecipeNotOwned, "only the author may delete a recipe", requestID)
		return
	}

	if err := e.Database.DeleteRecipe(ctx, rec.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
			return
		}
		e.Logger.ErrorContext(ctx, "Failed to delete recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}
	discardImage(ctx, e, rec.ImageURL)

	w.WriteHeader(http.StatusNoContent)
}

// HandleAddFavorite godoc
//
//	@Summary	Add a recipe to favorites.
//	@Tags		Favorites
//	@Param		recipeID	path	string	true	"Recipe ID"
//	@Success	201	{object}	views.RecipeShort
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Failure	409	{object}	apiError.Error	"Already favorited"
//	@Security	AccessTokenCookie
//	@Router		/api/recipes/{recipeID}/favorite [POST]
func HandleAddFavorite(w http.ResponseWriter, r *http.Request) {
	handleAddMembership(w, r, membershipFavorites)
}

// HandleRemoveFavorite godoc
//
//	@Summary	Remove a recipe from favorites.
//	@Tags		Favorites
//	@Param		recipeID	path	string	true	"Recipe ID"
//	@Success	204
//	@Failure	404	{object}	apiError.Error	"Not in favorites"
//	@Security	AccessTokenCookie
//	@Router		/api/recipes/{recipeID}/favorite [DELETE]
func HandleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	handleRemoveMembership(w, r, membershipFavorites)
}

// HandleAddToCart godoc
//
//	@Summary	Add a recipe to the shopping cart.
//	@Tags		ShoppingCart
//	@Param		recipeID	path	string	true	"Recipe ID"
//	@Success	201	{object}	views.RecipeShort
//	@Failure	404	{object}	apiError.Error	"Recipe not found"
//	@Failure	409	{object}	apiError.Error	"Already in cart"
//	@Security	AccessTokenCookie
//	@Router		/api/recipes/{recipeID}/shopping_cart [POST]
func HandleAddToCart(w http.ResponseWriter, r *http.Request) {
	handleAddMembership(w, r, membershipCart)
}

// HandleRemoveFromCart godoc
//
//	@Summary	Remove a recipe from the shopping cart.
//	@Tags		ShoppingCart
//	@Param		recipeID	path	string	true	"Recipe ID"
//	@Success	204
//	@Failure	404	{object}	apiError.Error	"Not in cart"
//	@Security	AccessTokenCookie
//	@Router		/api/recipes/{recipeID}/shopping_cart [DELETE]
func HandleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	handleRemoveMembership(w, r, membershipCart)
}

// HandleDownloadShoppingCart godoc
//
//	@Summary	Download the aggregated shopping list as a text file.
//	@Tags		ShoppingCart
//	@Produce	plain
//	@Success	200
//	@Security	AccessTokenCookie
//	@Router		/api/recipes/download_shopping_cart [GET]
func HandleDownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	lines, err := e.Database.CartLines(ctx, userID)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to aggregate cart", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	body := shoppinglist.Render(shoppinglist.Aggregate(lines))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", shoppinglist.Filename))
	if _, err := w.Write(body); err != nil {
		e.Logger.Error("Failed to write response", slog.Any("error", err))
	}
}

type membershipKind int

const (
	membershipFavorites membershipKind = iota
	membershipCart
)

func handleAddMembership(w http.ResponseWriter, r *http.Request, kind membershipKind) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	rec, ok := recipeFromPath(w, r, e, requestID)
	if !ok {
		return
	}

	if kind == membershipFavorites {
		err = e.Database.AddFavorite(ctx, userID, rec.ID)
	} else {
		err = e.Database.AddToCart(ctx, userID, rec.ID)
	}
	if errors.Is(err, database.ErrAlreadyExists) {
		if kind == membershipFavorites {
			_ = apiError.EncodeError(w, apiError.AlreadyFavorited, "recipe already in favorites", requestID)
		} else {
			_ = apiError.EncodeError(w, apiError.AlreadyInCart, "recipe already in shopping cart", requestID)
		}
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to add membership", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	encodeJSON(w, e, http.StatusCreated, views.NewRecipeShort(rec))
}

func handleRemoveMembership(w http.ResponseWriter, r *http.Request, kind membershipKind) {
	ctx := r.Context()
	e := env.EnvFromCtx(ctx)
	requestID := strconv.FormatUint(requestid.ExtractRequestID(ctx), 10)

	userID, err := token.UserIDFromCtx(ctx)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to extract user id from context", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	recipeID, err := strconv.ParseInt(chi.URLParam(r, "recipeID"), 10, 64)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "expected an integer id", requestID)
		return
	}

	if kind == membershipFavorites {
		err = e.Database.RemoveFavorite(ctx, userID, recipeID)
	} else {
		err = e.Database.RemoveFromCart(ctx, userID, recipeID)
	}
	if errors.Is(err, database.ErrNotFound) {
		if kind == membershipFavorites {
			_ = apiError.EncodeError(w, apiError.NotInFavorites, "recipe not in favorites", requestID)
		} else {
			_ = apiError.EncodeError(w, apiError.NotInCart, "recipe not in shopping cart", requestID)
		}
		return
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to remove membership", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// recipeFromPath resolves the {recipeID} path parameter to a stored
// recipe, replying with the appropriate error when it cannot.
func recipeFromPath(w http.ResponseWriter, r *http.Request, e *env.Env, requestID string) (database.Recipe, bool) {
	ctx := r.Context()

	recipeID, err := strconv.ParseInt(chi.URLParam(r, "recipeID"), 10, 64)
	if err != nil {
		_ = apiError.EncodeError(w, apiError.BadRequest, "expected an integer id", requestID)
		return database.Recipe{}, false
	}

	rec, err := e.Database.GetRecipe(ctx, recipeID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return database.Recipe{}, false
	} else if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to get recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return database.Recipe{}, false
	}
	return rec, true
}

func decodeWrite(w http.ResponseWriter, r *http.Request, e *env.Env, requestID string) (recipe.Write, bool) {
	ctx := r.Context()

	var request WriteRecipeRequest
	defer func() { _ = r.Body.Close() }()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := fgJson.Decode(&request, decoder); err != nil {
		e.Logger.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return recipe.Write{}, false
	}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(request); err != nil {
		e.Logger.ErrorContext(ctx, "Failed to validate request body", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return recipe.Write{}, false
	}
	return request.write(), true
}

// storeImage decodes the data URI and persists it under a fresh ULID
// filename, replying on failure.
func storeImage(ctx context.Context, w http.ResponseWriter, e *env.Env, dataURI, requestID string) (string, bool) {
	img, err := image.DecodeDataURI(dataURI)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to decode image", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, err.Error(), requestID)
		return "", false
	}

	filename := ulid.Make().String() + img.Suffix
	url, err := e.FileStore.WriteRecipeImage(ctx, filename, img.MimeType, img.Data)
	if err != nil {
		e.Logger.ErrorContext(ctx, "Failed to store image", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID)
		return "", false
	}
	return url, true
}

// discardImage removes a stored image file. Failures are logged only,
// an orphaned file never fails the request.
func discardImage(ctx context.Context, e *env.Env, url string) {
	if url == "" {
		return
	}
	if err := e.FileStore.DeleteRecipeImage(ctx, url); err != nil {
		e.Logger.ErrorContext(ctx, "Failed to delete image", slog.Any("error", err),
			slog.String("url", url))
	}
}

// recipeViews assembles the full read projections for a batch of
// recipes with a fixed number of queries regardless of batch size.
func recipeViews(ctx context.Context, e *env.Env, recipes []database.Recipe) ([]views.Recipe, error) {
	if len(recipes) == 0 {
		return []views.Recipe{}, nil
	}

	recipeIDs := make([]int64, 0, len(recipes))
	authorIDs := make([]int64, 0, len(recipes))
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		authorIDs = append(authorIDs, r.AuthorID)
	}

	tags, err := e.Database.TagsForRecipes(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}
	ingredients, err := e.Database.IngredientsForRecipes(ctx, recipeIDs)
	if err != nil {
		return nil, err
	}
	authors, err := e.Database.UsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	favorited := map[int64]bool{}
	inCart := map[int64]bool{}
	subscribed := map[int64]bool{}
	if viewerID, err := token.UserIDFromCtx(ctx); err == nil {
		if favorited, err = e.Database.FavoritedSet(ctx, viewerID, recipeIDs); err != nil {
			return nil, err
		}
		if inCart, err = e.Database.InCartSet(ctx, viewerID, recipeIDs); err != nil {
			return nil, err
		}
		if subscribed, err = e.Database.SubscribedSet(ctx, viewerID, authorIDs); err != nil {
			return nil, err
		}
	}

	out := make([]views.Recipe, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, views.Recipe{
			ID:               r.ID,
			Tags:             views.NewTags(tags[r.ID]),
			Author:           views.NewUser(authors[r.AuthorID], subscribed[r.AuthorID]),
			Ingredients:      views.NewRecipeIngredients(ingredients[r.ID]),
			IsFavorited:      favorited[r.ID],
			IsInShoppingCart: inCart[r.ID],
			Name:             r.Name,
			Image:            r.ImageURL,
			Text:             r.Text,
			CookingTime:      r.CookingTime,
		})
	}
	return out, nil
}

// boolFlag reports whether a query flag is switched on. Both "1" and
// "true" are accepted.
func boolFlag(v string) bool {
	return v == "1" || v == "true"
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
