package error

import "net/http"

type ErrorCode string

const (
	UnknownError            ErrorCode = "unknown_error"
	InternalServerError     ErrorCode = "internal_server_error"
	BadRequest              ErrorCode = "bad_request"
	InvalidCredentials      ErrorCode = "invalid_credentials"
	InvalidAccessToken      ErrorCode = "invalid_access_token"
	ExpiredAccessToken      ErrorCode = "expired_access_token"
	InsufficientPermissions ErrorCode = "insufficient_permissions"
	WeakPassword            ErrorCode = "weak_password"

	EmailConflict    ErrorCode = "email_conflict"
	UsernameConflict ErrorCode = "username_conflict"
	UserNotFound     ErrorCode = "user_not_found"

	RecipeNotFound     ErrorCode = "recipe_not_found"
	RecipeNotOwned     ErrorCode = "recipe_not_owned"
	TagNotFound        ErrorCode = "tag_not_found"
	TagConflict        ErrorCode = "tag_conflict"
	IngredientNotFound ErrorCode = "ingredient_not_found"
	IngredientConflict ErrorCode = "ingredient_conflict"

	EmptyIngredients    ErrorCode = "empty_ingredients"
	DuplicateIngredient ErrorCode = "duplicate_ingredient"
	UnknownIngredient   ErrorCode = "unknown_ingredient"
	InvalidAmount       ErrorCode = "invalid_amount"
	EmptyTags           ErrorCode = "empty_tags"
	DuplicateTag        ErrorCode = "duplicate_tag"
	UnknownTag          ErrorCode = "unknown_tag"
	MissingImage        ErrorCode = "missing_image"
	InvalidCookingTime  ErrorCode = "invalid_cooking_time"

	AlreadyFavorited ErrorCode = "already_favorited"
	NotInFavorites   ErrorCode = "not_in_favorites"
	AlreadyInCart    ErrorCode = "already_in_cart"
	NotInCart        ErrorCode = "not_in_cart"

	AlreadySubscribed ErrorCode = "already_subscribed"
	NotSubscribed     ErrorCode = "not_subscribed"
	SelfSubscription  ErrorCode = "self_subscription"
)

var errorCodeToStatusCode = map[ErrorCode]int{
	UnknownError:            0, // No error code - unknown
	InternalServerError:     http.StatusInternalServerError,
	BadRequest:              http.StatusBadRequest,
	InvalidCredentials:      http.StatusUnauthorized,
	InvalidAccessToken:      http.StatusUnauthorized,
	ExpiredAccessToken:      http.StatusUnauthorized,
	InsufficientPermissions: http.StatusForbidden,
	WeakPassword:            http.StatusUnprocessableEntity,

	EmailConflict:    http.StatusConflict,
	UsernameConflict: http.StatusConflict,
	UserNotFound:     http.StatusNotFound,

	RecipeNotFound:     http.StatusNotFound,
	RecipeNotOwned:     http.StatusForbidden,
	TagNotFound:        http.StatusNotFound,
	TagConflict:        http.StatusConflict,
	IngredientNotFound: http.StatusNotFound,
	IngredientConflict: http.StatusConflict,

	EmptyIngredients:    http.StatusBadRequest,
	DuplicateIngredient: http.StatusBadRequest,
	UnknownIngredient:   http.StatusBadRequest,
	InvalidAmount:       http.StatusBadRequest,
	EmptyTags:           http.StatusBadRequest,
	DuplicateTag:        http.StatusBadRequest,
	UnknownTag:          http.StatusBadRequest,
	MissingImage:        http.StatusBadRequest,
	InvalidCookingTime:  http.StatusBadRequest,

	AlreadyFavorited: http.StatusConflict,
	NotInFavorites:   http.StatusNotFound,
	AlreadyInCart:    http.StatusConflict,
	NotInCart:        http.StatusNotFound,

	AlreadySubscribed: http.StatusConflict,
	NotSubscribed:     http.StatusBadRequest,
	SelfSubscription:  http.StatusBadRequest,
}

func (ec ErrorCode) StatusCode() int {
	return errorCodeToStatusCode[ec]
}

func (ec ErrorCode) String() string {
	return string(ec)
}
