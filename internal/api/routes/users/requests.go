package users

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// usernameRe mirrors the allowed username alphabet: letters, digits,
// and . @ + - _
var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

// reservedUsername collides with the /users/me route.
const reservedUsername = "me"

var (
	errReservedUsername = errors.New(`username "me" is reserved`)
	errInvalidUsername  = errors.New("username may only contain letters, digits and . @ + - _")
)

func validateUsername(username string) error {
	if strings.EqualFold(username, reservedUsername) {
		return errReservedUsername
	}
	if !usernameRe.MatchString(username) {
		return errInvalidUsername
	}
	return nil
}

type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required"`
}

type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// recipesLimit is the optional recipes_limit query value; a
// non-integer or negative value is a validation error, never a silent
// fallback.
type recipesLimit string

func (l recipesLimit) Validate() error {
	if l == "" {
		return nil
	}
	v, err := strconv.Atoi(string(l))
	if err != nil {
		return errors.New("expected an integer")
	}
	if v < 0 {
		return errors.New("recipes_limit should be non-negative")
	}
	return nil
}

// Int returns the parsed limit, or -1 when absent (no limit).
func (l recipesLimit) Int() int {
	if l == "" {
		return -1
	}
	v, _ := strconv.Atoi(string(l))
	return v
}
