package database

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           int64
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

type Tag struct {
	ID    int64
	Name  string
	Color string
	Slug  string
}

type Ingredient struct {
	ID              int64
	Name            string
	MeasurementUnit string
}

type Recipe struct {
	ID          int64
	AuthorID    int64
	Name        string
	Text        string
	ImageURL    string
	CookingTime int
	PubDate     time.Time
}

// RecipeIngredientInfo is a junction row joined with its ingredient,
// the shape read projections need.
type RecipeIngredientInfo struct {
	ID              int64
	Name            string
	MeasurementUnit string
	Amount          int
}
