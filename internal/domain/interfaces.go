package domain

import (
	"context"
)

// UserRepository stores user documents keyed by username
type UserRepository interface {
	GetUser(ctx context.Context, username string) (*User, error)
	SaveUser(ctx context.Context, username string, user User) error
	AddUser(ctx context.Context, user User) error
	UpdateUser(ctx context.Context, username string, update UserUpdate) (*User, error)
	GetUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, username string) error
	LogoutUser(ctx context.Context, username string) error
}

// MealRepository stores meal records
type MealRepository interface {
	SaveMeal(ctx context.Context, meal Meal) (*Meal, error)
	GetMeals(ctx context.Context) ([]Meal, error)
}

// TrainingRepository stores training records
type TrainingRepository interface {
	SaveTraining(ctx context.Context, training Training) (*Training, error)
	GetTrainings(ctx context.Context) ([]Training, error)
}
