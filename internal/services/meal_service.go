package services

import (
	"context"
	"slices"
	"time"

	"github.com/vladimiradmaev/fittrack/internal/aggregate"
	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/session"
	"github.com/vladimiradmaev/fittrack/internal/utils"
)

// MealInput is the raw add-meal form
type MealInput struct {
	Date     time.Time
	Category string
	Calories string
	Details  string
	Image    string
}

type MealService struct {
	meals domain.MealRepository
	now   func() time.Time
}

func NewMealService(meals domain.MealRepository) *MealService {
	return &MealService{meals: meals, now: time.Now}
}

// notInFuture rejects dates whose calendar day is after today's. Each value
// is read in its own location, matching how the day is stored.
func notInFuture(date, now time.Time) error {
	if calendarDay(date).After(calendarDay(now)) {
		return apperrors.NewValidationError("Date cannot be in the future")
	}
	return nil
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddMeal validates the form and stores a meal owned by the session user
func (s *MealService) AddMeal(ctx context.Context, sess *session.Session, in MealInput) (*domain.Meal, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if in.Date.IsZero() || in.Category == "" || in.Details == "" {
		return nil, apperrors.NewValidationError("Fill main fields")
	}
	if !slices.Contains(domain.Categories, in.Category) {
		return nil, apperrors.NewValidationError("Invalid category")
	}
	if err := notInFuture(in.Date, s.now()); err != nil {
		return nil, err
	}

	return s.meals.SaveMeal(ctx, domain.Meal{
		UserMeal:    sess.Username,
		StringDate:  utils.FormatDisplayDate(in.Date),
		Category:    in.Category,
		Calories:    utils.DigitsOnly(in.Calories),
		MealDetails: in.Details,
		Image:       in.Image,
	})
}

// ListMeals returns the session user's meals grouped by day
func (s *MealService) ListMeals(ctx context.Context, sess *session.Session) ([]aggregate.MealGroup, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	meals, err := s.meals.GetMeals(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.GroupMeals(meals, sess.Username), nil
}
