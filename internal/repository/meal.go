package repository

import (
	"context"

	"github.com/vladimiradmaev/fittrack/internal/domain"
)

// SaveMeal appends a meal. The meal gets a fresh ID and sequence stamp and
// is written under its own key, so concurrent saves never overwrite each other.
func (r *Repository) SaveMeal(ctx context.Context, meal domain.Meal) (*domain.Meal, error) {
	id, seq, err := r.nextStamp(ctx, mealsSeqKey)
	if err != nil {
		return nil, err
	}
	meal.ID = id
	meal.Seq = seq

	if err := r.putJSON(ctx, mealsPrefix+id, meal); err != nil {
		return nil, err
	}
	return &meal, nil
}

// GetMeals returns every stored meal in save order. An empty store yields
// an empty slice.
func (r *Repository) GetMeals(ctx context.Context) ([]domain.Meal, error) {
	return readRecords(ctx, r, mealsKey, mealsPrefix, func(m domain.Meal) int64 {
		return m.Seq
	})
}
