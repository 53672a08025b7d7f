package repository

import (
	"context"

	"github.com/vladimiradmaev/fittrack/internal/domain"
)

// SaveTraining appends a training under its own key
func (r *Repository) SaveTraining(ctx context.Context, training domain.Training) (*domain.Training, error) {
	id, seq, err := r.nextStamp(ctx, trainingsSeq)
	if err != nil {
		return nil, err
	}
	training.ID = id
	training.Seq = seq

	if err := r.putJSON(ctx, trainingsPref+id, training); err != nil {
		return nil, err
	}
	return &training, nil
}

// GetTrainings returns every stored training in save order
func (r *Repository) GetTrainings(ctx context.Context) ([]domain.Training, error) {
	return readRecords(ctx, r, trainingsKey, trainingsPref, func(t domain.Training) int64 {
		return t.Seq
	})
}
