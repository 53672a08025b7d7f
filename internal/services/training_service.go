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

// TrainingInput is the raw add-training form
type TrainingInput struct {
	Date          time.Time
	Sport         string
	Hours         int
	Minutes       int
	BurntCalories string
	Description   string
	Image         string
}

type TrainingService struct {
	trainings domain.TrainingRepository
	now       func() time.Time
}

func NewTrainingService(trainings domain.TrainingRepository) *TrainingService {
	return &TrainingService{trainings: trainings, now: time.Now}
}

// AddTraining validates the form and stores a training owned by the session user
func (s *TrainingService) AddTraining(ctx context.Context, sess *session.Session, in TrainingInput) (*domain.Training, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if in.Date.IsZero() || in.Sport == "" {
		return nil, apperrors.NewValidationError("Fill main fields")
	}
	if !slices.Contains(domain.Sports, in.Sport) {
		return nil, apperrors.NewValidationError("Invalid sport")
	}
	if in.Hours < 0 || in.Minutes < 0 || in.Minutes > 59 || utils.DurationMinutes(in.Hours, in.Minutes) == 0 {
		return nil, apperrors.NewValidationError("Invalid duration")
	}
	if err := notInFuture(in.Date, s.now()); err != nil {
		return nil, err
	}

	return s.trainings.SaveTraining(ctx, domain.Training{
		UserTraining:  sess.Username,
		StringDate:    utils.FormatDisplayDate(in.Date),
		Sport:         in.Sport,
		Hours:         in.Hours,
		Minutes:       in.Minutes,
		BurntCalories: utils.DigitsOnly(in.BurntCalories),
		Description:   in.Description,
		Image:         in.Image,
	})
}

// ListTrainings returns the session user's trainings grouped by day
func (s *TrainingService) ListTrainings(ctx context.Context, sess *session.Session) ([]aggregate.TrainingGroup, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	trainings, err := s.trainings.GetTrainings(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.GroupTrainings(trainings, sess.Username), nil
}
