package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/vladimiradmaev/fittrack/internal/config"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/logger"
	"github.com/vladimiradmaev/fittrack/internal/repository"
	"github.com/vladimiradmaev/fittrack/internal/services"
	"github.com/vladimiradmaev/fittrack/internal/session"
	"github.com/vladimiradmaev/fittrack/internal/storage"
)

// App holds the services a command runs against. A non-nil Store is used
// as is and left open; otherwise one is opened from the environment.
type App struct {
	Store storage.KeyValueStore

	ownsStore bool
	errors    *apperrors.Handler
	users     *services.UserService
	meals     *services.MealService
	trainings *services.TrainingService
}

func (a *App) init(ctx context.Context, driverOverride string) error {
	if a.Store == nil {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if driverOverride != "" {
			cfg.Store.Driver = strings.ToLower(strings.TrimSpace(driverOverride))
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		if err := logger.InitWithConfig(cfg.Logger.LoggerSettings()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		store, err := storage.Open(ctx, cfg)
		if err != nil {
			return err
		}
		a.Store = store
		a.ownsStore = true
	}

	repo := repository.New(a.Store)
	a.errors = apperrors.NewHandler(logger.GetLogger())
	a.users = services.NewUserService(repo)
	a.meals = services.NewMealService(repo)
	a.trainings = services.NewTrainingService(repo)
	return nil
}

func (a *App) close() error {
	if !a.ownsStore || a.Store == nil {
		return nil
	}
	err := a.Store.Close()
	a.Store = nil
	a.ownsStore = false
	_ = logger.Close()
	return err
}

// login authenticates the --user/--password pair for commands scoped to one user
func (a *App) login(ctx context.Context, username, password string) (*session.Session, error) {
	return a.users.Login(ctx, username, password)
}

// fail logs err and converts it into the message printed to the user
func (a *App) fail(ctx context.Context, err error) error {
	a.errors.Handle(ctx, err)
	return fmt.Errorf("%s", apperrors.UserMessage(err))
}
