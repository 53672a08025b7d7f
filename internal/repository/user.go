package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/storage"
)

// GetUser fetches a user by username. It returns ErrUserNotFound when the
// user does not exist and ErrDecode when the stored document is corrupt.
func (r *Repository) GetUser(ctx context.Context, username string) (*domain.User, error) {
	key := userKey(username)
	raw, err := r.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.NewUserNotFoundError(username)
	}
	if err != nil {
		return nil, apperrors.NewStorageError(err, "read user").WithContext("username", username)
	}

	var user *domain.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		r.log.Warn("Failed to decode user", "username", username, "error", err)
		return nil, apperrors.NewDecodeError(err, key)
	}
	if user == nil {
		return nil, apperrors.NewUserNotFoundError(username)
	}
	return user, nil
}

// SaveUser writes user under username, replacing whatever was there
func (r *Repository) SaveUser(ctx context.Context, username string, user domain.User) error {
	return r.putJSON(ctx, userKey(username), user)
}

// AddUser registers a new user. It fails with ErrDuplicateUser, leaving
// storage untouched, when the username is taken.
func (r *Repository) AddUser(ctx context.Context, user domain.User) error {
	if user.Username == "" {
		return apperrors.NewValidationError("Username is required")
	}
	if strings.HasPrefix(user.Username, "@") {
		return apperrors.NewValidationError("Username must not start with @")
	}

	r.userMu.Lock()
	defer r.userMu.Unlock()

	_, err := r.store.Get(ctx, userKey(user.Username))
	switch {
	case err == nil:
		return apperrors.NewDuplicateUserError(user.Username)
	case !errors.Is(err, storage.ErrNotFound):
		return apperrors.NewStorageError(err, "read user").WithContext("username", user.Username)
	}

	if err := r.SaveUser(ctx, user.Username, user); err != nil {
		return err
	}
	r.log.Info("User added", "username", user.Username)
	return nil
}

// UpdateUser merges the set fields of update over the stored user and
// returns the result. Missing users are reported, never created.
func (r *Repository) UpdateUser(ctx context.Context, username string, update domain.UserUpdate) (*domain.User, error) {
	r.userMu.Lock()
	defer r.userMu.Unlock()

	user, err := r.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			r.log.Warn("Update of unknown user", "username", username)
		}
		return nil, err
	}

	updated := update.Apply(*user)
	if err := r.SaveUser(ctx, username, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetUsers lists every registered user ordered by username. Corrupt user
// documents are logged and left out.
func (r *Repository) GetUsers(ctx context.Context) ([]domain.User, error) {
	keys, err := r.store.Keys(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError(err, "list keys")
	}

	users := make([]domain.User, 0)
	for _, key := range keys {
		if !strings.HasSuffix(key, usersSuffix) {
			continue
		}
		user, err := r.GetUser(ctx, strings.TrimSuffix(key, usersSuffix))
		switch {
		case err == nil:
			users = append(users, *user)
		case errors.Is(err, apperrors.ErrUserNotFound), errors.Is(err, apperrors.ErrDecode):
			continue
		default:
			return nil, err
		}
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})
	return users, nil
}

// DeleteUser removes the user and every meal and training they own.
// Other users' records are not touched.
func (r *Repository) DeleteUser(ctx context.Context, username string) error {
	r.userMu.Lock()
	defer r.userMu.Unlock()

	if _, err := r.GetUser(ctx, username); err != nil && !errors.Is(err, apperrors.ErrDecode) {
		return err
	}

	if err := removeOwned(ctx, r, mealsKey, mealsPrefix, func(m domain.Meal) string {
		return m.UserMeal
	}, username); err != nil {
		return err
	}
	if err := removeOwned(ctx, r, trainingsKey, trainingsPref, func(t domain.Training) string {
		return t.UserTraining
	}, username); err != nil {
		return err
	}

	if err := r.store.Remove(ctx, userKey(username)); err != nil {
		return apperrors.NewStorageError(err, "remove user").WithContext("username", username)
	}
	r.log.Info("User deleted", "username", username)
	return nil
}

// LogoutUser records the end of a session. Stored data is kept.
func (r *Repository) LogoutUser(ctx context.Context, username string) error {
	r.log.Info("User logged out", "username", username)
	return nil
}
