package services

import (
	"context"
	"slices"
	"strconv"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	apperrors "github.com/vladimiradmaev/fittrack/internal/errors"
	"github.com/vladimiradmaev/fittrack/internal/logger"
	"github.com/vladimiradmaev/fittrack/internal/session"
	"github.com/vladimiradmaev/fittrack/internal/utils"
)

// SignupRequest is the raw signup form
type SignupRequest struct {
	Username string
	Password string
	Gender   string
	Age      string
	Height   string
	Weight   string
	Diet     string
}

// ProfileUpdate is the raw edit-profile form; empty fields keep the stored value
type ProfileUpdate struct {
	Password string
	Gender   string
	Age      string
	Height   string
	Weight   string
	Diet     string
}

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

func requireSession(sess *session.Session) error {
	if !sess.Valid() {
		return apperrors.ErrNotLoggedIn
	}
	return nil
}

// Exclusive upper bounds for profile numbers, years and centimetres
const (
	maxAge    = 100
	maxHeight = 260
)

// intInRange normalizes value to an integer and reports whether it lies
// strictly between lo and hi
func intInRange(value string, lo, hi int) (string, bool) {
	v := utils.NormalizeInt(value)
	n, err := strconv.Atoi(v)
	if err != nil || n <= lo || n >= hi {
		return "", false
	}
	return v, true
}

// cleanProfileField normalizes one numeric or enum profile field. Empty input
// stays empty so callers can decide whether it is allowed.
func cleanProfileField(field, value string) (string, error) {
	if value == "" {
		return "", nil
	}
	switch field {
	case "age":
		if v, ok := intInRange(value, 0, maxAge); ok {
			return v, nil
		}
		return "", apperrors.NewValidationError("Invalid age value")
	case "height":
		if v, ok := intInRange(value, 0, maxHeight); ok {
			return v, nil
		}
		return "", apperrors.NewValidationError("Invalid height value")
	case "weight":
		if v := utils.NormalizeDecimal(value); v != "" && v != "0" {
			return v, nil
		}
		return "", apperrors.NewValidationError("Invalid weight value")
	case "gender":
		if slices.Contains(domain.Genders, value) {
			return value, nil
		}
		return "", apperrors.NewValidationError("Invalid gender")
	case "diet":
		if slices.Contains(domain.Diets, value) {
			return value, nil
		}
		return "", apperrors.NewValidationError("Invalid diet")
	}
	return value, nil
}

// Signup validates the form and registers the user
func (s *UserService) Signup(ctx context.Context, req SignupRequest) (*domain.User, error) {
	if req.Username == "" || req.Password == "" || req.Gender == "" || req.Age == "" ||
		req.Height == "" || req.Weight == "" || req.Diet == "" {
		return nil, apperrors.NewValidationError("Please fill in all fields.")
	}

	user := domain.User{
		Username: req.Username,
		Password: req.Password,
	}
	var err error
	if user.UserGender, err = cleanProfileField("gender", req.Gender); err != nil {
		return nil, err
	}
	if user.UserAge, err = cleanProfileField("age", req.Age); err != nil {
		return nil, err
	}
	if user.UserHeight, err = cleanProfileField("height", req.Height); err != nil {
		return nil, err
	}
	if user.UserWeight, err = cleanProfileField("weight", req.Weight); err != nil {
		return nil, err
	}
	if user.UserDiet, err = cleanProfileField("diet", req.Diet); err != nil {
		return nil, err
	}

	if err := s.users.AddUser(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login checks the password and starts a session
func (s *UserService) Login(ctx context.Context, username, password string) (*session.Session, error) {
	if username == "" {
		return nil, apperrors.NewValidationError("Username is required")
	}
	if password == "" {
		return nil, apperrors.NewValidationError("Password is required")
	}

	user, err := s.users.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.Password != password {
		logger.Warn("Login rejected", "username", username)
		return nil, apperrors.NewInvalidCredentialsError()
	}

	logger.Info("User logged in", "username", username)
	return session.New(user.Username), nil
}

// Profile returns the session user's stored profile
func (s *UserService) Profile(ctx context.Context, sess *session.Session) (*domain.User, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	return s.users.GetUser(ctx, sess.Username)
}

// EditProfile applies the non-empty fields of upd to the session user
func (s *UserService) EditProfile(ctx context.Context, sess *session.Session, upd ProfileUpdate) (*domain.User, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	var update domain.UserUpdate
	fields := []struct {
		name  string
		value string
		dst   **string
	}{
		{"password", upd.Password, &update.Password},
		{"gender", upd.Gender, &update.UserGender},
		{"age", upd.Age, &update.UserAge},
		{"height", upd.Height, &update.UserHeight},
		{"weight", upd.Weight, &update.UserWeight},
		{"diet", upd.Diet, &update.UserDiet},
	}
	for _, f := range fields {
		cleaned, err := cleanProfileField(f.name, f.value)
		if err != nil {
			return nil, err
		}
		if cleaned != "" {
			v := cleaned
			*f.dst = &v
		}
	}

	return s.users.UpdateUser(ctx, sess.Username, update)
}

// ListUsers returns every registered user
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.GetUsers(ctx)
}

// Logout ends the session
func (s *UserService) Logout(ctx context.Context, sess *session.Session) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	return s.users.LogoutUser(ctx, sess.Username)
}

// DeleteAccount removes the session user together with their records
func (s *UserService) DeleteAccount(ctx context.Context, sess *session.Session) error {
	if err := requireSession(sess); err != nil {
		return err
	}
	return s.users.DeleteUser(ctx, sess.Username)
}
