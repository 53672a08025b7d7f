package errors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_IsMatchesTypeAndCode(t *testing.T) {
	err := NewUserNotFoundError("alice")

	assert.True(t, errors.Is(err, ErrUserNotFound))
	assert.True(t, errors.Is(fmt.Errorf("lookup: %w", err), ErrUserNotFound))
	assert.False(t, errors.Is(err, ErrDuplicateUser))
	assert.Equal(t, "alice", err.Context["username"])
}

func TestAppError_UnwrapsInternal(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageError(cause, "get")

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrStorage))
	assert.Equal(t, "storage: get failed (internal: connection refused)", err.Error())
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{NewValidationError("Fill main fields"), "Fill main fields"},
		{NewDuplicateUserError("bob"), "User already exists"},
		{NewInvalidCredentialsError(), "Invalid credentials"},
		{NewDecodeError(errors.New("bad json"), "bob@users"), "Something went wrong"},
		{NewStorageError(errors.New("timeout"), "set"), "Something went wrong"},
		{errors.New("plain"), "Something went wrong"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UserMessage(tt.err), tt.err.Error())
	}
}

func TestHandler_LogsBySeverity(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(slog.New(slog.NewTextHandler(&buf, nil)))
	ctx := context.Background()

	h.Handle(ctx, nil)
	assert.Empty(t, buf.String())

	h.Handle(ctx, NewValidationError("Invalid age value"))
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "error_code=INVALID_INPUT")

	buf.Reset()
	err := h.LogAndReturn(ctx, NewStorageError(errors.New("down"), "keys"))
	assert.True(t, errors.Is(err, ErrStorage))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "operation=keys")

	buf.Reset()
	h.Handle(ctx, errors.New("boom"))
	assert.Contains(t, buf.String(), "Unhandled error")
}
