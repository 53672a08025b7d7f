package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/fittrack/internal/storage"
)

func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func signupAlice(t *testing.T, app *App) {
	t.Helper()
	out, err := run(t, app, "-u", "alice", "-p", "pw", "signup",
		"--gender", "F", "--age", "30", "--height", "165", "--weight", "60", "--diet", "Vegan")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Registered alice")
}

func TestSignupLoginAndProfile(t *testing.T) {
	app := &App{Store: storage.NewMemoryStore()}
	signupAlice(t, app)

	out, err := run(t, app, "-u", "alice", "-p", "pw", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Hello, alice!")

	_, err = run(t, app, "-u", "alice", "-p", "wrong", "login")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())

	out, err = run(t, app, "-u", "alice", "-p", "pw", "profile", "edit", "--weight", "58")
	require.NoError(t, err)
	assert.Contains(t, out, "Weight:   58 kg")
	assert.Contains(t, out, "Diet:     Vegan")
	assert.Contains(t, out, "Password: ********\n")

	out, err = run(t, app, "users")
	require.NoError(t, err)
	assert.Equal(t, "alice\n", out)
}

func TestSignupTwiceIsRejected(t *testing.T) {
	app := &App{Store: storage.NewMemoryStore()}
	signupAlice(t, app)

	_, err := run(t, app, "-u", "alice", "-p", "pw", "signup",
		"--gender", "F", "--age", "30", "--height", "165", "--weight", "60", "--diet", "Vegan")
	require.Error(t, err)
	assert.Equal(t, "User already exists", err.Error())
}

func TestMealAddAndList(t *testing.T) {
	app := &App{Store: storage.NewMemoryStore()}
	signupAlice(t, app)

	for _, args := range [][]string{
		{"--date", "2024-06-16", "--category", "Dinner", "--calories", "700", "--details", "pasta"},
		{"--date", "2024-06-16", "--category", "Breakfast", "--calories", "300", "--details", "oats"},
		{"--date", "2024-06-17", "--category", "Lunch", "--calories", "500 kcal", "--details", "salad"},
	} {
		out, err := run(t, app, append([]string{"-u", "alice", "-p", "pw", "meal", "add"}, args...)...)
		require.NoError(t, err, out)
	}

	out, err := run(t, app, "-u", "alice", "-p", "pw", "meal", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Sun Jun 16 2024 (1000 kcal)")
	assert.Contains(t, out, "Mon Jun 17 2024 (500 kcal)")
	assert.Less(t, bytes.Index([]byte(out), []byte("oats")), bytes.Index([]byte(out), []byte("pasta")))
}

func TestMealAddRejectsBadInput(t *testing.T) {
	app := &App{Store: storage.NewMemoryStore()}
	signupAlice(t, app)

	_, err := run(t, app, "-u", "alice", "-p", "pw", "meal", "add",
		"--date", "2024-06-16", "--category", "Brunch", "--details", "eggs")
	require.Error(t, err)
	assert.Equal(t, "Invalid category", err.Error())

	_, err = run(t, app, "-u", "alice", "-p", "pw", "meal", "add", "--date", "yesterday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

func TestTrainingAddAndList(t *testing.T) {
	app := &App{Store: storage.NewMemoryStore()}
	signupAlice(t, app)

	out, err := run(t, app, "-u", "alice", "-p", "pw", "training", "add",
		"--date", "2024-06-16", "--sport", "Running", "--hours", "1", "--minutes", "15",
		"--calories", "600", "--description", "park")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Logged Running on Sun Jun 16 2024")

	out, err = run(t, app, "-u", "alice", "-p", "pw", "training", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Sun Jun 16 2024 (600 kcal, 75 min)")
	assert.Contains(t, out, "1:15:00")
}

func TestListsAreEmptyForNewUser(t *testing.T) {
	app := &App{Store: storage.NewMemoryStore()}
	signupAlice(t, app)

	out, err := run(t, app, "-u", "alice", "-p", "pw", "meal", "list")
	require.NoError(t, err)
	assert.Equal(t, "No meals logged yet\n", out)

	out, err = run(t, app, "-u", "alice", "-p", "pw", "training", "list")
	require.NoError(t, err)
	assert.Equal(t, "No trainings logged yet\n", out)
}

func TestLogoutKeepsDataAndDeleteRemovesIt(t *testing.T) {
	app := &App{Store: storage.NewMemoryStore()}
	signupAlice(t, app)
	_, err := run(t, app, "-u", "alice", "-p", "pw", "meal", "add",
		"--date", "2024-06-16", "--category", "Lunch", "--calories", "500", "--details", "soup")
	require.NoError(t, err)

	out, err := run(t, app, "-u", "alice", "-p", "pw", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	out, err = run(t, app, "-u", "alice", "-p", "pw", "meal", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "soup")

	out, err = run(t, app, "-u", "alice", "-p", "pw", "profile", "delete")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted alice")

	_, err = run(t, app, "-u", "alice", "-p", "pw", "login")
	require.Error(t, err)

	keys, err := app.Store.Keys(context.Background())
	require.NoError(t, err)
	for _, k := range keys {
		assert.NotContains(t, k, "@meals/", "meal records should be removed with the account")
	}
}
