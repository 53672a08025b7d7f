package cli

import (
	"context"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	driver   string
	user     string
	password string
}

// NewRootCommand builds the fittrack command tree bound to app
func NewRootCommand(app *App) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "fittrack",
		Short: "Track meals and workouts",
		Long: `fittrack keeps a log of meals and trainings per user.

Records are stored as JSON documents in the configured key-value store
(memory, redis, postgres or sqlite; see STORE_DRIVER).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd.Context(), flags.driver)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.close()
		},
	}

	root.PersistentFlags().StringVar(&flags.driver, "store", "", "store driver, overrides STORE_DRIVER")
	root.PersistentFlags().StringVarP(&flags.user, "user", "u", "", "username to act as")
	root.PersistentFlags().StringVarP(&flags.password, "password", "p", "", "password of --user")

	root.AddCommand(
		newSignupCommand(app, flags),
		newLoginCommand(app, flags),
		newLogoutCommand(app, flags),
		newProfileCommand(app, flags),
		newUsersCommand(app),
		newMealCommand(app, flags),
		newTrainingCommand(app, flags),
	)
	return root
}

// Execute runs the command line against a store opened from the environment
func Execute(ctx context.Context) error {
	app := &App{}
	defer app.close()
	return NewRootCommand(app).ExecuteContext(ctx)
}
