package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vladimiradmaev/fittrack/internal/domain"
	"github.com/vladimiradmaev/fittrack/internal/services"
)

const passwordMask = "********"

func printProfile(w io.Writer, u *domain.User) {
	fmt.Fprintf(w, "Username: %s\n", u.Username)
	fmt.Fprintf(w, "Password: %s\n", passwordMask)
	fmt.Fprintf(w, "Gender:   %s\n", u.UserGender)
	fmt.Fprintf(w, "Age:      %s\n", u.UserAge)
	fmt.Fprintf(w, "Height:   %s cm\n", u.UserHeight)
	fmt.Fprintf(w, "Weight:   %s kg\n", u.UserWeight)
	fmt.Fprintf(w, "Diet:     %s\n", u.UserDiet)
}

func newSignupCommand(app *App, flags *globalFlags) *cobra.Command {
	var req services.SignupRequest
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register --user with --password and a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Username = flags.user
			req.Password = flags.password
			user, err := app.users.Signup(cmd.Context(), req)
			if err != nil {
				return app.fail(cmd.Context(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", user.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Gender, "gender", "", "F, M or Other")
	cmd.Flags().StringVar(&req.Age, "age", "", "age in years")
	cmd.Flags().StringVar(&req.Height, "height", "", "height in cm")
	cmd.Flags().StringVar(&req.Weight, "weight", "", "weight in kg")
	cmd.Flags().StringVar(&req.Diet, "diet", "", "Vegetarian, Vegan, Omnivorous or Other")
	return cmd
}

func newLoginCommand(app *App, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := app.login(cmd.Context(), flags.user, flags.password)
			if err != nil {
				return app.fail(cmd.Context(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Hello, %s!\n", sess.Username)
			return nil
		},
	}
}

func newLogoutCommand(app *App, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := app.login(ctx, flags.user, flags.password)
			if err != nil {
				return app.fail(ctx, err)
			}
			if err := app.users.Logout(ctx, sess); err != nil {
				return app.fail(ctx, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newProfileCommand(app *App, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the profile of --user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := app.login(ctx, flags.user, flags.password)
			if err != nil {
				return app.fail(ctx, err)
			}
			user, err := app.users.Profile(ctx, sess)
			if err != nil {
				return app.fail(ctx, err)
			}
			printProfile(cmd.OutOrStdout(), user)
			return nil
		},
	}

	var upd services.ProfileUpdate
	edit := &cobra.Command{
		Use:   "edit",
		Short: "Change profile fields; omitted fields keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := app.login(ctx, flags.user, flags.password)
			if err != nil {
				return app.fail(ctx, err)
			}
			user, err := app.users.EditProfile(ctx, sess, upd)
			if err != nil {
				return app.fail(ctx, err)
			}
			printProfile(cmd.OutOrStdout(), user)
			return nil
		},
	}
	edit.Flags().StringVar(&upd.Password, "new-password", "", "new password")
	edit.Flags().StringVar(&upd.Gender, "gender", "", "F, M or Other")
	edit.Flags().StringVar(&upd.Age, "age", "", "age in years")
	edit.Flags().StringVar(&upd.Height, "height", "", "height in cm")
	edit.Flags().StringVar(&upd.Weight, "weight", "", "weight in kg")
	edit.Flags().StringVar(&upd.Diet, "diet", "", "Vegetarian, Vegan, Omnivorous or Other")

	remove := &cobra.Command{
		Use:   "delete",
		Short: "Delete --user and all of their meals and trainings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := app.login(ctx, flags.user, flags.password)
			if err != nil {
				return app.fail(ctx, err)
			}
			if err := app.users.DeleteAccount(ctx, sess); err != nil {
				return app.fail(ctx, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", sess.Username)
			return nil
		},
	}

	cmd.AddCommand(edit, remove)
	return cmd
}

func newUsersCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered usernames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.users.ListUsers(cmd.Context())
			if err != nil {
				return app.fail(cmd.Context(), err)
			}
			for _, u := range users {
				fmt.Fprintln(cmd.OutOrStdout(), u.Username)
			}
			return nil
		},
	}
}
