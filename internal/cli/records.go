package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/vladimiradmaev/fittrack/internal/aggregate"
	"github.com/vladimiradmaev/fittrack/internal/services"
	"github.com/vladimiradmaev/fittrack/internal/utils"
)

// parseDateFlag accepts the same layouts as stored dates; empty means today
func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	t, ok := utils.ParseDisplayDate(value)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", value)
	}
	return t, nil
}

func printMealGroups(w io.Writer, groups []aggregate.MealGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "No meals logged yet")
		return
	}
	for _, g := range groups {
		fmt.Fprintf(w, "%s (%d kcal)\n", g.Date, g.TotalCalories)
		for _, m := range g.Meals {
			fmt.Fprintf(w, "  %-9s %5s kcal  %s\n", m.Category, m.Calories, m.MealDetails)
		}
	}
}

func printTrainingGroups(w io.Writer, groups []aggregate.TrainingGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "No trainings logged yet")
		return
	}
	for _, g := range groups {
		fmt.Fprintf(w, "%s (%d kcal, %d min)\n", g.Date, g.TotalBurntCalories, g.TotalMinutes)
		for _, t := range g.Trainings {
			fmt.Fprintf(w, "  %-10s %s  %5s kcal  %s\n",
				t.Sport, utils.FormatDuration(t.Hours, t.Minutes), t.BurntCalories, t.Description)
		}
	}
}

func newMealCommand(app *App, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meal",
		Short: "Log and list meals of --user",
	}

	var (
		date string
		in   services.MealInput
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Log a meal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := parseDateFlag(date)
			if err != nil {
				return err
			}
			in.Date = d

			sess, err := app.login(ctx, flags.user, flags.password)
			if err != nil {
				return app.fail(ctx, err)
			}
			meal, err := app.meals.AddMeal(ctx, sess, in)
			if err != nil {
				return app.fail(ctx, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s on %s\n", meal.Category, meal.StringDate)
			return nil
		},
	}
	add.Flags().StringVar(&date, "date", "", "day of the meal, YYYY-MM-DD (default today)")
	add.Flags().StringVar(&in.Category, "category", "", "Breakfast, Lunch, Dinner or Snack")
	add.Flags().StringVar(&in.Calories, "calories", "", "calories")
	add.Flags().StringVar(&in.Details, "details", "", "what was eaten")
	add.Flags().StringVar(&in.Image, "image", "", "optional image URI")

	list := &cobra.Command{
		Use:   "list",
		Short: "List meals grouped by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := app.login(ctx, flags.user, flags.password)
			if err != nil {
				return app.fail(ctx, err)
			}
			groups, err := app.meals.ListMeals(ctx, sess)
			if err != nil {
				return app.fail(ctx, err)
			}
			printMealGroups(cmd.OutOrStdout(), groups)
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func newTrainingCommand(app *App, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "training",
		Short: "Log and list trainings of --user",
	}

	var (
		date string
		in   services.TrainingInput
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Log a training",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := parseDateFlag(date)
			if err != nil {
				return err
			}
			in.Date = d

			sess, err := app.login(ctx, flags.user, flags.password)
			if err != nil {
				return app.fail(ctx, err)
			}
			training, err := app.trainings.AddTraining(ctx, sess, in)
			if err != nil {
				return app.fail(ctx, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s on %s\n", training.Sport, training.StringDate)
			return nil
		},
	}
	add.Flags().StringVar(&date, "date", "", "day of the training, YYYY-MM-DD (default today)")
	add.Flags().StringVar(&in.Sport, "sport", "", "sport, e.g. Running")
	add.Flags().IntVar(&in.Hours, "hours", 0, "duration hours")
	add.Flags().IntVar(&in.Minutes, "minutes", 0, "duration minutes")
	add.Flags().StringVar(&in.BurntCalories, "calories", "", "burnt calories")
	add.Flags().StringVar(&in.Description, "description", "", "notes")
	add.Flags().StringVar(&in.Image, "image", "", "optional image URI")

	list := &cobra.Command{
		Use:   "list",
		Short: "List trainings grouped by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := app.login(ctx, flags.user, flags.password)
			if err != nil {
				return app.fail(ctx, err)
			}
			groups, err := app.trainings.ListTrainings(ctx, sess)
			if err != nil {
				return app.fail(ctx, err)
			}
			printTrainingGroups(cmd.OutOrStdout(), groups)
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}
