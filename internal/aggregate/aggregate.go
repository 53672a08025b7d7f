// Package aggregate turns flat record lists into per-user, per-day views.
// Everything here is pure: no I/O and no shared state.
package aggregate

import (
	"math"
	"sort"

	"github.com/vladimiradmaev/fittrack/internal/domain"
	"github.com/vladimiradmaev/fittrack/internal/utils"
)

var categoryRank = map[string]int{
	domain.CategoryBreakfast: 1,
	domain.CategoryLunch:     2,
	domain.CategoryDinner:    3,
	domain.CategorySnack:     4,
}

// CategoryRank orders meals within a day; unknown categories sort last
func CategoryRank(category string) int {
	if rank, ok := categoryRank[category]; ok {
		return rank
	}
	return math.MaxInt
}

// MealGroup is one day of a user's meals
type MealGroup struct {
	Date          string
	Meals         []domain.Meal
	TotalCalories int
}

// TrainingGroup is one day of a user's trainings
type TrainingGroup struct {
	Date               string
	Trainings          []domain.Training
	TotalBurntCalories int
	TotalMinutes       int
}

// FilterMeals keeps the meals owned by username
func FilterMeals(meals []domain.Meal, username string) []domain.Meal {
	out := make([]domain.Meal, 0, len(meals))
	for _, m := range meals {
		if m.UserMeal == username {
			out = append(out, m)
		}
	}
	return out
}

// FilterTrainings keeps the trainings owned by username
func FilterTrainings(trainings []domain.Training, username string) []domain.Training {
	out := make([]domain.Training, 0, len(trainings))
	for _, t := range trainings {
		if t.UserTraining == username {
			out = append(out, t)
		}
	}
	return out
}

// GroupMeals filters meals to username, groups them by date string with
// dates ascending, and orders each day by category rank. Meals with the
// same rank keep their input order.
func GroupMeals(meals []domain.Meal, username string) []MealGroup {
	dates, byDate := groupByDate(FilterMeals(meals, username), func(m domain.Meal) string {
		return m.StringDate
	})

	groups := make([]MealGroup, 0, len(dates))
	for _, date := range dates {
		day := byDate[date]
		sort.SliceStable(day, func(i, j int) bool {
			return CategoryRank(day[i].Category) < CategoryRank(day[j].Category)
		})

		total := 0
		for _, m := range day {
			total += utils.AtoiOrZero(m.Calories)
		}
		groups = append(groups, MealGroup{Date: date, Meals: day, TotalCalories: total})
	}
	return groups
}

// GroupTrainings filters trainings to username and groups them by date
// string with dates ascending. Within a day input order is kept.
func GroupTrainings(trainings []domain.Training, username string) []TrainingGroup {
	dates, byDate := groupByDate(FilterTrainings(trainings, username), func(t domain.Training) string {
		return t.StringDate
	})

	groups := make([]TrainingGroup, 0, len(dates))
	for _, date := range dates {
		day := byDate[date]
		group := TrainingGroup{Date: date, Trainings: day}
		for _, t := range day {
			group.TotalBurntCalories += utils.AtoiOrZero(t.BurntCalories)
			group.TotalMinutes += utils.DurationMinutes(t.Hours, t.Minutes)
		}
		groups = append(groups, group)
	}
	return groups
}

// groupByDate partitions records by date string and returns the sorted
// date keys alongside the partition.
func groupByDate[T any](records []T, dateOf func(T) string) ([]string, map[string][]T) {
	byDate := make(map[string][]T)
	var dates []string
	for _, r := range records {
		date := dateOf(r)
		if _, seen := byDate[date]; !seen {
			dates = append(dates, date)
		}
		byDate[date] = append(byDate[date], r)
	}
	sortDates(dates)
	return dates, byDate
}

// sortDates orders date strings chronologically. Unparsable strings follow
// every parsable one and compare lexically among themselves; equal dates
// keep first-seen order.
func sortDates(dates []string) {
	sort.SliceStable(dates, func(i, j int) bool {
		ti, okI := utils.ParseDisplayDate(dates[i])
		tj, okJ := utils.ParseDisplayDate(dates[j])
		switch {
		case okI && okJ:
			return ti.Before(tj)
		case okI != okJ:
			return okI
		default:
			return dates[i] < dates[j]
		}
	})
}
