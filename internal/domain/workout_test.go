package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewWorkoutAssignsIdentity(t *testing.T) {
	now := time.Date(2024, time.January, 10, 7, 30, 0, 123456000, time.UTC)

	w, err := NewWorkout(WorkoutInput{Date: "2024-01-10", Type: " Running ", DurationMin: 30, Calories: 250, Notes: " tempo "}, now)
	require.NoError(t, err)
	require.NotEmpty(t, w.ID)
	require.Equal(t, "Running", w.Type)
	require.Equal(t, "tempo", w.Notes)
	require.Equal(t, "2024-01-10T07:30:00.123456", w.CreatedAt)
}

func TestNewWorkoutDefaultsBlankDateToToday(t *testing.T) {
	now := time.Date(2024, time.March, 5, 22, 0, 0, 0, time.UTC)

	w, err := NewWorkout(WorkoutInput{Date: "  ", Type: "Yoga", DurationMin: 10}, now)
	require.NoError(t, err)
	require.Equal(t, "2024-03-05", w.Date)
}

func TestNewWorkoutKeepsSuppliedCreatedAt(t *testing.T) {
	w, err := NewWorkout(WorkoutInput{Date: "2024-01-10", Type: "Yoga", DurationMin: 10, CreatedAt: "2023-12-31T23:59:59"}, time.Now())
	require.NoError(t, err)
	require.Equal(t, "2023-12-31T23:59:59", w.CreatedAt)
}

func TestNewWorkoutValidation(t *testing.T) {
	now := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	valid := WorkoutInput{Date: "2024-01-10", Type: "Running", DurationMin: 30, Calories: 250}

	cases := []struct {
		name  string
		edit  func(*WorkoutInput)
		field string
	}{
		{"zero duration", func(in *WorkoutInput) { in.DurationMin = 0 }, "duration_min"},
		{"negative duration", func(in *WorkoutInput) { in.DurationMin = -5 }, "duration_min"},
		{"negative calories", func(in *WorkoutInput) { in.Calories = -1 }, "calories"},
		{"blank type", func(in *WorkoutInput) { in.Type = "   " }, "type"},
		{"bad date", func(in *WorkoutInput) { in.Date = "2024-02-30" }, "date"},
		{"wrong date layout", func(in *WorkoutInput) { in.Date = "10/01/2024" }, "date"},
		{"bad created_at", func(in *WorkoutInput) { in.CreatedAt = "yesterday" }, "created_at"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.edit(&in)

			_, err := NewWorkout(in, now)
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestNewWorkoutAcceptsZeroCalories(t *testing.T) {
	_, err := NewWorkout(WorkoutInput{Date: "2024-01-10", Type: "Stretching", DurationMin: 5, Calories: 0}, time.Now())
	require.NoError(t, err)
}

func TestParseWorkoutInput(t *testing.T) {
	in, err := ParseWorkoutInput("2024-01-10", "Cycling", " 45 ", "400", "")
	require.NoError(t, err)
	require.Equal(t, 45, in.DurationMin)
	require.Equal(t, 400, in.Calories)

	_, err = ParseWorkoutInput("2024-01-10", "Cycling", "", "400", "")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "duration_min", verr.Field)

	_, err = ParseWorkoutInput("2024-01-10", "Cycling", "45", "lots", "")
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "calories", verr.Field)
	require.Equal(t, "calories must be a whole number", verr.Error())
}

func TestApplyPatchKeepsIdentity(t *testing.T) {
	w := Workout{ID: "w-1", Date: "2024-01-10", Type: "Running", DurationMin: 30, Calories: 250, CreatedAt: "2024-01-10T07:00:00.000000"}
	duration := 40
	notes := "longer"

	patched, err := w.Apply(WorkoutPatch{DurationMin: &duration, Notes: &notes}, time.Now())
	require.NoError(t, err)
	require.Equal(t, "w-1", patched.ID)
	require.Equal(t, w.CreatedAt, patched.CreatedAt)
	require.Equal(t, 40, patched.DurationMin)
	require.Equal(t, "longer", patched.Notes)
	require.Equal(t, 250, patched.Calories)

	zero := 0
	_, err = w.Apply(WorkoutPatch{DurationMin: &zero}, time.Now())
	require.ErrorIs(t, err, ErrValidation)
}

func TestMatches(t *testing.T) {
	w := Workout{ID: "abc", CreatedAt: "2024-01-10T07:00:00"}
	require.True(t, w.Matches("abc"))
	require.True(t, w.Matches("2024-01-10T07:00:00"))
	require.False(t, w.Matches(""))
	require.False(t, w.Matches("2024-01-10T07:00:00.000000"))
}

func TestParseTimestamp(t *testing.T) {
	naive, err := ParseTimestamp("2024-01-10T07:00:00.5")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, time.January, 10, 7, 0, 0, 500000000, time.UTC), naive)

	offset, err := ParseTimestamp("2024-01-10T09:00:00+02:00")
	require.NoError(t, err)
	require.True(t, offset.Equal(time.Date(2024, time.January, 10, 7, 0, 0, 0, time.UTC)))

	_, err = ParseTimestamp("not a time")
	require.Error(t, err)
}

func TestProfileKey(t *testing.T) {
	require.Equal(t, "weight_(kg)", ProfileKey("Weight (kg)"))
	require.Equal(t, "daily_calorie_goal", ProfileKey("Daily Calorie Goal"))
	require.True(t, IsKnownType("HIIT"))
	require.False(t, IsKnownType("Parkour"))
}
