package analytics

import (
	"fmt"
	"strings"

	"example.com/fitlog/internal/domain"
)

// Field selects the workout metric a series plots.
type Field string

const (
	// FieldDuration plots minutes per workout.
	FieldDuration Field = "duration_min"
	// FieldCalories plots calories per workout.
	FieldCalories Field = "calories"
)

// ParseField accepts "duration", "duration_min" or "calories".
func ParseField(name string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "duration", "duration_min":
		return FieldDuration, nil
	case "calories":
		return FieldCalories, nil
	default:
		return "", &domain.ValidationError{Field: "field", Reason: fmt.Sprintf("%q is not one of duration, calories", name)}
	}
}

// Point is one sample of a chronological series.
type Point struct {
	Date      string `json:"date"`
	CreatedAt string `json:"created_at"`
	Value     int    `json:"value"`
}

// Series is a chart-ready projection of a workout log. An empty series means
// there is no data to plot, which is distinct from a series of zeros.
type Series struct {
	Field  Field   `json:"field"`
	Points []Point `json:"points"`
}

// Empty reports whether the series has no points.
func (s Series) Empty() bool {
	return len(s.Points) == 0
}

// Labels returns the x-axis dates.
func (s Series) Labels() []string {
	out := make([]string, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Date
	}
	return out
}

// Values returns the y-axis values.
func (s Series) Values() []int {
	out := make([]int, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

// ChronologicalSeries sorts workouts ascending by (date, created_at) and
// projects field from each.
func ChronologicalSeries(workouts []domain.Workout, field Field) (Series, error) {
	var project func(domain.Workout) int
	switch field {
	case FieldDuration:
		project = func(w domain.Workout) int { return w.DurationMin }
	case FieldCalories:
		project = func(w domain.Workout) int { return w.Calories }
	default:
		return Series{}, &domain.ValidationError{Field: "field", Reason: fmt.Sprintf("%q is not a chartable field", field)}
	}

	sorted := domain.SortWorkouts(workouts, domain.Ascending)
	points := make([]Point, 0, len(sorted))
	for _, w := range sorted {
		points = append(points, Point{Date: w.Date, CreatedAt: w.CreatedAt, Value: project(w)})
	}
	return Series{Field: field, Points: points}, nil
}
