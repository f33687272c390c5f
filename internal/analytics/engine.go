// Package analytics derives dashboard and chart views from a workout log.
// Every view is recomputed from the current log on each call.
package analytics

import (
	"time"

	"example.com/fitlog/internal/domain"
)

// WeekLength is the number of days in the weekly calorie series.
const WeekLength = 7

// WorkoutSource supplies a user's workouts in insertion order.
type WorkoutSource interface {
	ListWorkouts(username string) ([]domain.Workout, error)
}

// Engine computes views for one user at a time.
type Engine struct {
	source WorkoutSource
}

// NewEngine constructs an Engine reading from source.
func NewEngine(source WorkoutSource) *Engine {
	return &Engine{source: source}
}

// Totals summarises a set of workouts.
type Totals struct {
	Count    int `json:"count"`
	Minutes  int `json:"minutes"`
	Calories int `json:"calories"`
}

// DailyTotal is one bar of the weekly calorie chart.
type DailyTotal struct {
	Date     string `json:"date"`
	Label    string `json:"label"`
	Calories int    `json:"calories"`
}

// TodayStats totals the workouts dated today.
func (e *Engine) TodayStats(username string, today time.Time) (Totals, error) {
	return e.RangeStats(username, today, today)
}

// RangeStats totals the workouts dated between from and to, both inclusive.
func (e *Engine) RangeStats(username string, from, to time.Time) (Totals, error) {
	workouts, err := e.source.ListWorkouts(username)
	if err != nil {
		return Totals{}, err
	}
	return SumRange(workouts, from, to), nil
}

// WeeklyCalories returns the calories burned on each of the seven days ending today.
func (e *Engine) WeeklyCalories(username string, today time.Time) ([WeekLength]DailyTotal, error) {
	workouts, err := e.source.ListWorkouts(username)
	if err != nil {
		return [WeekLength]DailyTotal{}, err
	}
	return WeeklyCalories(workouts, today), nil
}

// ChronologicalSeries projects field over the log sorted by date.
func (e *Engine) ChronologicalSeries(username string, field Field) (Series, error) {
	workouts, err := e.source.ListWorkouts(username)
	if err != nil {
		return Series{}, err
	}
	return ChronologicalSeries(workouts, field)
}

// RecentActivity lists the workouts dated day, in the order they were logged.
func (e *Engine) RecentActivity(username string, day time.Time) ([]domain.Workout, error) {
	workouts, err := e.source.ListWorkouts(username)
	if err != nil {
		return nil, err
	}
	date := day.Format(domain.DateLayout)
	out := make([]domain.Workout, 0)
	for _, w := range workouts {
		if w.Date == date {
			out = append(out, w)
		}
	}
	return out, nil
}

// SumRange totals workouts whose date falls in [from, to]. An inverted range is empty.
func SumRange(workouts []domain.Workout, from, to time.Time) Totals {
	lo := from.Format(domain.DateLayout)
	hi := to.Format(domain.DateLayout)
	var t Totals
	for _, w := range workouts {
		if w.Date < lo || w.Date > hi {
			continue
		}
		t.Count++
		t.Minutes += w.DurationMin
		t.Calories += w.Calories
	}
	return t
}

// WeeklyCalories buckets calories by date for today-6 through today, oldest first.
func WeeklyCalories(workouts []domain.Workout, today time.Time) [WeekLength]DailyTotal {
	byDate := make(map[string]int, len(workouts))
	for _, w := range workouts {
		byDate[w.Date] += w.Calories
	}

	day := civilDate(today)
	var series [WeekLength]DailyTotal
	for i := range series {
		d := day.AddDate(0, 0, i-(WeekLength-1))
		date := d.Format(domain.DateLayout)
		series[i] = DailyTotal{
			Date:     date,
			Label:    d.Weekday().String()[:3],
			Calories: byDate[date],
		}
	}
	return series
}

// civilDate drops the clock and zone so day arithmetic is immune to DST shifts.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
