package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DateLayout is the calendar date format used for workout dates.
	DateLayout = "2006-01-02"
	// TimestampLayout is the naive creation timestamp format (UTC wall clock, no offset).
	TimestampLayout = "2006-01-02T15:04:05.000000"
)

// Workout is a single logged training session.
type Workout struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	DurationMin int    `json:"duration_min"`
	Calories    int    `json:"calories"`
	Notes       string `json:"notes"`
	CreatedAt   string `json:"created_at"`
}

// WorkoutInput carries the caller-supplied fields of a workout before validation.
// CreatedAt is optional and only set by bulk imports that carry their own timestamps.
type WorkoutInput struct {
	Date        string
	Type        string
	DurationMin int
	Calories    int
	Notes       string
	CreatedAt   string
}

// WorkoutPatch lists the fields an edit replaces; nil fields are left as they are.
type WorkoutPatch struct {
	Date        *string
	Type        *string
	DurationMin *int
	Calories    *int
	Notes       *string
}

// WorkoutTypes is the catalog of categories offered by the entry form.
var WorkoutTypes = []string{
	"Running",
	"Cycling",
	"Swimming",
	"Weight Training",
	"Yoga",
	"Pilates",
	"CrossFit",
	"Boxing",
	"Dancing",
	"Walking",
	"Hiking",
	"Rowing",
	"Jump Rope",
	"Elliptical",
	"Aerobics",
	"Sports (Basketball, Soccer, etc.)",
	"Stretching",
	"HIIT",
	"Other",
}

// IsKnownType reports whether t is one of WorkoutTypes. Stored types are free text.
func IsKnownType(t string) bool {
	for _, known := range WorkoutTypes {
		if known == t {
			return true
		}
	}
	return false
}

// ParseWorkoutInput coerces raw form strings into a WorkoutInput.
func ParseWorkoutInput(date, workoutType, duration, calories, notes string) (WorkoutInput, error) {
	durationMin, err := ParseCount("duration_min", duration)
	if err != nil {
		return WorkoutInput{}, err
	}
	cal, err := ParseCount("calories", calories)
	if err != nil {
		return WorkoutInput{}, err
	}
	return WorkoutInput{
		Date:        date,
		Type:        workoutType,
		DurationMin: durationMin,
		Calories:    cal,
		Notes:       notes,
	}, nil
}

// ParseCount parses a required whole number for field.
func ParseCount(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, invalid(field, "is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid(field, "must be a whole number")
	}
	return n, nil
}

// Normalize validates the input and returns it trimmed, with a blank date
// replaced by now's calendar date.
func (in WorkoutInput) Normalize(now time.Time) (WorkoutInput, error) {
	out := WorkoutInput{
		Date:        strings.TrimSpace(in.Date),
		Type:        strings.TrimSpace(in.Type),
		DurationMin: in.DurationMin,
		Calories:    in.Calories,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   strings.TrimSpace(in.CreatedAt),
	}

	if out.Date == "" {
		out.Date = now.Format(DateLayout)
	} else {
		parsed, err := time.Parse(DateLayout, out.Date)
		if err != nil {
			return WorkoutInput{}, invalid("date", "must be a valid YYYY-MM-DD date")
		}
		out.Date = parsed.Format(DateLayout)
	}
	if out.Type == "" {
		return WorkoutInput{}, invalid("type", "is required")
	}
	if out.DurationMin <= 0 {
		return WorkoutInput{}, invalid("duration_min", "must be greater than 0")
	}
	if out.Calories < 0 {
		return WorkoutInput{}, invalid("calories", "cannot be negative")
	}
	if out.CreatedAt != "" {
		if _, err := ParseTimestamp(out.CreatedAt); err != nil {
			return WorkoutInput{}, invalid("created_at", "must be an ISO-8601 timestamp")
		}
	}
	return out, nil
}

// NewWorkout is the only way to build a valid Workout. It assigns a fresh ID and,
// unless the input carries one, a creation timestamp taken from now.
func NewWorkout(input WorkoutInput, now time.Time) (Workout, error) {
	in, err := input.Normalize(now)
	if err != nil {
		return Workout{}, err
	}
	createdAt := in.CreatedAt
	if createdAt == "" {
		createdAt = FormatTimestamp(now)
	}
	return Workout{
		ID:          uuid.NewString(),
		Date:        in.Date,
		Type:        in.Type,
		DurationMin: in.DurationMin,
		Calories:    in.Calories,
		Notes:       in.Notes,
		CreatedAt:   createdAt,
	}, nil
}

// Input returns the editable fields of w.
func (w Workout) Input() WorkoutInput {
	return WorkoutInput{
		Date:        w.Date,
		Type:        w.Type,
		DurationMin: w.DurationMin,
		Calories:    w.Calories,
		Notes:       w.Notes,
		CreatedAt:   w.CreatedAt,
	}
}

// Apply returns w with the patch applied and re-validated. ID and CreatedAt never change.
func (w Workout) Apply(p WorkoutPatch, now time.Time) (Workout, error) {
	in := w.Input()
	if p.Date != nil {
		in.Date = *p.Date
	}
	if p.Type != nil {
		in.Type = *p.Type
	}
	if p.DurationMin != nil {
		in.DurationMin = *p.DurationMin
	}
	if p.Calories != nil {
		in.Calories = *p.Calories
	}
	if p.Notes != nil {
		in.Notes = *p.Notes
	}
	// created_at is identity, not content.
	in.CreatedAt = ""

	norm, err := in.Normalize(now)
	if err != nil {
		return Workout{}, err
	}
	w.Date = norm.Date
	w.Type = norm.Type
	w.DurationMin = norm.DurationMin
	w.Calories = norm.Calories
	w.Notes = norm.Notes
	return w, nil
}

// Matches reports whether identity names w, either by ID or by its exact creation timestamp.
func (w Workout) Matches(identity string) bool {
	if identity == "" {
		return false
	}
	return w.ID == identity || w.CreatedAt == identity
}

// FormatTimestamp renders t in TimestampLayout after converting it to UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts naive ISO-8601 timestamps with or without fractional
// seconds, and RFC 3339 timestamps carrying an offset. Naive values are read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02T15:04:05", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
