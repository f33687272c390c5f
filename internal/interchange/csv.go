// Package interchange moves workout logs in and out of CSV.
package interchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"example.com/fitlog/internal/domain"
)

// Header is the exact column layout of an export.
var Header = []string{"date", "type", "duration_min", "calories", "notes", "created_at"}

var requiredColumns = []string{"date", "type", "duration_min", "calories"}

// Export writes a header row followed by one row per workout, in the given order.
func Export(w io.Writer, workouts []domain.Workout) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, wk := range workouts {
		record := []string{
			wk.Date,
			wk.Type,
			strconv.Itoa(wk.DurationMin),
			strconv.Itoa(wk.Calories),
			wk.Notes,
			wk.CreatedAt,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Parse reads a CSV document whose first row names the columns and returns one
// validated input per data row. Column order is free and unknown columns are
// ignored. The first bad row stops the parse with an *domain.ImportError.
func Parse(r io.Reader, now time.Time) ([]domain.WorkoutInput, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []domain.WorkoutInput{}, nil
	}
	if err != nil {
		return nil, &domain.ImportError{Row: 0, Err: err}
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, &domain.ImportError{Row: 0, Err: fmt.Errorf("missing column %q", name)}
		}
	}

	inputs := make([]domain.WorkoutInput, 0)
	for row := 1; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.ImportError{Row: row, Err: err}
		}

		cell := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		in, err := domain.ParseWorkoutInput(cell("date"), cell("type"), cell("duration_min"), cell("calories"), cell("notes"))
		if err != nil {
			return nil, &domain.ImportError{Row: row, Err: err}
		}
		in.CreatedAt = cell("created_at")

		normalized, err := in.Normalize(now)
		if err != nil {
			return nil, &domain.ImportError{Row: row, Err: err}
		}
		inputs = append(inputs, normalized)
	}
	return inputs, nil
}

// DefaultFilename suggests a file name for an export taken on today.
func DefaultFilename(username string, today time.Time) string {
	return fmt.Sprintf("%s_workouts_%s.csv", username, today.Format(domain.DateLayout))
}
