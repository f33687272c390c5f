package interchange

import (
	"errors"
	"io"
	"time"

	"example.com/fitlog/internal/domain"
	"example.com/fitlog/internal/observability"
)

// ErrNoWorkouts is returned when exporting an empty log.
var ErrNoWorkouts = errors.New("no workouts to export")

// WorkoutLog is the slice of domain.Service the interchange needs.
type WorkoutLog interface {
	ListWorkouts(username string) ([]domain.Workout, error)
	AppendWorkouts(username string, inputs []domain.WorkoutInput) ([]domain.Workout, error)
}

// Service exports and imports a user's workouts.
type Service struct {
	log   WorkoutLog
	clock func() time.Time
}

// NewService constructs a Service. A nil clock means time.Now.
func NewService(log WorkoutLog, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{log: log, clock: clock}
}

// ExportAccount writes the user's log to w and returns the number of rows.
func (s *Service) ExportAccount(w io.Writer, username string) (int, error) {
	workouts, err := s.log.ListWorkouts(username)
	if err != nil {
		return 0, err
	}
	if len(workouts) == 0 {
		return 0, ErrNoWorkouts
	}
	if err := Export(w, workouts); err != nil {
		return 0, err
	}
	observability.RecordExportedRows(len(workouts))
	return len(workouts), nil
}

// ImportAccount validates the whole document before appending anything, so
// a bad row leaves the log untouched. It returns the number of rows imported.
func (s *Service) ImportAccount(username string, r io.Reader) (int, error) {
	inputs, err := Parse(r, s.clock())
	if err != nil {
		return 0, err
	}
	if len(inputs) == 0 {
		return 0, nil
	}
	created, err := s.log.AppendWorkouts(username, inputs)
	if err != nil {
		return 0, err
	}
	observability.RecordImportedRows(len(created))
	return len(created), nil
}
