package interchange

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/fitlog/internal/domain"
)

var fixedNow = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

func TestExportHeaderAndQuoting(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, []domain.Workout{
		{ID: "ignored", Date: "2024-01-10", Type: "Sports (Basketball, Soccer, etc.)", DurationMin: 60, Calories: 600, Notes: `said "go"`, CreatedAt: "2024-01-10T18:00:00.000000"},
	})
	require.NoError(t, err)

	want := "date,type,duration_min,calories,notes,created_at\n" +
		`2024-01-10,"Sports (Basketball, Soccer, etc.)",60,600,"said ""go""",2024-01-10T18:00:00.000000` + "\n"
	require.Equal(t, want, buf.String())
}

func TestExportEmptyWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, nil))
	require.Equal(t, "date,type,duration_min,calories,notes,created_at\n", buf.String())
}

func TestParseAppliesCoercions(t *testing.T) {
	doc := "type,date,calories,duration_min,extra\n" +
		"Running,2024-01-10, 250 ,30,x\n" +
		"Yoga,,0,15,y\n"

	inputs, err := Parse(strings.NewReader(doc), fixedNow)
	require.NoError(t, err)
	require.Equal(t, []domain.WorkoutInput{
		{Date: "2024-01-10", Type: "Running", DurationMin: 30, Calories: 250},
		{Date: "2024-01-15", Type: "Yoga", DurationMin: 15, Calories: 0},
	}, inputs)
}

func TestParseReportsFailingRow(t *testing.T) {
	doc := "date,type,duration_min,calories,notes,created_at\n" +
		"2024-01-10,Running,30,250,,\n" +
		"2024-01-11,Running,thirty,250,,\n" +
		"2024-01-12,Running,0,250,,\n"

	_, err := Parse(strings.NewReader(doc), fixedNow)
	var ierr *domain.ImportError
	require.True(t, errors.As(err, &ierr))
	require.Equal(t, 2, ierr.Row)
	require.ErrorIs(t, err, domain.ErrValidation)
	require.Contains(t, err.Error(), "import row 2")
}

func TestParseMissingColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("date,type,calories\n2024-01-10,Run,1\n"), fixedNow)
	var ierr *domain.ImportError
	require.True(t, errors.As(err, &ierr))
	require.Equal(t, 0, ierr.Row)
	require.Contains(t, err.Error(), "duration_min")
}

func TestParseEmptyDocument(t *testing.T) {
	inputs, err := Parse(strings.NewReader(""), fixedNow)
	require.NoError(t, err)
	require.Empty(t, inputs)
}

func TestParseHandlesByteOrderMark(t *testing.T) {
	doc := "\ufeffdate,type,duration_min,calories\n2024-01-10,Rowing,20,180\n"

	inputs, err := Parse(strings.NewReader(doc), fixedNow)
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	require.Equal(t, "2024-01-10", inputs[0].Date)
}

func TestDefaultFilename(t *testing.T) {
	require.Equal(t, "alice_workouts_2024-01-15.csv", DefaultFilename("alice", fixedNow))
}
