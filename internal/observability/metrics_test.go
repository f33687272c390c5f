package observability

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordWorkoutMutationIgnoresNonPositive(t *testing.T) {
	before := testutil.ToFloat64(workoutMutations.WithLabelValues("append"))

	RecordWorkoutMutation("append", 0)
	RecordWorkoutMutation("append", -3)
	require.Equal(t, before, testutil.ToFloat64(workoutMutations.WithLabelValues("append")))

	RecordWorkoutMutation("append", 2)
	require.Equal(t, before+2, testutil.ToFloat64(workoutMutations.WithLabelValues("append")))
}

func TestRecordPersistedSkipsZeroTime(t *testing.T) {
	RecordPersisted("test-store", time.Unix(1700000000, 0))
	RecordPersisted("test-store", time.Time{})
	require.Equal(t, float64(1700000000), testutil.ToFloat64(persistGauge.WithLabelValues("test-store")))
}

func TestWriteTextfile(t *testing.T) {
	RecordValidationFailure("calories")
	path := filepath.Join(t.TempDir(), "fitlog.prom")

	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), `fitlog_workouts_validation_failures_total{field="calories"}`))
}
