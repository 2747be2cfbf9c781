package scheduler

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJob struct {
	name string
	err  error
	runs int
}

func (j *stubJob) Name() string { return j.name }
func (j *stubJob) Run() error {
	j.runs++
	return j.err
}

func TestAddJob(t *testing.T) {
	s := New(zerolog.Nop())

	require.NoError(t, s.AddJob("@hourly", &stubJob{name: "first"}))
	require.NoError(t, s.AddJob("0 0 */6 * * *", &stubJob{name: "second"}))

	assert.Equal(t, []string{"first", "second"}, s.Jobs())
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	s := New(zerolog.Nop())

	err := s.AddJob("not a schedule", &stubJob{name: "broken"})
	require.Error(t, err)
	assert.Empty(t, s.Jobs())
}

func TestRunNow(t *testing.T) {
	s := New(zerolog.Nop())

	job := &stubJob{name: "manual"}
	require.NoError(t, s.RunNow(job))
	assert.Equal(t, 1, job.runs)

	failing := &stubJob{name: "failing", err: errors.New("boom")}
	require.Error(t, s.RunNow(failing))
}
