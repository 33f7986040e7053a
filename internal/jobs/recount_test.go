package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/flowboard/internal/metrics"
	projectservice "github.com/thenoetrevino/flowboard/internal/services/project"
	"github.com/thenoetrevino/flowboard/internal/testutil"
)

type fakeRecounter struct {
	calls    atomic.Int32
	repaired int
	err      error
}

func (f *fakeRecounter) RecountTasks(ctx context.Context) (int, error) {
	f.calls.Add(1)
	return f.repaired, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunOnce_RepairsDriftedCounters(t *testing.T) {
	t.Parallel()
	repo, db := testutil.SetupTestRepository(t)
	projectID := testutil.CreateTestProject(t, db, "Launch")
	testutil.CreateTestTask(t, db, projectID, "one", "todo")
	testutil.CreateTestTask(t, db, projectID, "two", "completed")

	m := metrics.New()
	s, err := NewScheduler(projectservice.NewService(repo), m, quietLogger(), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })

	n, err := s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, testutil.TaskCount(t, db, projectID))

	n, err = s.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	expected := `
# HELP flowboard_store_task_count_repairs_total Projects whose stored task counter was rewritten by the recount job
# TYPE flowboard_store_task_count_repairs_total counter
flowboard_store_task_count_repairs_total 1
`
	assert.NoError(t, promtest.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"flowboard_store_task_count_repairs_total"))
}

func TestRunOnce_PropagatesError(t *testing.T) {
	t.Parallel()
	f := &fakeRecounter{err: errors.New("store unavailable")}

	s, err := NewScheduler(f, metrics.New(), quietLogger(), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })

	_, err = s.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestScheduler_RunsOnInterval(t *testing.T) {
	t.Parallel()
	f := &fakeRecounter{repaired: 1}

	s, err := NewScheduler(f, metrics.New(), quietLogger(), 20*time.Millisecond)
	require.NoError(t, err)
	s.Start()
	t.Cleanup(func() { _ = s.Stop() })

	assert.Eventually(t, func() bool {
		return f.calls.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_DisabledInterval(t *testing.T) {
	t.Parallel()
	f := &fakeRecounter{}

	s, err := NewScheduler(f, nil, nil, 0)
	require.NoError(t, err)
	s.Start()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, s.Stop())
	assert.Equal(t, int32(0), f.calls.Load())
}
