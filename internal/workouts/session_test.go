package workouts

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Lifecycle(t *testing.T) {
	now := time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)
	s := NewSession(42)
	assert.Equal(t, SessionNotStarted, s.State())
	assert.Equal(t, time.Duration(0), s.Elapsed(now))

	require.NoError(t, s.Start(now))
	assert.Equal(t, SessionRunning, s.State())

	now = now.Add(10 * time.Minute)
	assert.Equal(t, 10*time.Minute, s.Elapsed(now))

	elapsed, err := s.Finish(now)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, elapsed)
	assert.Equal(t, SessionFinished, s.State())

	// finished is terminal
	_, err = s.Finish(now.Add(time.Minute))
	assert.ErrorIs(t, err, ErrSessionFinished)
	assert.ErrorIs(t, s.Pause(now), ErrSessionNotRunning)
	assert.ErrorIs(t, s.Resume(now), ErrSessionNotPaused)
	assert.Equal(t, 10*time.Minute, s.Elapsed(now.Add(time.Hour)))
}

func TestSession_PauseResumePreservesElapsed(t *testing.T) {
	now := time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)
	s := NewSession(42)
	require.NoError(t, s.Start(now))

	now = now.Add(5 * time.Minute)
	require.NoError(t, s.Pause(now))
	assert.Equal(t, SessionPaused, s.State())

	// time passes while paused, elapsed does not move
	now = now.Add(30 * time.Minute)
	assert.Equal(t, 5*time.Minute, s.Elapsed(now))

	require.NoError(t, s.Resume(now))
	assert.Equal(t, SessionRunning, s.State())
	assert.Equal(t, 5*time.Minute, s.Elapsed(now))

	now = now.Add(3 * time.Minute)
	assert.Equal(t, 8*time.Minute, s.Elapsed(now))

	elapsed, err := s.Finish(now)
	require.NoError(t, err)
	assert.Equal(t, 8*time.Minute, elapsed)
}

func TestSession_FinishWhilePaused(t *testing.T) {
	now := time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)
	s := NewSession(7)
	require.NoError(t, s.Start(now))
	require.NoError(t, s.Pause(now.Add(12*time.Minute)))

	elapsed, err := s.Finish(now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 12*time.Minute, elapsed)
}

func TestSession_InvalidTransitions(t *testing.T) {
	now := time.Now()
	s := NewSession(1)

	assert.ErrorIs(t, s.Pause(now), ErrSessionNotRunning)
	assert.ErrorIs(t, s.Resume(now), ErrSessionNotPaused)
	_, err := s.Finish(now)
	assert.ErrorIs(t, err, ErrSessionNotRunning)

	require.NoError(t, s.Start(now))
	assert.ErrorIs(t, s.Start(now), ErrSessionNotRunning)
	assert.ErrorIs(t, s.Resume(now), ErrSessionNotPaused)

	require.NoError(t, s.Pause(now))
	assert.ErrorIs(t, s.Pause(now), ErrSessionNotRunning)
}

func TestSession_ConcurrentTransitions(t *testing.T) {
	now := time.Now()
	s := NewSession(42)
	require.NoError(t, s.Start(now))

	// parallel pause/resume/status requests share the same session pointer
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_ = s.Pause(time.Now())
		}()
		go func() {
			defer wg.Done()
			_ = s.Resume(time.Now())
		}()
		go func() {
			defer wg.Done()
			_ = s.Elapsed(time.Now())
			_ = s.State()
		}()
	}
	wg.Wait()

	state := s.State()
	assert.Contains(t, []SessionState{SessionRunning, SessionPaused}, state)
	assert.GreaterOrEqual(t, s.Elapsed(time.Now()), time.Duration(0))

	_, err := s.Finish(time.Now())
	require.NoError(t, err)
	assert.Equal(t, SessionFinished, s.State())
}

func TestSessionTracker(t *testing.T) {
	now := time.Now()
	tracker := NewSessionTracker()
	assert.Equal(t, 0, tracker.ActiveCount())

	s, err := tracker.Start(42, now)
	require.NoError(t, err)
	assert.Equal(t, SessionRunning, s.State())
	assert.Equal(t, 1, tracker.ActiveCount())

	_, err = tracker.Start(42, now)
	assert.ErrorIs(t, err, ErrSessionExists)

	got, err := tracker.Get(42)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = tracker.Get(43)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	tracker.Remove(42)
	assert.Equal(t, 0, tracker.ActiveCount())
	_, err = tracker.Get(42)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
