package workouts

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionFinished   = errors.New("session already finished")
	ErrSessionNotRunning = errors.New("session not running")
	ErrSessionNotPaused  = errors.New("session not paused")
	ErrSessionExists     = errors.New("session already running for workout")
)

type SessionState string

const (
	SessionNotStarted SessionState = "not_started"
	SessionRunning    SessionState = "running"
	SessionPaused     SessionState = "paused"
	SessionFinished   SessionState = "finished"
)

// Session tracks the elapsed time of a single workout:
// NotStarted -> Running <-> Paused -> Finished. Finished is terminal.
// Resuming redefines the start instant as now minus the accumulated
// elapsed time, so pauses do not count towards the duration.
// Safe for concurrent use, the tracker hands the same pointer to
// parallel requests.
type Session struct {
	WorkoutID int

	mutex     sync.Mutex
	state     SessionState
	startedAt time.Time
	elapsed   time.Duration
}

func NewSession(workoutID int) *Session {
	return &Session{
		WorkoutID: workoutID,
		state:     SessionNotStarted,
	}
}

func (s *Session) State() SessionState {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

func (s *Session) Start(now time.Time) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.state != SessionNotStarted {
		return ErrSessionNotRunning
	}
	s.startedAt = now
	s.state = SessionRunning
	return nil
}

func (s *Session) Pause(now time.Time) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.state != SessionRunning {
		return ErrSessionNotRunning
	}
	s.elapsed = now.Sub(s.startedAt)
	s.state = SessionPaused
	return nil
}

func (s *Session) Resume(now time.Time) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.state != SessionPaused {
		return ErrSessionNotPaused
	}
	s.startedAt = now.Add(-s.elapsed)
	s.state = SessionRunning
	return nil
}

// Finish is valid from both Running and Paused and returns the total
// elapsed time to persist alongside the completion timestamp.
func (s *Session) Finish(now time.Time) (time.Duration, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	switch s.state {
	case SessionRunning:
		s.elapsed = now.Sub(s.startedAt)
	case SessionPaused:
		// elapsed already frozen
	case SessionFinished:
		return 0, ErrSessionFinished
	default:
		return 0, ErrSessionNotRunning
	}
	s.state = SessionFinished
	return s.elapsed, nil
}

func (s *Session) Elapsed(now time.Time) time.Duration {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	switch s.state {
	case SessionRunning:
		return now.Sub(s.startedAt)
	case SessionPaused, SessionFinished:
		return s.elapsed
	default:
		return 0
	}
}

// SessionTracker keeps the active (running or paused) sessions of this
// process, keyed by workout ID.
type SessionTracker struct {
	mutex    sync.Mutex
	sessions map[int]*Session
}

func NewSessionTracker() *SessionTracker {
	return &SessionTracker{
		sessions: make(map[int]*Session),
	}
}

func (t *SessionTracker) Start(workoutID int, now time.Time) (*Session, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, ok := t.sessions[workoutID]; ok {
		return nil, ErrSessionExists
	}

	session := NewSession(workoutID)
	if err := session.Start(now); err != nil {
		return nil, err
	}
	t.sessions[workoutID] = session
	return session, nil
}

func (t *SessionTracker) Get(workoutID int) (*Session, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	session, ok := t.sessions[workoutID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (t *SessionTracker) Remove(workoutID int) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	delete(t.sessions, workoutID)
}

func (t *SessionTracker) ActiveCount() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return len(t.sessions)
}
