package workouts

import (
	"errors"
	"time"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrAlreadyFinished = errors.New("workout already finished")
	ErrNotARoutine     = errors.New("workout is not a routine")
	ErrInvalidExercise = errors.New("exercise sets and reps must be positive")
	ErrMissingTitle    = errors.New("workout title empty")
)

// Workout is either a reusable routine template (IsRoutine) or a concrete
// logged session. CompletedAt and DurationSeconds are set together, once,
// when the session finishes, and never change afterwards.
type Workout struct {
	ID              int        `json:"id"`
	UserID          int        `json:"userId"`
	Title           string     `json:"title"`
	IsRoutine       bool       `json:"isRoutine"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	DurationSeconds *int       `json:"durationSeconds,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`

	Exercises []Exercise `json:"exercises"`
}

func (w *Workout) Completed() bool {
	return w.CompletedAt != nil && w.DurationSeconds != nil
}

func (w *Workout) Validate() error {
	if w.Title == "" {
		return ErrMissingTitle
	}
	for i := range w.Exercises {
		if err := w.Exercises[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Exercise belongs to exactly one workout; deleting the workout deletes it.
type Exercise struct {
	ID        int      `json:"id"`
	WorkoutID int      `json:"workoutId"`
	Name      string   `json:"name"`
	Sets      int      `json:"sets"`
	Reps      int      `json:"reps"`
	Kilos     *float64 `json:"kilos,omitempty"`
}

func (e *Exercise) Validate() error {
	if e.Name == "" {
		return errors.New("exercise name empty")
	}
	if e.Sets <= 0 || e.Reps <= 0 {
		return ErrInvalidExercise
	}
	return nil
}
