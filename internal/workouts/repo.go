package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mbogdanovic/fittrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type WorkoutParams struct {
	UserID    int
	IsRoutine bool
	From      *time.Time
	To        *time.Time
}

type ListParams struct {
	WorkoutParams
	Page int
	Size int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Create inserts the workout together with its exercises in a single
// transaction, so a failure can never leave a workout without them.
func (r *Repo) Create(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
		INSERT INTO workout (user_id, title, is_routine, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		workout.UserID, workout.Title, workout.IsRoutine, workout.CreatedAt,
	).Scan(&workout.ID)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("workout.id", workout.ID))

	for i := range workout.Exercises {
		workout.Exercises[i].WorkoutID = workout.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO exercise (workout_id, name, sets, reps, kilos)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`,
			workout.ID, workout.Exercises[i].Name,
			workout.Exercises[i].Sets, workout.Exercises[i].Reps,
			workout.Exercises[i].Kilos,
		).Scan(&workout.Exercises[i].ID)
		if err != nil {
			return nil, fmt.Errorf("insert exercise: %w", err)
		}
	}

	return &workout, nil
}

func (r *Repo) Get(ctx context.Context, userID, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	workout := &Workout{}
	err = r.db.QueryRow(ctx, `
		SELECT id, user_id, title, is_routine, completed_at, duration_seconds, created_at
		FROM workout
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(
		&workout.ID, &workout.UserID, &workout.Title, &workout.IsRoutine,
		&workout.CompletedAt, &workout.DurationSeconds, &workout.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, err
	}

	workout.Exercises, err = r.exercisesFor(ctx, workout.ID)
	if err != nil {
		return nil, fmt.Errorf("get workout exercises: %w", err)
	}

	return workout, nil
}

// List returns the requested page of the user's workouts, routines and
// logged sessions separately, newest first.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Workout, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))
	span.SetAttributes(attribute.Bool("is-routine", params.IsRoutine))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size
	countAll, err := r.WorkoutsCount(ctx, params.WorkoutParams)
	if err != nil {
		return nil, -1, err
	}

	if countAll <= limit {
		limit = countAll
		offset = 0
	}

	if countAll-offset < limit {
		offset = countAll - limit
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, title, is_routine, completed_at, duration_seconds, created_at
		FROM workout
		WHERE user_id = $1
			AND is_routine = $2
			AND ($3::timestamp IS NULL OR created_at >= $3)
			AND ($4::timestamp IS NULL OR created_at <= $4)
		ORDER BY created_at DESC
		LIMIT $5
		OFFSET $6;
	`,
		params.UserID, params.IsRoutine,
		params.From, params.To,
		limit, offset,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	workouts, err := r.rows2workouts(rows)
	if err != nil {
		return nil, -1, err
	}
	return workouts, countAll, nil
}

func (r *Repo) WorkoutsCount(ctx context.Context, params WorkoutParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM workout
		WHERE user_id = $1
			AND is_routine = $2
			AND ($3::timestamp IS NULL OR created_at >= $3)
			AND ($4::timestamp IS NULL OR created_at <= $4);
	`,
		params.UserID, params.IsRoutine,
		params.From, params.To,
	).Scan(&count)
	if err != nil {
		return -1, err
	}
	return count, nil
}

// Update changes the workout title and replaces its exercises, all within
// one transaction.
func (r *Repo) Update(ctx context.Context, workout *Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", workout.ID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE workout SET title = $1 WHERE id = $2 AND user_id = $3;
	`, workout.Title, workout.ID, workout.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}

	if _, err = tx.Exec(ctx, `DELETE FROM exercise WHERE workout_id = $1;`, workout.ID); err != nil {
		return fmt.Errorf("delete old exercises: %w", err)
	}

	for i := range workout.Exercises {
		workout.Exercises[i].WorkoutID = workout.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO exercise (workout_id, name, sets, reps, kilos)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`,
			workout.ID, workout.Exercises[i].Name,
			workout.Exercises[i].Sets, workout.Exercises[i].Reps,
			workout.Exercises[i].Kilos,
		).Scan(&workout.Exercises[i].ID)
		if err != nil {
			return fmt.Errorf("insert exercise: %w", err)
		}
	}

	return nil
}

// Delete removes the workout; its exercises go with it (cascade).
func (r *Repo) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `
		DELETE FROM workout WHERE id = $1 AND user_id = $2;
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// Finish sets the completion timestamp and duration together, exactly once.
// A workout that already has a completion keeps it untouched.
func (r *Repo) Finish(
	ctx context.Context,
	userID, id int,
	completedAt time.Time,
	durationSeconds int,
) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.finish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `
		UPDATE workout
		SET completed_at = $1, duration_seconds = $2
		WHERE id = $3 AND user_id = $4 AND completed_at IS NULL;
	`, completedAt, durationSeconds, id, userID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		workout, getErr := r.Get(ctx, userID, id)
		if getErr != nil {
			return ErrWorkoutNotFound
		}
		if workout.Completed() {
			return ErrAlreadyFinished
		}
		return ErrWorkoutNotFound
	}

	return nil
}

// StartFromRoutine clones a routine template into a new concrete workout,
// exercises included, in a single transaction.
func (r *Repo) StartFromRoutine(
	ctx context.Context,
	userID, routineID int,
	startedAt time.Time,
) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.startfromroutine")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("routine.id", routineID))

	routine, err := r.Get(ctx, userID, routineID)
	if err != nil {
		return nil, err
	}
	if !routine.IsRoutine {
		return nil, ErrNotARoutine
	}

	workout := Workout{
		UserID:    userID,
		Title:     routine.Title,
		IsRoutine: false,
		CreatedAt: startedAt,
		Exercises: make([]Exercise, len(routine.Exercises)),
	}
	for i, ex := range routine.Exercises {
		workout.Exercises[i] = Exercise{
			Name:  ex.Name,
			Sets:  ex.Sets,
			Reps:  ex.Reps,
			Kilos: ex.Kilos,
		}
	}

	return r.Create(ctx, workout)
}

// ListCompletions returns the completion timestamps of the user's finished
// workouts, newest first. Used by the stats engine.
func (r *Repo) ListCompletions(ctx context.Context, userID int) (_ []time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listcompletions")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT completed_at FROM workout
		WHERE user_id = $1 AND completed_at IS NOT NULL
		ORDER BY completed_at DESC;
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	completions := make([]time.Time, 0)
	for rows.Next() {
		var completedAt time.Time
		if err := rows.Scan(&completedAt); err != nil {
			return nil, err
		}
		completions = append(completions, completedAt)
	}

	return completions, nil
}

func (r *Repo) exercisesFor(ctx context.Context, workoutID int) ([]Exercise, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, workout_id, name, sets, reps, kilos
		FROM exercise
		WHERE workout_id = $1
		ORDER BY id;
	`, workoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	exercises := make([]Exercise, 0)
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(&e.ID, &e.WorkoutID, &e.Name, &e.Sets, &e.Reps, &e.Kilos); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}

	return exercises, nil
}

func (r *Repo) rows2workouts(rows pgx.Rows) ([]Workout, error) {
	var workouts []Workout
	for rows.Next() {
		var w Workout
		if err := rows.Scan(
			&w.ID, &w.UserID, &w.Title, &w.IsRoutine,
			&w.CompletedAt, &w.DurationSeconds, &w.CreatedAt,
		); err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}

	if workouts == nil {
		workouts = make([]Workout, 0)
	}

	return workouts, nil
}
