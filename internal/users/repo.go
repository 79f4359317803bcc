package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/mbogdanovic/fittrack/internal/telemetry/tracing"
	"github.com/mbogdanovic/fittrack/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Create inserts the user and the initial profile in one transaction, an
// account can never exist without its profile row.
func (r *Repo) Create(ctx context.Context, user User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
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
		INSERT INTO fittrack_user (username, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`,
		user.Username, user.PasswordHash, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))

	user.Profile.UserID = user.ID
	_, err = tx.Exec(ctx, `
		INSERT INTO user_profile (user_id, display_name, weight_kilos, height_cm, daily_calorie_goal)
		VALUES ($1, $2, $3, $4, $5)
	`,
		user.ID, user.Profile.DisplayName,
		user.Profile.WeightKilos, user.Profile.HeightCm,
		user.Profile.DailyCalorieGoal,
	)
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	return &user, nil
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getbyusername")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.getUser(ctx, `
		SELECT u.id, u.username, u.password_hash, u.created_at,
			p.display_name, p.weight_kilos, p.height_cm, p.daily_calorie_goal
		FROM fittrack_user u
		JOIN user_profile p ON p.user_id = u.id
		WHERE u.username = $1
	`, username)
}

func (r *Repo) GetByID(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getbyid")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return r.getUser(ctx, `
		SELECT u.id, u.username, u.password_hash, u.created_at,
			p.display_name, p.weight_kilos, p.height_cm, p.daily_calorie_goal
		FROM fittrack_user u
		JOIN user_profile p ON p.user_id = u.id
		WHERE u.id = $1
	`, id)
}

func (r *Repo) UpdatePassword(ctx context.Context, userID int, passwordHash string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updatepassword")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	tag, err := r.db.Exec(ctx, `
		UPDATE fittrack_user SET password_hash = $1 WHERE id = $2;
	`, passwordHash, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repo) UpdateProfile(ctx context.Context, profile *Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updateprofile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", profile.UserID))

	tag, err := r.db.Exec(ctx, `
		UPDATE user_profile
		SET display_name = $1, weight_kilos = $2, height_cm = $3, daily_calorie_goal = $4
		WHERE user_id = $5;
	`,
		profile.DisplayName, profile.WeightKilos,
		profile.HeightCm, profile.DailyCalorieGoal,
		profile.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *Repo) getUser(ctx context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt,
		&user.Profile.DisplayName, &user.Profile.WeightKilos,
		&user.Profile.HeightCm, &user.Profile.DailyCalorieGoal,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	user.Profile.UserID = user.ID
	return user, nil
}
