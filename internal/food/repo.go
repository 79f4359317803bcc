package food

import (
	"context"
	"errors"
	"time"

	"github.com/mbogdanovic/fittrack/internal/telemetry/tracing"

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

func (r *Repo) Add(ctx context.Context, entry Entry) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.food.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(ctx, `
		INSERT INTO food_entry (user_id, name, calories, protein, carbs, fat, consumed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`,
		entry.UserID, entry.Name, entry.Calories,
		entry.Protein, entry.Carbs, entry.Fat,
		entry.ConsumedAt,
	).Scan(&entry.ID)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("entry.id", entry.ID))
	return &entry, nil
}

func (r *Repo) Get(ctx context.Context, userID, id int) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.food.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	entry := &Entry{}
	err = r.db.QueryRow(ctx, `
		SELECT id, user_id, name, calories, protein, carbs, fat, consumed_at
		FROM food_entry
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(
		&entry.ID, &entry.UserID, &entry.Name, &entry.Calories,
		&entry.Protein, &entry.Carbs, &entry.Fat, &entry.ConsumedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListForDay returns the user's entries whose ConsumedAt falls on the
// calendar day of the given moment, oldest first. The day boundary comes
// from the location of the passed time.
func (r *Repo) ListForDay(ctx context.Context, userID int, day time.Time) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.food.listforday")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	nextDayStart := dayStart.AddDate(0, 0, 1)
	span.SetAttributes(attribute.String("day", dayStart.Format(time.DateOnly)))

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, calories, protein, carbs, fat, consumed_at
		FROM food_entry
		WHERE user_id = $1
			AND consumed_at >= $2
			AND consumed_at < $3
		ORDER BY consumed_at;
	`, userID, dayStart, nextDayStart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return r.rows2entries(rows)
}

func (r *Repo) Update(ctx context.Context, entry *Entry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.food.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", entry.ID))

	tag, err := r.db.Exec(ctx, `
		UPDATE food_entry
		SET name = $1, calories = $2, protein = $3, carbs = $4, fat = $5, consumed_at = $6
		WHERE id = $7 AND user_id = $8;
	`,
		entry.Name, entry.Calories,
		entry.Protein, entry.Carbs, entry.Fat,
		entry.ConsumedAt, entry.ID, entry.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.food.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `
		DELETE FROM food_entry WHERE id = $1 AND user_id = $2;
	`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *Repo) rows2entries(rows pgx.Rows) ([]Entry, error) {
	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Name, &e.Calories,
			&e.Protein, &e.Carbs, &e.Fat, &e.ConsumedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
