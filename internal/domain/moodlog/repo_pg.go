package moodlog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caresched/caresched/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) db.Queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const moodCols = `id, user_id, date, mood, symptoms, note, created_at`

func (r *repoPG) scanMoodLog(row pgx.Row) (*MoodLog, error) {
	var m MoodLog
	err := row.Scan(&m.ID, &m.UserID, &m.Date, &m.Mood, &m.Symptoms, &m.Note, &m.CreatedAt)
	return &m, err
}

func (r *repoPG) Create(ctx context.Context, m *MoodLog) error {
	m.ID = uuid.New()
	if m.Symptoms == nil {
		m.Symptoms = []string{}
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO mood_logs (id, user_id, date, mood, symptoms, note)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		m.ID, m.UserID, m.Date, m.Mood, m.Symptoms, m.Note)
	if err != nil {
		return err
	}
	return r.conn(ctx).QueryRow(ctx,
		`SELECT created_at FROM mood_logs WHERE id = $1`, m.ID).Scan(&m.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, userID string, id uuid.UUID) (*MoodLog, error) {
	m, err := r.scanMoodLog(r.conn(ctx).QueryRow(ctx,
		`SELECT `+moodCols+` FROM mood_logs WHERE id = $1 AND user_id = $2`, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Update replaces mood, symptoms and note. Date and created_at never change.
func (r *repoPG) Update(ctx context.Context, m *MoodLog) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE mood_logs SET mood=$3, symptoms=$4, note=$5
		WHERE id = $1 AND user_id = $2`,
		m.ID, m.UserID, m.Mood, m.Symptoms, m.Note)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM mood_logs WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *repoPG) ListByUser(ctx context.Context, userID string) ([]*MoodLog, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+moodCols+` FROM mood_logs WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*MoodLog
	for rows.Next() {
		m, err := r.scanMoodLog(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
