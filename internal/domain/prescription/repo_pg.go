package prescription

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

const reqCols = `id, user_id, medication, dosage, pharmacy, note, status, created_at`

func (r *repoPG) scanRequest(row pgx.Row) (*Request, error) {
	var req Request
	err := row.Scan(&req.ID, &req.UserID, &req.Medication, &req.Dosage,
		&req.Pharmacy, &req.Note, &req.Status, &req.CreatedAt)
	return &req, err
}

func (r *repoPG) Create(ctx context.Context, req *Request) error {
	req.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO prescription_requests (id, user_id, medication, dosage, pharmacy, note, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		req.ID, req.UserID, req.Medication, req.Dosage, req.Pharmacy, req.Note, req.Status)
	if err != nil {
		return err
	}
	return r.conn(ctx).QueryRow(ctx,
		`SELECT created_at FROM prescription_requests WHERE id = $1`, req.ID).Scan(&req.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, userID string, id uuid.UUID) (*Request, error) {
	req, err := r.scanRequest(r.conn(ctx).QueryRow(ctx,
		`SELECT `+reqCols+` FROM prescription_requests WHERE id = $1 AND user_id = $2`, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *repoPG) UpdateStatus(ctx context.Context, userID string, id uuid.UUID, status string) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE prescription_requests SET status = $3
		WHERE id = $1 AND user_id = $2`, id, userID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) ListActive(ctx context.Context, userID string, limit, offset int) ([]*Request, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM prescription_requests WHERE user_id = $1 AND status <> $2`,
		userID, StatusRemoved).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+reqCols+` FROM prescription_requests
		 WHERE user_id = $1 AND status <> $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		userID, StatusRemoved, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Request
	for rows.Next() {
		req, err := r.scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, req)
	}
	return items, total, rows.Err()
}
