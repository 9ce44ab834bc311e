package calendar

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caresched/caresched/internal/platform/db"
)

type eventRepoPG struct{ pool *pgxpool.Pool }

func NewEventRepoPG(pool *pgxpool.Pool) EventRepository { return &eventRepoPG{pool: pool} }

func (r *eventRepoPG) conn(ctx context.Context) db.Queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const eventCols = `id, user_id, title, description, date, time_slot, category, task_type,
	doctor_id, doctor_name, doctor_specialty, doctor_hospital, doctor_npi, status, created_at`

// isUniqueViolation reports whether err is a postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *eventRepoPG) scanEvent(row pgx.Row) (*Event, error) {
	var e Event
	err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Description, &e.Date, &e.TimeSlot,
		&e.Category, &e.TaskType, &e.DoctorID, &e.DoctorName, &e.DoctorSpecialty,
		&e.DoctorHospital, &e.DoctorNPI, &e.Status, &e.CreatedAt)
	return &e, err
}

func (r *eventRepoPG) Create(ctx context.Context, e *Event) error {
	e.ID = uuid.New()
	// A partial unique index on (user_id, date, time_slot, doctor_npi) for
	// appointment records turns the double-booking race into a conditional
	// write: zero rows inserted means someone else got the slot first.
	tag, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO calendar_events (id, user_id, title, description, date, time_slot,
			category, task_type, doctor_id, doctor_name, doctor_specialty,
			doctor_hospital, doctor_npi, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT DO NOTHING`,
		e.ID, e.UserID, e.Title, e.Description, e.Date, e.TimeSlot,
		e.Category, e.TaskType, e.DoctorID, e.DoctorName, e.DoctorSpecialty,
		e.DoctorHospital, e.DoctorNPI, e.Status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSlotTaken
	}
	return r.conn(ctx).QueryRow(ctx,
		`SELECT created_at FROM calendar_events WHERE id = $1`, e.ID).Scan(&e.CreatedAt)
}

func (r *eventRepoPG) GetByID(ctx context.Context, userID string, id uuid.UUID) (*Event, error) {
	e, err := r.scanEvent(r.conn(ctx).QueryRow(ctx,
		`SELECT `+eventCols+` FROM calendar_events WHERE id = $1 AND user_id = $2`, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepoPG) Update(ctx context.Context, e *Event) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE calendar_events SET title=$3, description=$4, date=$5, time_slot=$6,
			category=$7, task_type=$8, doctor_id=$9, doctor_name=$10,
			doctor_specialty=$11, doctor_hospital=$12, doctor_npi=$13, status=$14
		WHERE id = $1 AND user_id = $2`,
		e.ID, e.UserID, e.Title, e.Description, e.Date, e.TimeSlot,
		e.Category, e.TaskType, e.DoctorID, e.DoctorName, e.DoctorSpecialty,
		e.DoctorHospital, e.DoctorNPI, e.Status)
	if err != nil {
		// An update moving a record onto an already-booked appointment slot
		// trips the same partial unique index the insert path relies on.
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *eventRepoPG) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM calendar_events WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *eventRepoPG) ListByUserDate(ctx context.Context, userID, date string) ([]*Event, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+eventCols+` FROM calendar_events
		 WHERE user_id = $1 AND date = $2 ORDER BY created_at`, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Event
	for rows.Next() {
		e, err := r.scanEvent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *eventRepoPG) ListBookedSlots(ctx context.Context, userID, date, doctorNPI string) ([]string, error) {
	query := `SELECT time_slot FROM calendar_events
		WHERE user_id = $1 AND date = $2 AND time_slot IS NOT NULL`
	args := []interface{}{userID, date}
	if doctorNPI != "" {
		query += ` AND category = $3 AND doctor_npi = $4`
		args = append(args, CategoryAppointments, doctorNPI)
	}

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var slots []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}
