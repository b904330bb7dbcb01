package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrScheduleNotFound is returned when no document exists for the
// requested college and term.
var ErrScheduleNotFound = errors.New("schedule not found")

// StoredSchedule is one persisted canonical document row.
type StoredSchedule struct {
	CollegeID string    `json:"college_id"`
	TermCode  string    `json:"term_code"`
	Document  []byte    `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScheduleRepository persists canonical schedule documents as JSONB,
// keyed by (college_id, term_code).
type ScheduleRepository struct {
	pool *pgxpool.Pool
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

// Upsert stores a canonical document, replacing any existing document
// for the same college and term.
func (r *ScheduleRepository) Upsert(ctx context.Context, collegeID, termCode string, document []byte) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO schedules (college_id, term_code, document, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (college_id, term_code)
		 DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()`,
		collegeID, termCode, document)
	return err
}

// Get fetches the canonical document for a college and term.
func (r *ScheduleRepository) Get(ctx context.Context, collegeID, termCode string) (*StoredSchedule, error) {
	var s StoredSchedule
	err := r.pool.QueryRow(ctx,
		`SELECT college_id, term_code, document, updated_at
		 FROM schedules WHERE college_id = $1 AND term_code = $2`,
		collegeID, termCode).Scan(&s.CollegeID, &s.TermCode, &s.Document, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetLatest fetches the most recently updated document for a college,
// used when a query names no term.
func (r *ScheduleRepository) GetLatest(ctx context.Context, collegeID string) (*StoredSchedule, error) {
	var s StoredSchedule
	err := r.pool.QueryRow(ctx,
		`SELECT college_id, term_code, document, updated_at
		 FROM schedules WHERE college_id = $1
		 ORDER BY updated_at DESC LIMIT 1`,
		collegeID).Scan(&s.CollegeID, &s.TermCode, &s.Document, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns the (college, term) keys of every stored document,
// newest first. Documents themselves are not loaded.
func (r *ScheduleRepository) List(ctx context.Context) ([]StoredSchedule, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT college_id, term_code, updated_at
		 FROM schedules ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []StoredSchedule
	for rows.Next() {
		var s StoredSchedule
		if err := rows.Scan(&s.CollegeID, &s.TermCode, &s.UpdatedAt); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

// Delete removes the document for a college and term.
func (r *ScheduleRepository) Delete(ctx context.Context, collegeID, termCode string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM schedules WHERE college_id = $1 AND term_code = $2`,
		collegeID, termCode)
	return err
}
