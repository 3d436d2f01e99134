package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stemsi/lessonlab-backend/internal/model"
)

// PgRegistrationStore persists registrations in PostgreSQL, one row per
// (user_id, lesson_date) with a unique constraint enforcing idempotence
// even across processes.
type PgRegistrationStore struct {
	pool *pgxpool.Pool
}

// NewPgRegistrationStore creates a PgRegistrationStore.
func NewPgRegistrationStore(pool *pgxpool.Pool) *PgRegistrationStore {
	return &PgRegistrationStore{pool: pool}
}

// Get implements RegistrationStore.
func (s *PgRegistrationStore) Get(ctx context.Context, userID, lessonDate string) (*model.RegistrationRecord, error) {
	rec := &model.RegistrationRecord{}
	err := s.pool.QueryRow(ctx,
		`SELECT registration_time, topic, assignment, student_name, COALESCE(extra_assignment, '')
		 FROM registrations WHERE user_id = $1 AND lesson_date = $2`,
		userID, lessonDate,
	).Scan(&rec.RegistrationTime, &rec.Topic, &rec.Assignment, &rec.StudentName, &rec.ExtraAssignment)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Put implements RegistrationStore. A unique-violation maps to
// ErrRegistrationExists so concurrent duplicates collapse to one record.
func (s *PgRegistrationStore) Put(ctx context.Context, userID, lessonDate string, rec *model.RegistrationRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO registrations (user_id, lesson_date, registration_time, topic, assignment, student_name, extra_assignment)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))`,
		userID, lessonDate, rec.RegistrationTime, rec.Topic, rec.Assignment, rec.StudentName, rec.ExtraAssignment,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrRegistrationExists
		}
		return err
	}
	return nil
}
