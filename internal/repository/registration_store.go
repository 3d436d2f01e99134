package repository

import (
	"context"
	"errors"

	"github.com/stemsi/lessonlab-backend/internal/model"
)

// ErrRegistrationNotFound is returned by Get when no record exists for the
// (user, lesson date) key.
var ErrRegistrationNotFound = errors.New("registration not found")

// ErrRegistrationExists is returned by Put when a record for the key was
// persisted concurrently; the caller treats the existing record as the
// outcome (idempotent registration).
var ErrRegistrationExists = errors.New("registration already exists")

// RegistrationStore is durable storage for attendance registrations, keyed
// by user id then lesson date. Put must be flushed before returning: a lost
// registration breaks the idempotence contract.
type RegistrationStore interface {
	Get(ctx context.Context, userID, lessonDate string) (*model.RegistrationRecord, error)
	Put(ctx context.Context, userID, lessonDate string, rec *model.RegistrationRecord) error
}
