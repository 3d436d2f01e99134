package model

import "time"

// RegistrationRecord is one attendance registration, keyed externally by
// (user id, lesson date). Created at most once per key and persisted to
// durable storage before the registering call returns.
type RegistrationRecord struct {
	RegistrationTime time.Time `json:"registration_time"`
	Topic            string    `json:"topic"`
	Assignment       string    `json:"assignment"`
	StudentName      string    `json:"student_name"`
	// ExtraAssignment holds the flattened text of the harder task generated
	// for late arrivals. Empty when the student registered on time.
	ExtraAssignment string `json:"extra_assignment,omitempty"`
}

// RegistrationOutcome reports the result of a register call. A repeated
// registration returns the existing record with AlreadyRegistered set and
// performs no side effects.
type RegistrationOutcome struct {
	Record            *RegistrationRecord `json:"record"`
	LessonDate        string              `json:"lesson_date"`
	AlreadyRegistered bool                `json:"already_registered"`
	Late              bool                `json:"late"`
}

// RegisterRequest is the payload for attendance registration.
type RegisterRequest struct {
	StudentName string `json:"student_name" binding:"required,max=200"`
}
