package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/stemsi/lessonlab-backend/internal/model"
)

// FileRegistrationStore keeps registrations in a flat JSON snapshot: the
// whole file is read at startup and rewritten on every new registration.
// The on-disk layout is a nested mapping user id → lesson date → record.
type FileRegistrationStore struct {
	mu      sync.Mutex
	path    string
	records map[string]map[string]model.RegistrationRecord
}

// NewFileRegistrationStore loads the snapshot at path. A missing file is an
// empty store, not an error.
func NewFileRegistrationStore(path string) (*FileRegistrationStore, error) {
	s := &FileRegistrationStore{
		path:    path,
		records: make(map[string]map[string]model.RegistrationRecord),
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read registrations: %w", err)
	}
	if err := json.Unmarshal(raw, &s.records); err != nil {
		return nil, fmt.Errorf("parse registrations: %w", err)
	}
	return s, nil
}

// Get implements RegistrationStore.
func (s *FileRegistrationStore) Get(_ context.Context, userID, lessonDate string) (*model.RegistrationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[userID][lessonDate]
	if !ok {
		return nil, ErrRegistrationNotFound
	}
	return &rec, nil
}

// Put implements RegistrationStore. The snapshot is rewritten atomically
// (temp file + rename) and the in-memory map is only updated after the write
// lands, so a failed write leaves no phantom record behind.
func (s *FileRegistrationStore) Put(_ context.Context, userID, lessonDate string, rec *model.RegistrationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[userID][lessonDate]; ok {
		return ErrRegistrationExists
	}

	next := s.cloneWith(userID, lessonDate, *rec)
	if err := s.write(next); err != nil {
		return fmt.Errorf("persist registration: %w", err)
	}
	s.records = next
	return nil
}

func (s *FileRegistrationStore) cloneWith(userID, lessonDate string, rec model.RegistrationRecord) map[string]map[string]model.RegistrationRecord {
	next := make(map[string]map[string]model.RegistrationRecord, len(s.records)+1)
	for uid, byDate := range s.records {
		inner := make(map[string]model.RegistrationRecord, len(byDate)+1)
		for date, r := range byDate {
			inner[date] = r
		}
		next[uid] = inner
	}
	if next[userID] == nil {
		next[userID] = make(map[string]model.RegistrationRecord, 1)
	}
	next[userID][lessonDate] = rec
	return next
}

func (s *FileRegistrationStore) write(records map[string]map[string]model.RegistrationRecord) error {
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".registrations-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
