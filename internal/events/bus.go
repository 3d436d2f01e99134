// Package events provides an in-process fan-out of verification progress so
// the transport can stream verdicts while a run is still executing.
package events

import (
	"sync"

	"github.com/stemsi/lessonlab-backend/internal/model"
)

// Type discriminates verification events.
type Type string

const (
	TypeCaseResult   Type = "case_result"
	TypeRunCompleted Type = "run_completed"
)

// VerificationEvent is one progress notification for a user's run.
type VerificationEvent struct {
	Type      Type               `json:"type"`
	CaseIndex int                `json:"case_index,omitempty"`
	CaseCount int                `json:"case_count,omitempty"`
	Case      *model.CaseResult  `json:"case,omitempty"`
	Grade     *model.GradeReport `json:"grade,omitempty"`
}

const subscriberBuffer = 16

// Bus fans verification events out to per-user subscribers. Publishing never
// blocks: a subscriber that cannot keep up misses events rather than
// stalling the verification run.
type Bus struct {
	mu   sync.Mutex
	subs map[string]map[chan VerificationEvent]struct{}
}

// NewBus creates a Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[chan VerificationEvent]struct{})}
}

// Subscribe registers a listener for one user's events. The returned cancel
// func must be called exactly once; it closes the channel.
func (b *Bus) Subscribe(userID string) (<-chan VerificationEvent, func()) {
	ch := make(chan VerificationEvent, subscriberBuffer)

	b.mu.Lock()
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[chan VerificationEvent]struct{})
	}
	b.subs[userID][ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if set, ok := b.subs[userID]; ok {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(b.subs, userID)
			}
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber of the user, dropping it
// for subscribers whose buffer is full.
func (b *Bus) Publish(userID string, ev VerificationEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs[userID] {
		select {
		case ch <- ev:
		default:
		}
	}
}
