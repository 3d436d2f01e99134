// Package catalog owns the static lesson catalog and resolves which lesson
// is active (or next up) for a given instant.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/stemsi/lessonlab-backend/internal/model"
)

// Catalog is the ordered, immutable collection of lesson records. It is
// loaded once at startup and safe for concurrent reads.
type Catalog struct {
	lessons []model.LessonRecord
}

type catalogFile struct {
	Lessons []model.LessonRecord `json:"lessons"`
}

// Load reads the catalog from a JSON file of the form
// {"lessons": [{date, start_time, end_time, topic, assignment}, ...]}.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	return New(file.Lessons)
}

// New builds a catalog from in-memory records, validating every lesson
// window up front so resolution never has to handle malformed entries.
func New(lessons []model.LessonRecord) (*Catalog, error) {
	for i := range lessons {
		if _, _, err := lessons[i].Window(time.Local); err != nil {
			return nil, fmt.Errorf("lesson %d (%s): %w", i, lessons[i].Date, err)
		}
	}

	// The source file is expected to be ordered already; sort defensively so
	// "next upcoming" resolution can take the first match.
	sorted := make([]model.LessonRecord, len(lessons))
	copy(sorted, lessons)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].StartTime < sorted[j].StartTime
	})

	return &Catalog{lessons: sorted}, nil
}

// Len returns the number of lessons in the catalog.
func (c *Catalog) Len() int {
	return len(c.lessons)
}

// Resolve returns the lesson whose window contains now, or failing that the
// earliest lesson still ahead of now, or nil if the catalog is exhausted.
// Pure: identical inputs yield identical output; callers re-invoke per
// action instead of caching across actions.
func (c *Catalog) Resolve(now time.Time) *model.LessonRecord {
	if current := c.Current(now); current != nil {
		return current
	}

	today := now.Format("2006-01-02")
	for i := range c.lessons {
		l := &c.lessons[i]
		if l.Date < today {
			continue
		}
		if l.Date > today {
			return l
		}
		start, _, err := l.Window(now.Location())
		if err == nil && start.After(now) {
			return l
		}
	}
	return nil
}

// Current returns the lesson whose window contains now, or nil. Unlike
// Resolve it never falls forward to an upcoming lesson, so callers that
// gate on an active lesson use this.
func (c *Catalog) Current(now time.Time) *model.LessonRecord {
	today := now.Format("2006-01-02")
	for i := range c.lessons {
		l := &c.lessons[i]
		if l.Date == today && l.Contains(now) {
			return l
		}
	}
	return nil
}
