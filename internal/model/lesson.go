package model

import (
	"fmt"
	"time"
)

// LessonRecord is one entry of the lesson catalog. The catalog is loaded once
// at startup and records are read-only afterwards.
type LessonRecord struct {
	Date       string `json:"date"`       // local date, YYYY-MM-DD
	StartTime  string `json:"start_time"` // local wall clock, HH:MM
	EndTime    string `json:"end_time"`   // local wall clock, HH:MM
	Topic      string `json:"topic"`
	Assignment string `json:"assignment"`
}

const (
	lessonDateLayout = "2006-01-02"
	lessonTimeLayout = "2006-01-02 15:04"
)

// Window returns the concrete [start, end] instants of the lesson in the
// given location.
func (l *LessonRecord) Window(loc *time.Location) (start, end time.Time, err error) {
	start, err = time.ParseInLocation(lessonTimeLayout, l.Date+" "+l.StartTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse lesson start: %w", err)
	}
	end, err = time.ParseInLocation(lessonTimeLayout, l.Date+" "+l.EndTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse lesson end: %w", err)
	}
	return start, end, nil
}

// Contains reports whether now falls inside the lesson window (inclusive on
// both ends).
func (l *LessonRecord) Contains(now time.Time) bool {
	start, end, err := l.Window(now.Location())
	if err != nil {
		return false
	}
	return !now.Before(start) && !now.After(end)
}
