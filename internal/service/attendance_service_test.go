package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRegisterOnTime(t *testing.T) {
	cat := catalogWith(t, "12:00", "13:00", "loops")
	gen := &fakeGenerator{}
	store := newFakeStore()
	svc := NewAttendanceService(cat, store, gen, nopLog())

	out, err := svc.Register(context.Background(), "u1", "Alice", noon.Add(5*time.Minute))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if out.Late || out.AlreadyRegistered {
		t.Fatalf("outcome = %+v, want on-time first registration", out)
	}
	if out.Record.ExtraAssignment != "" {
		t.Error("on-time registration must not carry an extra assignment")
	}
	if gen.taskCalls != 0 {
		t.Errorf("generator called %d times for an on-time registration", gen.taskCalls)
	}
	if store.putCalls != 1 {
		t.Errorf("putCalls = %d, want 1", store.putCalls)
	}
	if out.Record.Topic != "loops" || out.Record.StudentName != "Alice" {
		t.Errorf("record = %+v", out.Record)
	}
}

func TestRegisterLateBoundary(t *testing.T) {
	cases := []struct {
		name string
		at   time.Time
		late bool
	}{
		{"exactly at threshold", noon.Add(10 * time.Minute), false},
		{"one second past threshold", noon.Add(10*time.Minute + time.Second), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cat := catalogWith(t, "12:00", "13:00", "loops")
			gen := &fakeGenerator{}
			svc := NewAttendanceService(cat, newFakeStore(), gen, nopLog())

			out, err := svc.Register(context.Background(), "u1", "Alice", tc.at)
			if err != nil {
				t.Fatalf("Register: %v", err)
			}
			if out.Late != tc.late {
				t.Fatalf("Late = %v, want %v", out.Late, tc.late)
			}
			if tc.late && out.Record.ExtraAssignment == "" {
				t.Error("late registration must carry an extra assignment")
			}
			wantCalls := 0
			if tc.late {
				wantCalls = 1
			}
			if gen.taskCalls != wantCalls {
				t.Errorf("taskCalls = %d, want %d", gen.taskCalls, wantCalls)
			}
		})
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	cat := catalogWith(t, "12:00", "13:00", "loops")
	gen := &fakeGenerator{}
	store := newFakeStore()
	svc := NewAttendanceService(cat, store, gen, nopLog())
	ctx := context.Background()

	first, err := svc.Register(ctx, "u1", "Alice", noon.Add(15*time.Minute))
	if err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if !first.Late {
		t.Fatal("first registration at +15m should be late")
	}

	// Much later repeat: still the same record, no second generation, no
	// second persist.
	second, err := svc.Register(ctx, "u1", "Alice", noon.Add(40*time.Minute))
	if err != nil {
		t.Fatalf("second Register: %v", err)
	}
	if !second.AlreadyRegistered || !second.Late {
		t.Fatalf("second outcome = %+v", second)
	}
	if second.Record.ExtraAssignment != first.Record.ExtraAssignment {
		t.Error("repeat registration changed the stored record")
	}
	if gen.taskCalls != 1 {
		t.Errorf("taskCalls = %d, want exactly 1", gen.taskCalls)
	}
	if store.putCalls != 1 {
		t.Errorf("putCalls = %d, want exactly 1", store.putCalls)
	}
}

func TestRegisterOutsideLessonWindow(t *testing.T) {
	cat := catalogWith(t, "14:00", "15:00", "loops")
	svc := NewAttendanceService(cat, newFakeStore(), &fakeGenerator{}, nopLog())

	_, err := svc.Register(context.Background(), "u1", "Alice", noon)
	if !errors.Is(err, ErrNoActiveLesson) {
		t.Fatalf("Register = %v, want ErrNoActiveLesson", err)
	}
}

func TestRegisterPersistFailureSurfaces(t *testing.T) {
	cat := catalogWith(t, "12:00", "13:00", "loops")
	store := newFakeStore()
	store.putErr = errStoreDown
	svc := NewAttendanceService(cat, store, &fakeGenerator{}, nopLog())

	_, err := svc.Register(context.Background(), "u1", "Alice", noon.Add(time.Minute))
	if !errors.Is(err, ErrRegistrationPersist) {
		t.Fatalf("Register = %v, want ErrRegistrationPersist", err)
	}
}

func TestRegisterLateUsesFallbackWhenGeneratorFails(t *testing.T) {
	cat := catalogWith(t, "12:00", "13:00", "loops")
	gen := &fakeGenerator{taskErr: errors.New("llm down")}
	svc := NewAttendanceService(cat, newFakeStore(), gen, nopLog())

	out, err := svc.Register(context.Background(), "u1", "Alice", noon.Add(20*time.Minute))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !out.Late || out.Record.ExtraAssignment == "" {
		t.Fatalf("outcome = %+v, want late with fallback extra assignment", out)
	}
}
