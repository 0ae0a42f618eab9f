package service

import (
	"testing"
	"time"

	"smartedu_backend/internal/model"
	"smartedu_backend/internal/repository"
	"smartedu_backend/internal/util"

	"gorm.io/gorm"
)

func newCalendarService(db *gorm.DB) *CalendarService {
	return NewCalendarService(repository.NewCalendarRepository(db), testLogger())
}

func TestCreateEventValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newCalendarService(db)
	teacher := teacherClaims("school-1", "t1")

	_, err := svc.CreateEvent(teacher, &CreateEventRequest{})
	ve, ok := util.AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(ve.Fields) != 2 {
		t.Errorf("missing fields = %v, want title and start_time", ve.Fields)
	}

	// Class-targeted events need a class.
	_, err = svc.CreateEvent(teacher, &CreateEventRequest{
		Title:     "Class test",
		StartTime: time.Now(),
		Audience:  model.AudienceClass,
	})
	if _, ok := util.AsValidationError(err); !ok {
		t.Fatalf("class audience without class: got %v", err)
	}
}

func TestListEventsFiltersByAudience(t *testing.T) {
	db := newTestDB(t)
	svc := newCalendarService(db)
	teacher := teacherClaims("school-1", "t1")

	now := time.Now()
	seed := func(title, audience, class string) {
		t.Helper()
		if _, err := svc.CreateEvent(teacher, &CreateEventRequest{
			Title:     title,
			Audience:  audience,
			Class:     class,
			StartTime: now.Add(time.Hour),
		}); err != nil {
			t.Fatalf("seeding %q: %v", title, err)
		}
	}
	seed("Assembly", model.AudienceAll, "")
	seed("Staff meeting", model.AudienceTeachers, "")
	seed("10A field trip", model.AudienceClass, "10A")

	from, to := now, now.AddDate(0, 0, 7)

	forStudent, err := svc.ListEvents(studentClaims("school-1", "s1", "10A"), from, to)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(forStudent) != 2 {
		t.Errorf("10A student sees %d events, want 2", len(forStudent))
	}

	otherClass, err := svc.ListEvents(studentClaims("school-1", "s2", "10B"), from, to)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(otherClass) != 1 {
		t.Errorf("10B student sees %d events, want 1", len(otherClass))
	}

	forTeacher, err := svc.ListEvents(teacher, from, to)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(forTeacher) != 3 {
		t.Errorf("teacher sees %d events, want 3", len(forTeacher))
	}
}

func TestUpcomingEventsLimit(t *testing.T) {
	db := newTestDB(t)
	svc := newCalendarService(db)
	teacher := teacherClaims("school-1", "t1")

	now := time.Now()
	for i := 0; i < 4; i++ {
		if _, err := svc.CreateEvent(teacher, &CreateEventRequest{
			Title:     "Event",
			StartTime: now.Add(time.Duration(i+1) * time.Hour),
		}); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}
	// Outside the one-month upcoming window.
	if _, err := svc.CreateEvent(teacher, &CreateEventRequest{
		Title:     "Far away",
		StartTime: now.AddDate(0, 2, 0),
	}); err != nil {
		t.Fatalf("seeding: %v", err)
	}

	events, err := svc.UpcomingEvents(teacher, 3)
	if err != nil {
		t.Fatalf("UpcomingEvents: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("limit ignored: got %d events", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].StartTime.Before(events[i-1].StartTime) {
			t.Error("upcoming events must be ordered soonest first")
		}
	}
}

func TestEventStats(t *testing.T) {
	db := newTestDB(t)
	svc := newCalendarService(db)
	teacher := teacherClaims("school-1", "t1")

	now := time.Now()
	for _, et := range []string{"exam", "exam", "holiday"} {
		if _, err := svc.CreateEvent(teacher, &CreateEventRequest{
			Title:     "E",
			EventType: et,
			StartTime: now,
		}); err != nil {
			t.Fatalf("seeding: %v", err)
		}
	}

	stats, err := svc.EventStats(teacher)
	if err != nil {
		t.Fatalf("EventStats: %v", err)
	}
	counts := map[string]int64{}
	for _, row := range stats {
		counts[row.EventType] = row.Count
	}
	if counts["exam"] != 2 || counts["holiday"] != 1 {
		t.Errorf("stats = %v", counts)
	}
}
