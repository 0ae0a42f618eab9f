package model

import "time"

const (
	AudienceAll      = "all"
	AudienceTeachers = "teachers"
	AudienceStudents = "students"
	AudienceClass    = "class"
)

// CalendarEvent is a school-wide or class-scoped calendar entry created by a
// teacher or principal. When Audience is "class", Class names the target.
// swagger:model CalendarEvent
type CalendarEvent struct {
	UUIDBase
	SchoolID    string    `gorm:"size:64;index;not null" json:"school_id"`
	CreatedBy   string    `gorm:"size:36;index" json:"created_by"`
	CreatorName string    `gorm:"size:100" json:"creator_name"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	EventType   string    `gorm:"size:32;default:'event'" json:"event_type"` // event, exam, holiday, meeting
	Audience    string    `gorm:"size:20;default:'all'" json:"audience"`
	Class       string    `gorm:"size:50" json:"class,omitempty"`
	StartTime   time.Time `gorm:"index" json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	AllDay      bool      `gorm:"default:false" json:"all_day"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}

// VisibleTo reports whether the event should appear in the calendar of a user
// with the given role and class.
func (e *CalendarEvent) VisibleTo(role UserRole, class string) bool {
	switch e.Audience {
	case AudienceTeachers:
		return role == Teacher || role == Principal
	case AudienceStudents:
		return role == Student
	case AudienceClass:
		return role != Student || e.Class == class
	default:
		return true
	}
}
