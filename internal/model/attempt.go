package model

import "time"

// QuizAttempt is a resumable checkpoint of a student's in-progress answers.
// At most one unsubmitted, unexpired attempt exists per (quiz, student); the
// expiry window is fixed when the attempt is first created and never extended.
// Expired attempts are treated as absent on read, not actively purged.
type QuizAttempt struct {
	UUIDBase
	SchoolID        string            `gorm:"size:64;index" json:"school_id"`
	QuizID          string            `gorm:"size:36;index:idx_attempt_quiz_student" json:"quiz_id"`
	StudentID       string            `gorm:"size:36;index:idx_attempt_quiz_student" json:"student_id"`
	StudentEmail    string            `gorm:"size:100;index" json:"student_email"`
	Answers         map[string]string `gorm:"serializer:json" json:"answers"`
	CurrentQuestion int               `gorm:"default:0" json:"current_question"`
	TimeSpent       int               `gorm:"default:0" json:"time_spent"` // seconds
	Submitted       bool              `gorm:"default:false" json:"submitted"`
	ExpiresAt       time.Time         `json:"expires_at"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// Active reports whether the attempt can still be resumed.
func (a *QuizAttempt) Active(now time.Time) bool {
	return !a.Submitted && now.Before(a.ExpiresAt)
}
