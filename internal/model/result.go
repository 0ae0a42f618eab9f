package model

import "time"

// QuestionResult is one row of a result's per-question breakdown. The
// explanation is included here because grading is complete and the answer key
// may be revealed.
type QuestionResult struct {
	QuestionID    string `json:"question_id"`
	QuestionText  string `json:"question_text"`
	QuestionType  string `json:"question_type"`
	StudentAnswer string `json:"student_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Points        int    `json:"points"`
	Score         int    `json:"score"`
	Explanation   string `json:"explanation,omitempty"`
}

// QuizResult is the immutable record of one graded submission. Quiz title and
// subject are denormalized so the record survives quiz edits or deletion, and
// scoring fields are never mutated after insert: a retake inserts a new row.
// swagger:model QuizResult
type QuizResult struct {
	UUIDBase
	SchoolID        string           `gorm:"size:64;index;not null" json:"school_id"`
	QuizID          string           `gorm:"size:36;index" json:"quiz_id"`
	QuizTitle       string           `gorm:"size:255" json:"quiz_title"`
	QuizSubject     string           `gorm:"size:100;index" json:"quiz_subject"`
	StudentID       string           `gorm:"size:36;index" json:"student_id"`
	StudentEmail    string           `gorm:"size:100;index" json:"student_email"`
	StudentName     string           `gorm:"size:100" json:"student_name"`
	StudentClass    string           `gorm:"size:50" json:"student_class"`
	TotalQuestions  int              `json:"total_questions"`
	CorrectAnswers  int              `json:"correct_answers"`
	TotalScore      int              `json:"total_score"`
	MaxScore        int              `json:"max_score"`
	Percentage      float64          `json:"percentage"`
	Grade           string           `gorm:"size:2" json:"grade"`
	QuestionResults []QuestionResult `gorm:"serializer:json" json:"question_results"`
	SubmittedAt     time.Time        `gorm:"index" json:"submitted_at"`
	TimeTaken       int              `json:"time_taken"` // seconds
	AttemptNumber   int              `gorm:"default:1" json:"attempt_number"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
