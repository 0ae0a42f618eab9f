package model

import "time"

const (
	QuizDraft     = "draft"
	QuizPublished = "published"
)

// Quiz is an ordered collection of question snapshots assembled by a teacher.
// The question list and total_points are fixed at creation; only status (and
// published_at) change afterwards.
// swagger:model Quiz
type Quiz struct {
	UUIDBase
	SchoolID    string         `gorm:"size:64;index;not null" json:"school_id"`
	TeacherID   string         `gorm:"size:36;index;not null" json:"teacher_id"`
	TeacherName string         `gorm:"size:100" json:"teacher_name"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Subject     string         `gorm:"size:100;not null" json:"subject"`
	Description string         `gorm:"type:text" json:"description"`
	Class       string         `gorm:"size:50" json:"class"`
	TimeLimit   int            `gorm:"default:60" json:"time_limit"` // minutes
	Status      string         `gorm:"size:20;default:'draft';index" json:"status"`
	TotalPoints int            `gorm:"default:0" json:"total_points"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	Questions   []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion is an embedded snapshot of a question at quiz-creation time.
// It is a copy, not a reference: later edits to the question bank never reach
// quizzes that were already created. QuestionBankID is a back-reference only.
type QuizQuestion struct {
	UUIDBase
	QuizID         string   `gorm:"size:36;index;not null" json:"-"`
	QuestionBankID string   `gorm:"size:36" json:"question_bank_id,omitempty"`
	QuestionText   string   `gorm:"type:text;not null" json:"question_text"`
	QuestionType   string   `gorm:"size:32;not null" json:"question_type"`
	Options        []string `gorm:"serializer:json" json:"options,omitempty"`
	CorrectAnswer  string   `gorm:"type:text" json:"correct_answer"`
	Explanation    string   `gorm:"type:text" json:"explanation,omitempty"`
	Points         int      `gorm:"default:1" json:"points"`
	Difficulty     string   `gorm:"size:20;default:'medium'" json:"difficulty"`
	Subject        string   `gorm:"size:100" json:"subject"`
	Topic          string   `gorm:"size:100" json:"topic"`
	Class          string   `gorm:"size:50" json:"class"`
	TimeEstimate   int      `gorm:"default:2" json:"time_estimate"`
	Tags           []string `gorm:"serializer:json" json:"tags,omitempty"`
	OrderIndex     int      `gorm:"default:0" json:"order_index"` // 1-based input position
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
