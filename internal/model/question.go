package model

const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionShortAnswer    = "short_answer"
	QuestionNumerical      = "numerical"
	QuestionTrueFalse      = "true_false"
)

// QuestionTypes lists the types the question bank accepts, in the order the
// filter UI presents them.
var QuestionTypes = []string{QuestionMultipleChoice, QuestionShortAnswer, QuestionNumerical, QuestionTrueFalse}

// Difficulties lists the accepted difficulty tags.
var Difficulties = []string{"easy", "medium", "hard"}

// Question is a reusable question-bank entry, scoped to one school.
// The (question_text, subject, school_id) triple is unique; the service layer
// enforces it before insert.
// swagger:model Question
type Question struct {
	UUIDBase
	SchoolID      string   `gorm:"size:64;index;not null" json:"school_id"`
	CreatedBy     string   `gorm:"size:36;index" json:"created_by"`
	QuestionText  string   `gorm:"type:text;not null" json:"question_text"`
	QuestionType  string   `gorm:"size:32;not null" json:"question_type"`
	Subject       string   `gorm:"size:100;not null" json:"subject"`
	Topic         string   `gorm:"size:100" json:"topic"`
	Class         string   `gorm:"size:50" json:"class"`
	Options       []string `gorm:"serializer:json" json:"options,omitempty"`
	CorrectAnswer string   `gorm:"type:text" json:"correct_answer"`
	Explanation   string   `gorm:"type:text" json:"explanation,omitempty"`
	Points        int      `gorm:"default:1" json:"points"`
	Difficulty    string   `gorm:"size:20;default:'medium'" json:"difficulty"`
	TimeEstimate  int      `gorm:"default:2" json:"time_estimate"` // minutes
	Tags          []string `gorm:"serializer:json" json:"tags,omitempty"`
	IsReusable    bool     `gorm:"default:true" json:"is_reusable"`
}

func (Question) TableName() string {
	return "question_bank"
}
