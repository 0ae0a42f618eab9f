package repository

import (
	"time"

	"smartedu_backend/internal/model"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

func (r *ResultRepository) Create(result *model.QuizResult) error {
	return r.DB.Create(result).Error
}

// ResultFilter narrows a teacher's result listing. From and To bound the
// submission time as [From, To); zero times mean unbounded.
type ResultFilter struct {
	QuizID       string
	Subject      string
	Class        string
	StudentEmail string
	From         time.Time
	To           time.Time
	Page         int
	Limit        int
}

func (r *ResultRepository) List(schoolID string, f ResultFilter) ([]model.QuizResult, int64, error) {
	query := r.DB.Model(&model.QuizResult{}).Where("school_id = ?", schoolID)

	if f.QuizID != "" {
		query = query.Where("quiz_id = ?", f.QuizID)
	}
	if f.Subject != "" {
		query = query.Where("quiz_subject = ?", f.Subject)
	}
	if f.Class != "" {
		query = query.Where("student_class = ?", f.Class)
	}
	if f.StudentEmail != "" {
		query = query.Where("student_email = ?", f.StudentEmail)
	}
	if !f.From.IsZero() {
		query = query.Where("submitted_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		query = query.Where("submitted_at < ?", f.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * f.Limit).Limit(f.Limit)
	}

	var results []model.QuizResult
	err := query.Order("submitted_at desc").Find(&results).Error
	return results, total, err
}

// ListByStudent returns one student's history oldest first, so trend math
// reads it in submission order.
func (r *ResultRepository) ListByStudent(schoolID, studentID, subject string) ([]model.QuizResult, error) {
	query := r.DB.Where("school_id = ? AND student_id = ?", schoolID, studentID)
	if subject != "" {
		query = query.Where("quiz_subject = ?", subject)
	}
	var results []model.QuizResult
	err := query.Order("submitted_at asc").Find(&results).Error
	return results, err
}

// QuizAnalyticsRow aggregates the submissions of one quiz. Students counts
// distinct people, not submissions, so retakes do not inflate it.
type QuizAnalyticsRow struct {
	QuizID        string  `json:"quiz_id"`
	QuizTitle     string  `json:"quiz_title"`
	QuizSubject   string  `json:"quiz_subject"`
	Submissions   int64   `json:"submissions"`
	Students      int64   `json:"students"`
	AvgPercentage float64 `json:"avg_percentage"`
	MaxPercentage float64 `json:"max_percentage"`
	MinPercentage float64 `json:"min_percentage"`
}

func (r *ResultRepository) QuizAnalytics(schoolID, teacherQuizID string) ([]QuizAnalyticsRow, error) {
	query := r.DB.Table("quiz_results").
		Select("quiz_id, quiz_title, quiz_subject, " +
			"COUNT(*) as submissions, " +
			"COUNT(DISTINCT student_email) as students, " +
			"AVG(percentage) as avg_percentage, " +
			"MAX(percentage) as max_percentage, " +
			"MIN(percentage) as min_percentage").
		Where("school_id = ? AND deleted_at IS NULL", schoolID)

	if teacherQuizID != "" {
		query = query.Where("quiz_id = ?", teacherQuizID)
	}

	var rows []QuizAnalyticsRow
	err := query.Group("quiz_id, quiz_title, quiz_subject").Scan(&rows).Error
	return rows, err
}

// SubjectAnalyticsRow aggregates across every quiz of one subject.
type SubjectAnalyticsRow struct {
	Subject       string  `json:"subject"`
	Submissions   int64   `json:"submissions"`
	Students      int64   `json:"students"`
	AvgPercentage float64 `json:"avg_percentage"`
	MaxPercentage float64 `json:"max_percentage"`
	MinPercentage float64 `json:"min_percentage"`
}

func (r *ResultRepository) SubjectAnalytics(schoolID string) ([]SubjectAnalyticsRow, error) {
	var rows []SubjectAnalyticsRow
	err := r.DB.Table("quiz_results").
		Select("quiz_subject as subject, " +
			"COUNT(*) as submissions, " +
			"COUNT(DISTINCT student_email) as students, " +
			"AVG(percentage) as avg_percentage, " +
			"MAX(percentage) as max_percentage, " +
			"MIN(percentage) as min_percentage").
		Where("school_id = ? AND deleted_at IS NULL", schoolID).
		Group("quiz_subject").
		Scan(&rows).Error
	return rows, err
}
