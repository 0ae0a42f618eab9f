package repository

import (
	"time"

	"smartedu_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// Create inserts the quiz and its question snapshots in one transaction.
func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(quiz).Error
	})
}

func (r *QuizRepository) TitleExists(schoolID, teacherID, title string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).
		Where("school_id = ? AND teacher_id = ? AND title = ?", schoolID, teacherID, title).
		Count(&count).Error
	return count > 0, err
}

// FindByID loads a quiz with its questions in snapshot order, scoped to one
// school.
func (r *QuizRepository) FindByID(id, schoolID string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index asc")
	}).Where("id = ? AND school_id = ?", id, schoolID).First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// UpdateStatus changes draft/published state. The WHERE clause carries the
// owner and school, so a zero row count covers missing, foreign and
// unowned quizzes alike.
func (r *QuizRepository) UpdateStatus(id, teacherID, schoolID, status string, publishedAt *time.Time) (int64, error) {
	res := r.DB.Model(&model.Quiz{}).
		Where("id = ? AND teacher_id = ? AND school_id = ?", id, teacherID, schoolID).
		Updates(map[string]interface{}{
			"status":       status,
			"published_at": publishedAt,
		})
	return res.RowsAffected, res.Error
}

// Delete removes the quiz and its question snapshots for good. Graded
// results carry their own snapshot and survive.
func (r *QuizRepository) Delete(id, teacherID, schoolID string) (int64, error) {
	var affected int64
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Unscoped().
			Where("id = ? AND teacher_id = ? AND school_id = ?", id, teacherID, schoolID).
			Delete(&model.Quiz{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return nil
		}
		return tx.Unscoped().Where("quiz_id = ?", id).Delete(&model.QuizQuestion{}).Error
	})
	return affected, err
}

// QuizListRow is a quiz summary with its question count, for listings that
// should not load every snapshot.
type QuizListRow struct {
	model.Quiz
	QuestionCount int `json:"question_count"`
}

func (r *QuizRepository) ListForTeacher(teacherID, schoolID string) ([]QuizListRow, error) {
	var rows []QuizListRow
	err := r.DB.Table("quizzes q").
		Select("q.*, (SELECT COUNT(*) FROM quiz_questions qq WHERE qq.quiz_id = q.id AND qq.deleted_at IS NULL) as question_count").
		Where("q.teacher_id = ? AND q.school_id = ? AND q.deleted_at IS NULL", teacherID, schoolID).
		Order("q.created_at desc").
		Scan(&rows).Error
	return rows, err
}

// ListPublished returns the quizzes visible to students, optionally filtered
// by subject, class and a title/subject substring search.
func (r *QuizRepository) ListPublished(schoolID, subject, class, search string) ([]QuizListRow, error) {
	query := r.DB.Table("quizzes q").
		Select("q.*, (SELECT COUNT(*) FROM quiz_questions qq WHERE qq.quiz_id = q.id AND qq.deleted_at IS NULL) as question_count").
		Where("q.school_id = ? AND q.status = ? AND q.deleted_at IS NULL", schoolID, model.QuizPublished)

	if subject != "" {
		query = query.Where("q.subject = ?", subject)
	}
	if class != "" {
		query = query.Where("(q.class = ? OR q.class = '')", class)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("(q.title LIKE ? OR q.subject LIKE ?)", pattern, pattern)
	}

	var rows []QuizListRow
	err := query.Order("q.published_at desc").Scan(&rows).Error
	return rows, err
}
