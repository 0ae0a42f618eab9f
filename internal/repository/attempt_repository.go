package repository

import (
	"errors"
	"time"

	"smartedu_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// FindActive returns the single unsubmitted, unexpired attempt for this
// student on this quiz, or nil when none exists. Expired rows are left in
// place; they simply stop matching.
func (r *AttemptRepository) FindActive(quizID, studentID string, now time.Time) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.Where("quiz_id = ? AND student_id = ? AND submitted = ? AND expires_at > ?",
		quizID, studentID, false, now).
		Order("created_at desc").
		First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

// Update overwrites the checkpoint fields. ExpiresAt is deliberately not in
// the column list: the window is fixed at creation.
func (r *AttemptRepository) Update(attempt *model.QuizAttempt) error {
	return r.DB.Model(attempt).
		Select("answers", "current_question", "time_spent").
		Updates(attempt).Error
}

func (r *AttemptRepository) MarkSubmitted(id string) error {
	return r.DB.Model(&model.QuizAttempt{}).Where("id = ?", id).Update("submitted", true).Error
}

func (r *AttemptRepository) CountForStudent(quizID, studentID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		Count(&count).Error
	return count, err
}
