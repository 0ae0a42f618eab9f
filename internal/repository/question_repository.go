package repository

import (
	"smartedu_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepository) FindByID(id, schoolID string) (*model.Question, error) {
	var q model.Question
	err := r.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Exists reports whether the bank already holds a question with the same
// prompt and subject in this school.
func (r *QuestionRepository) Exists(schoolID, questionText, subject string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).
		Where("school_id = ? AND question_text = ? AND subject = ?", schoolID, questionText, subject).
		Count(&count).Error
	return count > 0, err
}

// QuestionFilter narrows a bank listing. Zero values mean "no filter".
type QuestionFilter struct {
	Subject      string
	Topic        string
	Class        string
	QuestionType string
	Difficulty   string
	Search       string
	Page         int
	Limit        int
}

func (r *QuestionRepository) List(schoolID string, f QuestionFilter) ([]model.Question, int64, error) {
	query := r.DB.Model(&model.Question{}).Where("school_id = ?", schoolID)

	if f.Subject != "" {
		query = query.Where("subject = ?", f.Subject)
	}
	if f.Topic != "" {
		query = query.Where("topic = ?", f.Topic)
	}
	if f.Class != "" {
		query = query.Where("class = ?", f.Class)
	}
	if f.QuestionType != "" {
		query = query.Where("question_type = ?", f.QuestionType)
	}
	if f.Difficulty != "" {
		query = query.Where("difficulty = ?", f.Difficulty)
	}
	if f.Search != "" {
		// Tags are a serialized JSON array, so a substring match over the
		// column covers tag search.
		pattern := "%" + f.Search + "%"
		query = query.Where("(question_text LIKE ? OR topic LIKE ? OR tags LIKE ?)", pattern, pattern, pattern)
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

	var questions []model.Question
	err := query.Order("created_at desc").Find(&questions).Error
	return questions, total, err
}

func (r *QuestionRepository) FindByIDs(ids []string, schoolID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("id IN ? AND school_id = ?", ids, schoolID).Find(&questions).Error
	return questions, err
}

// DistinctValues returns the distinct non-empty values of one column,
// used to build the filter vocabulary.
func (r *QuestionRepository) DistinctValues(schoolID, column string) ([]string, error) {
	var values []string
	err := r.DB.Model(&model.Question{}).
		Where("school_id = ? AND "+column+" <> ''", schoolID).
		Distinct().
		Pluck(column, &values).Error
	return values, err
}

// AllTags loads every tag list in the school. Tags are stored as JSON
// arrays, so the union is computed in the service.
func (r *QuestionRepository) AllTags(schoolID string) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Select("tags").Where("school_id = ?", schoolID).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) Update(question *model.Question) error {
	return r.DB.Save(question).Error
}

func (r *QuestionRepository) Delete(id, schoolID, createdBy string) (int64, error) {
	res := r.DB.Where("id = ? AND school_id = ? AND created_by = ?", id, schoolID, createdBy).
		Delete(&model.Question{})
	return res.RowsAffected, res.Error
}
