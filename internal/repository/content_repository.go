package repository

import (
	"smartedu_backend/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) Create(item *model.ContentItem) error {
	return r.DB.Create(item).Error
}

func (r *ContentRepository) FindByID(id, schoolID string) (*model.ContentItem, error) {
	var item model.ContentItem
	err := r.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ContentRepository) List(schoolID, subject, class string, page, limit int) ([]model.ContentItem, int64, error) {
	query := r.DB.Model(&model.ContentItem{}).Where("school_id = ?", schoolID)
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if class != "" {
		query = query.Where("(class = ? OR class = '')", class)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	var items []model.ContentItem
	err := query.Order("created_at desc").Find(&items).Error
	return items, total, err
}

func (r *ContentRepository) IncrementLikes(id, schoolID string) (int64, error) {
	res := r.DB.Model(&model.ContentItem{}).
		Where("id = ? AND school_id = ?", id, schoolID).
		UpdateColumn("likes", gorm.Expr("likes + 1"))
	return res.RowsAffected, res.Error
}

func (r *ContentRepository) Delete(id, schoolID, uploadedBy string) (int64, error) {
	res := r.DB.Where("id = ? AND school_id = ? AND uploaded_by = ?", id, schoolID, uploadedBy).
		Delete(&model.ContentItem{})
	return res.RowsAffected, res.Error
}
