package repository

import (
	"time"

	"smartedu_backend/internal/model"

	"gorm.io/gorm"
)

type CalendarRepository struct {
	DB *gorm.DB
}

func NewCalendarRepository(db *gorm.DB) *CalendarRepository {
	return &CalendarRepository{DB: db}
}

func (r *CalendarRepository) Create(event *model.CalendarEvent) error {
	return r.DB.Create(event).Error
}

// ListRange returns the school's events that overlap [from, to).
func (r *CalendarRepository) ListRange(schoolID string, from, to time.Time) ([]model.CalendarEvent, error) {
	var events []model.CalendarEvent
	err := r.DB.Where("school_id = ? AND start_time < ? AND end_time >= ?", schoolID, to, from).
		Order("start_time asc").
		Find(&events).Error
	return events, err
}

type EventTypeCount struct {
	EventType string `json:"event_type"`
	Count     int64  `json:"count"`
}

func (r *CalendarRepository) CountByType(schoolID string) ([]EventTypeCount, error) {
	var rows []EventTypeCount
	err := r.DB.Model(&model.CalendarEvent{}).
		Select("event_type, COUNT(*) AS count").
		Where("school_id = ?", schoolID).
		Group("event_type").
		Scan(&rows).Error
	return rows, err
}

func (r *CalendarRepository) Update(event *model.CalendarEvent) error {
	return r.DB.Save(event).Error
}

func (r *CalendarRepository) Delete(id, schoolID, createdBy string) (int64, error) {
	res := r.DB.Where("id = ? AND school_id = ? AND created_by = ?", id, schoolID, createdBy).
		Delete(&model.CalendarEvent{})
	return res.RowsAffected, res.Error
}

func (r *CalendarRepository) FindByID(id, schoolID string) (*model.CalendarEvent, error) {
	var event model.CalendarEvent
	err := r.DB.Where("id = ? AND school_id = ?", id, schoolID).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}
