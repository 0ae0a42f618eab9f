package repository

import (
	"time"

	"smartedu_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmailAndRole looks up a login candidate. Role is part of the lookup
// because each login endpoint serves exactly one role.
func (r *UserRepository) FindByEmailAndRole(email string, role model.UserRole) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ? AND role = ?", email, role).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) EmailExists(schoolID, email string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).
		Where("school_id = ? AND email = ?", schoolID, email).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ListBySchool(schoolID string, role model.UserRole, class string) ([]model.User, error) {
	query := r.DB.Where("school_id = ?", schoolID)
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if class != "" {
		query = query.Where("class = ?", class)
	}
	var users []model.User
	err := query.Order("name asc").Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdatePassword(id, hashed string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Update("password", hashed).Error
}

// SetDisabled flips the account flag, scoped to the caller's school so one
// tenant can never touch another's roster.
func (r *UserRepository) SetDisabled(id, schoolID string, disabled bool) (int64, error) {
	res := r.DB.Model(&model.User{}).
		Where("id = ? AND school_id = ?", id, schoolID).
		Update("disabled", disabled)
	return res.RowsAffected, res.Error
}

func (r *UserRepository) UpdateLastSeen(id string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Update("last_login", time.Now()).Error
}
