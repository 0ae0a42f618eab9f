package model

import (
	"time"
)

type UserRole string

const (
	Student    UserRole = "student"
	Teacher    UserRole = "teacher"
	Principal  UserRole = "principal"
	Superadmin UserRole = "superadmin"
)

// swagger:model User
type User struct {
	UUIDBase
	SchoolID  string    `gorm:"size:64;index;uniqueIndex:idx_users_school_email" json:"school_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;not null;uniqueIndex:idx_users_school_email" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"size:20;default:'student';index" json:"role"`
	Class     string    `gorm:"size:50" json:"class,omitempty"`   // students
	Subject   string    `gorm:"size:100" json:"subject,omitempty"` // teachers
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `json:"last_login"`
}

func (User) TableName() string {
	return "users"
}
