package service

import (
	"strings"

	"smartedu_backend/internal/model"
	"smartedu_backend/internal/repository"
	"smartedu_backend/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Logger   *zap.Logger
}

func NewUserService(userRepo *repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{UserRepo: userRepo, Logger: logger}
}

// CreateUserRequest registers a teacher or student in the caller's school.
type CreateUserRequest struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Role     model.UserRole `json:"role"`
	Class    string         `json:"class"`
	Subject  string         `json:"subject"`
}

// CreateUser adds a roster entry. Principals can create teachers and
// students; emails are unique per school.
func (s *UserService) CreateUser(claims *util.Claims, req *CreateUserRequest) (*model.User, error) {
	var missing []string
	if strings.TrimSpace(req.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if len(req.Password) < 8 {
		missing = append(missing, "password")
	}
	if req.Role != model.Teacher && req.Role != model.Student {
		missing = append(missing, "role")
	}
	if len(missing) > 0 {
		return nil, util.NewValidationError(missing...)
	}

	exists, err := s.UserRepo.EmailExists(claims.SchoolID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrEmailRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		SchoolID: claims.SchoolID,
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
		Class:    req.Class,
		Subject:  req.Subject,
	}

	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	s.Logger.Info("user created",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.String("school_id", claims.SchoolID))

	return user, nil
}

func (s *UserService) ListUsers(claims *util.Claims, role model.UserRole, class string) ([]model.User, error) {
	return s.UserRepo.ListBySchool(claims.SchoolID, role, class)
}

func (s *UserService) SetDisabled(claims *util.Claims, userID string, disabled bool) error {
	affected, err := s.UserRepo.SetDisabled(userID, claims.SchoolID, disabled)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrNotFound
	}
	return nil
}
