package service

import (
	"errors"
	"time"

	"smartedu_backend/internal/config"
	"smartedu_backend/internal/model"
	"smartedu_backend/internal/repository"
	"smartedu_backend/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Config   *config.Config
	Logger   *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config, logger *zap.Logger) *AuthService {
	return &AuthService{UserRepo: userRepo, Config: cfg, Logger: logger}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Login authenticates against exactly one role. Wrong-role, unknown and
// wrong-password logins all fail the same way so the response never reveals
// which part was wrong.
func (s *AuthService) Login(req *LoginRequest, role model.UserRole) (*LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, util.NewValidationError("email", "password")
	}

	user, err := s.UserRepo.FindByEmailAndRole(req.Email, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Disabled {
		return nil, util.ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	if err := s.UserRepo.UpdateLastSeen(user.ID); err != nil {
		s.Logger.Warn("updating last login failed", zap.Error(err))
	}
	user.LastLogin = time.Now()

	s.Logger.Info("user logged in",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))

	return &LoginResponse{Token: token, User: user}, nil
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (s *AuthService) ChangePassword(claims *util.Claims, req *ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return util.NewValidationError("old_password", "new_password")
	}
	if len(req.NewPassword) < 8 {
		return util.NewValidationError("new_password")
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return util.ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		return util.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.UserRepo.UpdatePassword(user.ID, string(hashed))
}

// VerifyToken re-parses a token and returns its claims, for session checks.
func (s *AuthService) VerifyToken(tokenString string) (*util.Claims, error) {
	claims, err := util.ParseJWT(tokenString, s.Config.JWT.Secret)
	if err != nil {
		return nil, util.ErrInvalidCredentials
	}
	return claims, nil
}
