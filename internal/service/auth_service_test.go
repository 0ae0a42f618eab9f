package service

import (
	"errors"
	"testing"
	"time"

	"smartedu_backend/internal/config"
	"smartedu_backend/internal/model"
	"smartedu_backend/internal/repository"
	"smartedu_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret-that-is-long-enough!",
			ExpireTime: time.Hour,
		},
	}
}

func seedUser(t *testing.T, db *gorm.DB, schoolID, email, password string, role model.UserRole, disabled bool) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing: %v", err)
	}
	user := &model.User{
		SchoolID: schoolID,
		Name:     "Test User",
		Email:    email,
		Password: string(hashed),
		Role:     role,
		Disabled: disabled,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}

func TestLoginRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), testConfig(), testLogger())

	seedUser(t, db, "school-1", "teacher@school.test", "correct-horse", model.Teacher, false)

	resp, err := svc.Login(&LoginRequest{Email: "teacher@school.test", Password: "correct-horse"}, model.Teacher)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}

	claims, err := svc.VerifyToken(resp.Token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Role != model.Teacher || claims.SchoolID != "school-1" {
		t.Errorf("claims = role %q school %q", claims.Role, claims.SchoolID)
	}
}

func TestLoginIsRoleScoped(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), testConfig(), testLogger())

	seedUser(t, db, "school-1", "teacher@school.test", "correct-horse", model.Teacher, false)

	// A teacher account cannot use the student login, and the error is the
	// same one a wrong password produces.
	_, err := svc.Login(&LoginRequest{Email: "teacher@school.test", Password: "correct-horse"}, model.Student)
	if !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("wrong-role login: got %v", err)
	}

	_, err = svc.Login(&LoginRequest{Email: "teacher@school.test", Password: "wrong"}, model.Teacher)
	if !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("wrong-password login: got %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), testConfig(), testLogger())

	seedUser(t, db, "school-1", "gone@school.test", "correct-horse", model.Student, true)

	_, err := svc.Login(&LoginRequest{Email: "gone@school.test", Password: "correct-horse"}, model.Student)
	if !errors.Is(err, util.ErrAccountDisabled) {
		t.Fatalf("disabled login: got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), testConfig(), testLogger())

	user := seedUser(t, db, "school-1", "student@school.test", "old-password", model.Student, false)
	claims := &util.Claims{UserID: user.ID, Role: model.Student, SchoolID: "school-1"}

	err := svc.ChangePassword(claims, &ChangePasswordRequest{OldPassword: "wrong", NewPassword: "new-password-1"})
	if !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("wrong old password: got %v", err)
	}

	if err := svc.ChangePassword(claims, &ChangePasswordRequest{OldPassword: "old-password", NewPassword: "new-password-1"}); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, err := svc.Login(&LoginRequest{Email: "student@school.test", Password: "new-password-1"}, model.Student); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := svc.Login(&LoginRequest{Email: "student@school.test", Password: "old-password"}, model.Student); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}
}

func TestCreateUserRoster(t *testing.T) {
	db := newTestDB(t)
	userSvc := NewUserService(repository.NewUserRepository(db), testLogger())
	principal := &util.Claims{UserID: "p1", Role: model.Principal, SchoolID: "school-1"}

	created, err := userSvc.CreateUser(principal, &CreateUserRequest{
		Name:     "New Student",
		Email:    "new@school.test",
		Password: "long-enough-pass",
		Role:     model.Student,
		Class:    "10A",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.SchoolID != "school-1" {
		t.Errorf("user created outside the principal's school: %q", created.SchoolID)
	}

	_, err = userSvc.CreateUser(principal, &CreateUserRequest{
		Name:     "Duplicate",
		Email:    "new@school.test",
		Password: "long-enough-pass",
		Role:     model.Student,
	})
	if !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("duplicate email: got %v", err)
	}

	// Privileged roles cannot be minted through the roster endpoint.
	_, err = userSvc.CreateUser(principal, &CreateUserRequest{
		Name:     "Sneaky",
		Email:    "admin2@school.test",
		Password: "long-enough-pass",
		Role:     model.Superadmin,
	})
	if _, ok := util.AsValidationError(err); !ok {
		t.Fatalf("expected validation error for privileged role, got %v", err)
	}
}
