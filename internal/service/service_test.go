package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"smartedu_backend/internal/model"
	"smartedu_backend/internal/repository"
	"smartedu_backend/internal/util"
	"smartedu_backend/pkg/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a named in-memory SQLite database. The shared cache keeps
// every pooled connection on the same database; the name keeps tests apart.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return db
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func teacherClaims(schoolID, userID string) *util.Claims {
	return &util.Claims{
		UserID:   userID,
		Role:     model.Teacher,
		Email:    userID + "@school.test",
		Name:     "Teacher " + userID,
		SchoolID: schoolID,
	}
}

func studentClaims(schoolID, userID, class string) *util.Claims {
	return &util.Claims{
		UserID:   userID,
		Role:     model.Student,
		Email:    userID + "@school.test",
		Name:     "Student " + userID,
		SchoolID: schoolID,
		Class:    class,
	}
}

func newQuestionService(db *gorm.DB) *QuestionService {
	return NewQuestionService(repository.NewQuestionRepository(db), testLogger())
}

func newQuizService(db *gorm.DB, rdb *redis.Client) *QuizService {
	return NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewQuestionRepository(db),
		rdb,
		10*time.Minute,
		testLogger(),
	)
}

func newAttemptService(db *gorm.DB, ttl time.Duration) *AttemptService {
	return NewAttemptService(
		repository.NewAttemptRepository(db),
		repository.NewQuizRepository(db),
		ttl,
		testLogger(),
	)
}

func newGradingService(db *gorm.DB) *GradingService {
	return NewGradingService(
		repository.NewQuizRepository(db),
		repository.NewResultRepository(db),
		repository.NewAttemptRepository(db),
		testLogger(),
	)
}

func newResultService(db *gorm.DB) *ResultService {
	return NewResultService(repository.NewResultRepository(db), testLogger())
}
