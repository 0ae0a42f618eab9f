package service

import (
	"smartedu_backend/internal/model"
	"smartedu_backend/internal/repository"
	"smartedu_backend/internal/util"

	"go.uber.org/zap"
)

type ResultService struct {
	ResultRepo *repository.ResultRepository
	Logger     *zap.Logger
}

func NewResultService(resultRepo *repository.ResultRepository, logger *zap.Logger) *ResultService {
	return &ResultService{ResultRepo: resultRepo, Logger: logger}
}

func (s *ResultService) ListForTeacher(claims *util.Claims, f repository.ResultFilter) ([]model.QuizResult, int64, error) {
	return s.ResultRepo.List(claims.SchoolID, f)
}

func (s *ResultService) QuizAnalytics(claims *util.Claims, quizID string) ([]repository.QuizAnalyticsRow, error) {
	return s.ResultRepo.QuizAnalytics(claims.SchoolID, quizID)
}

func (s *ResultService) SubjectAnalytics(claims *util.Claims) ([]repository.SubjectAnalyticsRow, error) {
	return s.ResultRepo.SubjectAnalytics(claims.SchoolID)
}

// StudentHistory is a student's own results plus their improvement trend.
type StudentHistory struct {
	Results []model.QuizResult `json:"results"`
	Trend   float64            `json:"trend"`
}

// improvementTrend compares the mean percentage of the later half of a
// history against the earlier half. Fewer than two results yields zero.
func improvementTrend(results []model.QuizResult) float64 {
	if len(results) < 2 {
		return 0
	}
	mid := len(results) / 2
	earlier := results[:mid]
	later := results[mid:]

	mean := func(rs []model.QuizResult) float64 {
		sum := 0.0
		for _, r := range rs {
			sum += r.Percentage
		}
		return sum / float64(len(rs))
	}

	return mean(later) - mean(earlier)
}

// GetStudentHistory returns the caller's result history, oldest first,
// optionally filtered by subject.
func (s *ResultService) GetStudentHistory(claims *util.Claims, subject string) (*StudentHistory, error) {
	results, err := s.ResultRepo.ListByStudent(claims.SchoolID, claims.UserID, subject)
	if err != nil {
		return nil, err
	}
	return &StudentHistory{
		Results: results,
		Trend:   improvementTrend(results),
	}, nil
}
