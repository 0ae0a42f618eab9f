package service

import (
	"time"

	"smartedu_backend/internal/model"
	"smartedu_backend/internal/repository"
	"smartedu_backend/internal/util"

	"go.uber.org/zap"
)

type AttemptService struct {
	AttemptRepo *repository.AttemptRepository
	QuizRepo    *repository.QuizRepository
	AttemptTTL  time.Duration
	Logger      *zap.Logger
}

func NewAttemptService(attemptRepo *repository.AttemptRepository, quizRepo *repository.QuizRepository, attemptTTL time.Duration, logger *zap.Logger) *AttemptService {
	return &AttemptService{
		AttemptRepo: attemptRepo,
		QuizRepo:    quizRepo,
		AttemptTTL:  attemptTTL,
		Logger:      logger,
	}
}

// SaveProgressRequest is a checkpoint of answers-so-far.
type SaveProgressRequest struct {
	QuizID          string            `json:"quiz_id"`
	Answers         map[string]string `json:"answers"`
	CurrentQuestion int               `json:"current_question"`
	TimeSpent       int               `json:"time_spent"`
}

// SaveProgress upserts the student's single active attempt. The first save
// creates the row and fixes its expiry; later saves overwrite answers but
// never move the deadline. A save after expiry starts a fresh attempt.
func (s *AttemptService) SaveProgress(claims *util.Claims, req *SaveProgressRequest) (*model.QuizAttempt, error) {
	if req.QuizID == "" {
		return nil, util.NewValidationError("quiz_id")
	}

	quiz, err := s.QuizRepo.FindByID(req.QuizID, claims.SchoolID)
	if err != nil {
		return nil, util.ErrNotFound
	}
	if quiz.Status != model.QuizPublished {
		return nil, util.ErrQuizUnavailable
	}

	now := time.Now()
	attempt, err := s.AttemptRepo.FindActive(req.QuizID, claims.UserID, now)
	if err != nil {
		return nil, err
	}

	if attempt == nil {
		attempt = &model.QuizAttempt{
			SchoolID:        claims.SchoolID,
			QuizID:          req.QuizID,
			StudentID:       claims.UserID,
			StudentEmail:    claims.Email,
			Answers:         req.Answers,
			CurrentQuestion: req.CurrentQuestion,
			TimeSpent:       req.TimeSpent,
			ExpiresAt:       now.Add(s.AttemptTTL),
		}
		if err := s.AttemptRepo.Create(attempt); err != nil {
			return nil, err
		}
		s.Logger.Info("attempt started",
			zap.String("quiz_id", req.QuizID),
			zap.String("student_id", claims.UserID))
		return attempt, nil
	}

	attempt.Answers = req.Answers
	attempt.CurrentQuestion = req.CurrentQuestion
	attempt.TimeSpent = req.TimeSpent
	if err := s.AttemptRepo.Update(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// GetActive returns the resumable attempt for a quiz, or nil when there is
// none. Expired and submitted attempts count as none.
func (s *AttemptService) GetActive(claims *util.Claims, quizID string) (*model.QuizAttempt, error) {
	return s.AttemptRepo.FindActive(quizID, claims.UserID, time.Now())
}
