package service

import (
	"math"
	"strings"
	"time"

	"smartedu_backend/internal/model"
	"smartedu_backend/internal/repository"
	"smartedu_backend/internal/util"
	"smartedu_backend/pkg/monitoring"

	"go.uber.org/zap"
)

type GradingService struct {
	QuizRepo    *repository.QuizRepository
	ResultRepo  *repository.ResultRepository
	AttemptRepo *repository.AttemptRepository
	Logger      *zap.Logger
}

func NewGradingService(quizRepo *repository.QuizRepository, resultRepo *repository.ResultRepository, attemptRepo *repository.AttemptRepository, logger *zap.Logger) *GradingService {
	return &GradingService{
		QuizRepo:    quizRepo,
		ResultRepo:  resultRepo,
		AttemptRepo: attemptRepo,
		Logger:      logger,
	}
}

// SubmitRequest carries a student's final answers, keyed by question ID.
type SubmitRequest struct {
	QuizID    string            `json:"quiz_id"`
	Answers   map[string]string `json:"answers"`
	TimeTaken int               `json:"time_taken"`
}

// answerMatches compares a student answer against the key. Multiple choice
// must match exactly; true/false ignores case; short answer and numerical
// ignore surrounding whitespace and case. A blank answer never matches.
func answerMatches(questionType, studentAnswer, correctAnswer string) bool {
	if studentAnswer == "" {
		return false
	}
	switch questionType {
	case model.QuestionMultipleChoice:
		return studentAnswer == correctAnswer
	case model.QuestionTrueFalse:
		return strings.EqualFold(studentAnswer, correctAnswer)
	default:
		return strings.EqualFold(strings.TrimSpace(studentAnswer), strings.TrimSpace(correctAnswer))
	}
}

// letterGrade bands a raw percentage. Banding happens before any rounding,
// so 89.999 is a B, not an A.
func letterGrade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Submit grades a submission against the quiz's snapshot answer key and
// stores an immutable result. Submitting twice produces two independent
// results with increasing attempt numbers.
func (s *GradingService) Submit(claims *util.Claims, req *SubmitRequest) (*model.QuizResult, error) {
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

	answers := req.Answers
	if answers == nil {
		answers = map[string]string{}
	}

	totalScore := 0
	maxScore := 0
	correctCount := 0
	breakdown := make([]model.QuestionResult, 0, len(quiz.Questions))

	for i, q := range quiz.Questions {
		qid := q.ID
		if qid == "" {
			qid = util.StableQuestionID(q.QuestionText, i, quiz.ID)
		}

		studentAnswer := answers[qid]
		correct := answerMatches(q.QuestionType, studentAnswer, q.CorrectAnswer)

		score := 0
		if correct {
			score = q.Points
			correctCount++
		}
		totalScore += score
		maxScore += q.Points

		breakdown = append(breakdown, model.QuestionResult{
			QuestionID:    qid,
			QuestionText:  q.QuestionText,
			QuestionType:  q.QuestionType,
			StudentAnswer: studentAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     correct,
			Points:        q.Points,
			Score:         score,
			Explanation:   q.Explanation,
		})
	}

	percentage := 0.0
	if maxScore > 0 {
		percentage = float64(totalScore) / float64(maxScore) * 100
	}
	grade := letterGrade(percentage)

	_, priorCount, err := s.ResultRepo.List(claims.SchoolID, repository.ResultFilter{
		QuizID:       quiz.ID,
		StudentEmail: claims.Email,
	})
	if err != nil {
		return nil, err
	}

	result := &model.QuizResult{
		SchoolID:        claims.SchoolID,
		QuizID:          quiz.ID,
		QuizTitle:       quiz.Title,
		QuizSubject:     quiz.Subject,
		StudentID:       claims.UserID,
		StudentEmail:    claims.Email,
		StudentName:     claims.Name,
		StudentClass:    claims.Class,
		TotalQuestions:  len(quiz.Questions),
		CorrectAnswers:  correctCount,
		TotalScore:      totalScore,
		MaxScore:        maxScore,
		Percentage:      round2(percentage),
		Grade:           grade,
		QuestionResults: breakdown,
		SubmittedAt:     time.Now(),
		TimeTaken:       req.TimeTaken,
		AttemptNumber:   int(priorCount) + 1,
	}

	if err := s.ResultRepo.Create(result); err != nil {
		return nil, err
	}

	// Flag the active attempt as submitted so it stops being resumable.
	// Best effort: the result is already durable.
	if attempt, err := s.AttemptRepo.FindActive(quiz.ID, claims.UserID, time.Now()); err == nil && attempt != nil {
		if err := s.AttemptRepo.MarkSubmitted(attempt.ID); err != nil {
			s.Logger.Warn("marking attempt submitted failed",
				zap.String("attempt_id", attempt.ID), zap.Error(err))
		}
	}

	monitoring.QuizSubmissions.WithLabelValues(grade).Inc()

	s.Logger.Info("quiz graded",
		zap.String("quiz_id", quiz.ID),
		zap.String("student_id", claims.UserID),
		zap.Int("score", totalScore),
		zap.Int("max_score", maxScore),
		zap.String("grade", grade))

	return result, nil
}
