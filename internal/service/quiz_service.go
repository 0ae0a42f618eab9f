package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"smartedu_backend/internal/model"
	"smartedu_backend/internal/repository"
	"smartedu_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type QuizService struct {
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	Redis        *redis.Client
	CacheTTL     time.Duration
	Logger       *zap.Logger
}

func NewQuizService(quizRepo *repository.QuizRepository, questionRepo *repository.QuestionRepository, rdb *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *QuizService {
	return &QuizService{
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
		Redis:        rdb,
		CacheTTL:     cacheTTL,
		Logger:       logger,
	}
}

// InlineQuestion is a question written directly into a quiz instead of being
// pulled from the bank.
type InlineQuestion struct {
	QuestionText  string   `json:"question_text"`
	QuestionType  string   `json:"question_type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Points        int      `json:"points"`
	Difficulty    string   `json:"difficulty"`
	Topic         string   `json:"topic"`
	TimeEstimate  int      `json:"time_estimate"`
	Tags          []string `json:"tags"`
}

// CreateQuizRequest assembles a quiz from bank references and inline
// questions, in the order given.
type CreateQuizRequest struct {
	Title           string           `json:"title"`
	Subject         string           `json:"subject"`
	Description     string           `json:"description"`
	Class           string           `json:"class"`
	TimeLimit       int              `json:"time_limit"`
	QuestionBankIDs []string         `json:"question_bank_ids"`
	InlineQuestions []InlineQuestion `json:"inline_questions"`
}

// CreateQuiz snapshots every referenced bank question into the quiz so later
// bank edits never change an existing quiz. Bank references resolve within
// the teacher's school only; an unresolvable ID fails the whole request.
func (s *QuizService) CreateQuiz(claims *util.Claims, req *CreateQuizRequest) (*model.Quiz, error) {
	var missing []string
	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(req.Subject) == "" {
		missing = append(missing, "subject")
	}
	if len(missing) > 0 {
		return nil, util.NewValidationError(missing...)
	}
	if len(req.QuestionBankIDs) == 0 && len(req.InlineQuestions) == 0 {
		return nil, util.NewValidationError("questions")
	}

	dup, err := s.QuizRepo.TitleExists(claims.SchoolID, claims.UserID, req.Title)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, util.ErrDuplicateQuizTitle
	}

	var snapshots []model.QuizQuestion

	if len(req.QuestionBankIDs) > 0 {
		bankQuestions, err := s.QuestionRepo.FindByIDs(req.QuestionBankIDs, claims.SchoolID)
		if err != nil {
			return nil, err
		}
		byID := make(map[string]*model.Question, len(bankQuestions))
		for i := range bankQuestions {
			byID[bankQuestions[i].ID] = &bankQuestions[i]
		}
		for _, id := range req.QuestionBankIDs {
			q, ok := byID[id]
			if !ok {
				return nil, fmt.Errorf("%w: %s", util.ErrQuestionNotFound, id)
			}
			snapshots = append(snapshots, model.QuizQuestion{
				QuestionBankID: q.ID,
				QuestionText:   q.QuestionText,
				QuestionType:   q.QuestionType,
				Options:        q.Options,
				CorrectAnswer:  q.CorrectAnswer,
				Explanation:    q.Explanation,
				Points:         q.Points,
				Difficulty:     q.Difficulty,
				Subject:        q.Subject,
				Topic:          q.Topic,
				Class:          q.Class,
				TimeEstimate:   q.TimeEstimate,
				Tags:           q.Tags,
			})
		}
	}

	for _, iq := range req.InlineQuestions {
		if strings.TrimSpace(iq.QuestionText) == "" || strings.TrimSpace(iq.CorrectAnswer) == "" {
			return nil, util.NewValidationError("inline_questions")
		}
		if !validQuestionType(iq.QuestionType) {
			return nil, util.NewValidationError("question_type")
		}
		if iq.QuestionType == model.QuestionMultipleChoice && len(iq.Options) < 2 {
			return nil, util.NewValidationError("options")
		}
		points := iq.Points
		if points <= 0 {
			points = 1
		}
		difficulty := iq.Difficulty
		if difficulty == "" {
			difficulty = "medium"
		}
		timeEstimate := iq.TimeEstimate
		if timeEstimate <= 0 {
			timeEstimate = 2
		}
		snapshots = append(snapshots, model.QuizQuestion{
			QuestionText:  iq.QuestionText,
			QuestionType:  iq.QuestionType,
			Options:       iq.Options,
			CorrectAnswer: iq.CorrectAnswer,
			Explanation:   iq.Explanation,
			Points:        points,
			Difficulty:    difficulty,
			Subject:       req.Subject,
			Topic:         iq.Topic,
			Class:         req.Class,
			TimeEstimate:  timeEstimate,
			Tags:          iq.Tags,
		})
	}

	totalPoints := 0
	for i := range snapshots {
		snapshots[i].OrderIndex = i + 1
		totalPoints += snapshots[i].Points
	}

	timeLimit := req.TimeLimit
	if timeLimit <= 0 {
		timeLimit = 60
	}

	quiz := &model.Quiz{
		SchoolID:    claims.SchoolID,
		TeacherID:   claims.UserID,
		TeacherName: claims.Name,
		Title:       req.Title,
		Subject:     req.Subject,
		Description: req.Description,
		Class:       req.Class,
		TimeLimit:   timeLimit,
		Status:      model.QuizDraft,
		TotalPoints: totalPoints,
		Questions:   snapshots,
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}

	s.Logger.Info("quiz created",
		zap.String("quiz_id", quiz.ID),
		zap.String("title", quiz.Title),
		zap.Int("questions", len(snapshots)),
		zap.Int("total_points", totalPoints))

	return quiz, nil
}

// GetQuizForTeacher loads a quiz with the full answer key, for its owner.
func (s *QuizService) GetQuizForTeacher(claims *util.Claims, quizID string) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID, claims.SchoolID)
	if err != nil {
		return nil, util.ErrNotFound
	}
	if quiz.TeacherID != claims.UserID && claims.Role != model.Superadmin && claims.Role != model.Principal {
		return nil, util.ErrNotFound
	}
	return quiz, nil
}

// StudentQuizQuestion is the sanitized view a student receives. It never
// carries the correct answer or explanation, and options only appear for
// the question types that have them.
type StudentQuizQuestion struct {
	ID           string   `json:"id"`
	QuestionText string   `json:"question_text"`
	QuestionType string   `json:"question_type"`
	Options      []string `json:"options,omitempty"`
	Points       int      `json:"points"`
	Difficulty   string   `json:"difficulty"`
	TimeEstimate int      `json:"time_estimate"`
	OrderIndex   int      `json:"order_index"`
}

// StudentQuizView is the full sanitized quiz payload.
type StudentQuizView struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	Subject       string                `json:"subject"`
	Description   string                `json:"description"`
	TeacherName   string                `json:"teacher_name"`
	TimeLimit     int                   `json:"time_limit"`
	TotalPoints   int                   `json:"total_points"`
	QuestionCount int                   `json:"question_count"`
	Questions     []StudentQuizQuestion `json:"questions"`
}

func sanitizeQuiz(quiz *model.Quiz) *StudentQuizView {
	view := &StudentQuizView{
		ID:            quiz.ID,
		Title:         quiz.Title,
		Subject:       quiz.Subject,
		Description:   quiz.Description,
		TeacherName:   quiz.TeacherName,
		TimeLimit:     quiz.TimeLimit,
		TotalPoints:   quiz.TotalPoints,
		QuestionCount: len(quiz.Questions),
		Questions:     make([]StudentQuizQuestion, 0, len(quiz.Questions)),
	}
	for i, q := range quiz.Questions {
		id := q.ID
		if id == "" {
			id = util.StableQuestionID(q.QuestionText, i, quiz.ID)
		}
		sq := StudentQuizQuestion{
			ID:           id,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			Points:       q.Points,
			Difficulty:   q.Difficulty,
			TimeEstimate: q.TimeEstimate,
			OrderIndex:   q.OrderIndex,
		}
		if q.QuestionType == model.QuestionMultipleChoice || q.QuestionType == model.QuestionTrueFalse {
			sq.Options = q.Options
		}
		view.Questions = append(view.Questions, sq)
	}
	return view
}

func quizCacheKey(schoolID, quizID string) string {
	return fmt.Sprintf("quiz:view:%s:%s", schoolID, quizID)
}

// GetQuizForAttempt returns the sanitized view of a published quiz. The view
// is cached in Redis; a cache miss or Redis outage falls through to the
// database.
func (s *QuizService) GetQuizForAttempt(ctx context.Context, claims *util.Claims, quizID string) (*StudentQuizView, error) {
	key := quizCacheKey(claims.SchoolID, quizID)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var view StudentQuizView
			if err := json.Unmarshal([]byte(cached), &view); err == nil {
				return &view, nil
			}
		}
	}

	quiz, err := s.QuizRepo.FindByID(quizID, claims.SchoolID)
	if err != nil {
		return nil, util.ErrNotFound
	}
	if quiz.Status != model.QuizPublished {
		return nil, util.ErrQuizUnavailable
	}

	view := sanitizeQuiz(quiz)

	if s.Redis != nil {
		if payload, err := json.Marshal(view); err == nil {
			if err := s.Redis.Set(ctx, key, payload, s.CacheTTL).Err(); err != nil {
				s.Logger.Warn("quiz view cache write failed", zap.Error(err))
			}
		}
	}

	return view, nil
}

func (s *QuizService) invalidateCache(ctx context.Context, schoolID, quizID string) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, quizCacheKey(schoolID, quizID)).Err(); err != nil {
		s.Logger.Warn("quiz view cache invalidation failed", zap.Error(err))
	}
}

// PublishQuiz moves a quiz to published. Ownership and tenancy ride in the
// repository WHERE clause: zero rows means not found, no matter why.
func (s *QuizService) PublishQuiz(ctx context.Context, claims *util.Claims, quizID string) error {
	now := time.Now()
	affected, err := s.QuizRepo.UpdateStatus(quizID, claims.UserID, claims.SchoolID, model.QuizPublished, &now)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrNotFound
	}
	s.invalidateCache(ctx, claims.SchoolID, quizID)
	s.Logger.Info("quiz published", zap.String("quiz_id", quizID))
	return nil
}

func (s *QuizService) UnpublishQuiz(ctx context.Context, claims *util.Claims, quizID string) error {
	affected, err := s.QuizRepo.UpdateStatus(quizID, claims.UserID, claims.SchoolID, model.QuizDraft, nil)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrNotFound
	}
	s.invalidateCache(ctx, claims.SchoolID, quizID)
	s.Logger.Info("quiz unpublished", zap.String("quiz_id", quizID))
	return nil
}

func (s *QuizService) DeleteQuiz(ctx context.Context, claims *util.Claims, quizID string) error {
	affected, err := s.QuizRepo.Delete(quizID, claims.UserID, claims.SchoolID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrNotFound
	}
	s.invalidateCache(ctx, claims.SchoolID, quizID)
	s.Logger.Info("quiz deleted", zap.String("quiz_id", quizID))
	return nil
}

func (s *QuizService) ListForTeacher(claims *util.Claims) ([]repository.QuizListRow, error) {
	return s.QuizRepo.ListForTeacher(claims.UserID, claims.SchoolID)
}

// ListPublished lists the quizzes a student may take, scoped to their class.
func (s *QuizService) ListPublished(claims *util.Claims, subject, search string) ([]repository.QuizListRow, error) {
	return s.QuizRepo.ListPublished(claims.SchoolID, subject, claims.Class, search)
}
