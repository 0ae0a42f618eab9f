package service

import (
	"sort"
	"strings"

	"smartedu_backend/internal/model"
	"smartedu_backend/internal/repository"
	"smartedu_backend/internal/util"

	"go.uber.org/zap"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	Logger       *zap.Logger
}

func NewQuestionService(questionRepo *repository.QuestionRepository, logger *zap.Logger) *QuestionService {
	return &QuestionService{QuestionRepo: questionRepo, Logger: logger}
}

// AddQuestionRequest is the payload for creating a question-bank entry.
type AddQuestionRequest struct {
	QuestionText  string   `json:"question_text"`
	QuestionType  string   `json:"question_type"`
	Subject       string   `json:"subject"`
	Topic         string   `json:"topic"`
	Class         string   `json:"class"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Points        int      `json:"points"`
	Difficulty    string   `json:"difficulty"`
	TimeEstimate  int      `json:"time_estimate"`
	Tags          []string `json:"tags"`
}

func validQuestionType(t string) bool {
	for _, qt := range model.QuestionTypes {
		if qt == t {
			return true
		}
	}
	return false
}

// AddQuestion validates and stores a bank entry. A multiple-choice question
// needs at least two options; the (text, subject) pair must be unique within
// the school.
func (s *QuestionService) AddQuestion(claims *util.Claims, req *AddQuestionRequest) (*model.Question, error) {
	var missing []string
	if strings.TrimSpace(req.QuestionText) == "" {
		missing = append(missing, "question_text")
	}
	if req.QuestionType == "" {
		missing = append(missing, "question_type")
	}
	if strings.TrimSpace(req.Subject) == "" {
		missing = append(missing, "subject")
	}
	if strings.TrimSpace(req.CorrectAnswer) == "" {
		missing = append(missing, "correct_answer")
	}
	if len(missing) > 0 {
		return nil, util.NewValidationError(missing...)
	}

	if !validQuestionType(req.QuestionType) {
		return nil, util.NewValidationError("question_type")
	}

	if req.QuestionType == model.QuestionMultipleChoice && len(req.Options) < 2 {
		return nil, util.NewValidationError("options")
	}

	exists, err := s.QuestionRepo.Exists(claims.SchoolID, req.QuestionText, req.Subject)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrDuplicateQuestion
	}

	question := &model.Question{
		SchoolID:      claims.SchoolID,
		CreatedBy:     claims.UserID,
		QuestionText:  req.QuestionText,
		QuestionType:  req.QuestionType,
		Subject:       req.Subject,
		Topic:         req.Topic,
		Class:         req.Class,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		Points:        req.Points,
		Difficulty:    req.Difficulty,
		TimeEstimate:  req.TimeEstimate,
		Tags:          req.Tags,
		IsReusable:    true,
	}
	if question.Points <= 0 {
		question.Points = 1
	}
	if question.Difficulty == "" {
		question.Difficulty = "medium"
	}
	if question.TimeEstimate <= 0 {
		question.TimeEstimate = 2
	}

	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, err
	}

	s.Logger.Info("question added to bank",
		zap.String("question_id", question.ID),
		zap.String("subject", question.Subject),
		zap.String("school_id", claims.SchoolID))

	return question, nil
}

func (s *QuestionService) ListQuestions(claims *util.Claims, f repository.QuestionFilter) ([]model.Question, int64, error) {
	return s.QuestionRepo.List(claims.SchoolID, f)
}

// Vocabulary is the set of filter values present in the school's bank.
type Vocabulary struct {
	Subjects []string `json:"subjects"`
	Topics   []string `json:"topics"`
	Classes  []string `json:"classes"`
	Tags     []string `json:"tags"`
}

// GetVocabulary collects the distinct subjects, topics, classes and tags so
// the filter UI never offers an empty facet.
func (s *QuestionService) GetVocabulary(claims *util.Claims) (*Vocabulary, error) {
	subjects, err := s.QuestionRepo.DistinctValues(claims.SchoolID, "subject")
	if err != nil {
		return nil, err
	}
	topics, err := s.QuestionRepo.DistinctValues(claims.SchoolID, "topic")
	if err != nil {
		return nil, err
	}
	classes, err := s.QuestionRepo.DistinctValues(claims.SchoolID, "class")
	if err != nil {
		return nil, err
	}

	rows, err := s.QuestionRepo.AllTags(claims.SchoolID)
	if err != nil {
		return nil, err
	}
	tagSet := make(map[string]bool)
	for _, q := range rows {
		for _, t := range q.Tags {
			if t != "" {
				tagSet[t] = true
			}
		}
	}
	tags := make([]string, 0, len(tagSet))
	for t := range tagSet {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	sort.Strings(subjects)
	sort.Strings(topics)
	sort.Strings(classes)

	return &Vocabulary{Subjects: subjects, Topics: topics, Classes: classes, Tags: tags}, nil
}

func (s *QuestionService) DeleteQuestion(claims *util.Claims, id string) error {
	affected, err := s.QuestionRepo.Delete(id, claims.SchoolID, claims.UserID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.ErrQuestionNotFound
	}
	return nil
}
