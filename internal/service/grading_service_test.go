package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartedu_backend/internal/model"
	"smartedu_backend/internal/repository"
	"smartedu_backend/internal/util"
)

func TestAnswerMatches(t *testing.T) {
	cases := []struct {
		name         string
		questionType string
		student      string
		correct      string
		want         bool
	}{
		{"mc exact", model.QuestionMultipleChoice, "4", "4", true},
		{"mc case sensitive", model.QuestionMultipleChoice, "paris", "Paris", false},
		{"mc no trimming", model.QuestionMultipleChoice, " 4", "4", false},
		{"true_false case insensitive", model.QuestionTrueFalse, "false", "False", true},
		{"true_false wrong", model.QuestionTrueFalse, "True", "False", false},
		{"short answer trims and folds", model.QuestionShortAnswer, "  NEWTON ", "newton", true},
		{"short answer wrong", model.QuestionShortAnswer, "joule", "newton", false},
		{"numerical trims", model.QuestionNumerical, " 5 ", "5", true},
		{"numerical no arithmetic equivalence", model.QuestionNumerical, "5.0", "5", false},
		{"blank never matches", model.QuestionShortAnswer, "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := answerMatches(tc.questionType, tc.student, tc.correct); got != tc.want {
				t.Errorf("answerMatches(%q, %q, %q) = %v, want %v",
					tc.questionType, tc.student, tc.correct, got, tc.want)
			}
		})
	}
}

func TestLetterGradeBoundaries(t *testing.T) {
	cases := []struct {
		percentage float64
		want       string
	}{
		{100, "A"},
		{90, "A"},
		{89.999, "B"},
		{80, "B"},
		{79.999, "C"},
		{70, "C"},
		{69.999, "D"},
		{60, "D"},
		{59.999, "F"},
		{0, "F"},
	}

	for _, tc := range cases {
		if got := letterGrade(tc.percentage); got != tc.want {
			t.Errorf("letterGrade(%v) = %q, want %q", tc.percentage, got, tc.want)
		}
	}
}

func TestSubmitGradesAgainstSnapshot(t *testing.T) {
	db := newTestDB(t)
	questionSvc := newQuestionService(db)
	quizSvc := newQuizService(db, nil)
	gradingSvc := newGradingService(db)
	teacher := teacherClaims("school-1", "t1")
	student := studentClaims("school-1", "s1", "10A")

	quiz := seedPublishedQuiz(t, questionSvc, quizSvc, teacher, "Graded")

	full, err := quizSvc.GetQuizForTeacher(teacher, quiz.ID)
	if err != nil {
		t.Fatalf("loading quiz: %v", err)
	}

	// Points: mc=2, true_false=1, short=3. Answer the first two correctly.
	answers := map[string]string{}
	for _, q := range full.Questions {
		switch q.QuestionType {
		case model.QuestionMultipleChoice:
			answers[q.ID] = "4"
		case model.QuestionTrueFalse:
			answers[q.ID] = "false"
		case model.QuestionShortAnswer:
			answers[q.ID] = "wrong"
		}
	}

	result, err := gradingSvc.Submit(student, &SubmitRequest{
		QuizID:    quiz.ID,
		Answers:   answers,
		TimeTaken: 300,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if result.TotalScore != 3 || result.MaxScore != 6 {
		t.Errorf("score = %d/%d, want 3/6", result.TotalScore, result.MaxScore)
	}
	if result.CorrectAnswers != 2 || result.TotalQuestions != 3 {
		t.Errorf("correct = %d/%d, want 2/3", result.CorrectAnswers, result.TotalQuestions)
	}
	if result.Percentage != 50 {
		t.Errorf("percentage = %v, want 50", result.Percentage)
	}
	if result.Grade != "F" {
		t.Errorf("grade = %q, want F", result.Grade)
	}
	if result.AttemptNumber != 1 {
		t.Errorf("attempt_number = %d, want 1", result.AttemptNumber)
	}
	if len(result.QuestionResults) != 3 {
		t.Fatalf("breakdown has %d entries", len(result.QuestionResults))
	}
	for _, qr := range result.QuestionResults {
		if qr.CorrectAnswer == "" {
			t.Error("breakdown must reveal the answer key after grading")
		}
	}
}

func TestSubmitIsDeterministic(t *testing.T) {
	db := newTestDB(t)
	questionSvc := newQuestionService(db)
	quizSvc := newQuizService(db, nil)
	gradingSvc := newGradingService(db)
	teacher := teacherClaims("school-1", "t1")
	student := studentClaims("school-1", "s1", "10A")

	quiz := seedPublishedQuiz(t, questionSvc, quizSvc, teacher, "Deterministic")
	full, _ := quizSvc.GetQuizForTeacher(teacher, quiz.ID)

	answers := map[string]string{}
	for _, q := range full.Questions {
		if q.QuestionType == model.QuestionMultipleChoice {
			answers[q.ID] = "4"
		}
	}

	first, err := gradingSvc.Submit(student, &SubmitRequest{QuizID: quiz.ID, Answers: answers})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second, err := gradingSvc.Submit(student, &SubmitRequest{QuizID: quiz.ID, Answers: answers})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if first.ID == second.ID {
		t.Error("each submission must produce its own result record")
	}
	if first.TotalScore != second.TotalScore || first.Grade != second.Grade {
		t.Errorf("identical answers graded differently: %d/%s vs %d/%s",
			first.TotalScore, first.Grade, second.TotalScore, second.Grade)
	}
	if second.AttemptNumber != first.AttemptNumber+1 {
		t.Errorf("attempt numbers = %d then %d", first.AttemptNumber, second.AttemptNumber)
	}

	var count int64
	db.Model(&model.QuizResult{}).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 result rows, found %d", count)
	}
}

func TestSubmitEmptyQuizScoresZeroPercent(t *testing.T) {
	db := newTestDB(t)
	gradingSvc := newGradingService(db)
	student := studentClaims("school-1", "s1", "10A")

	quizRepo := repository.NewQuizRepository(db)
	now := time.Now()
	quiz := &model.Quiz{
		SchoolID:    "school-1",
		TeacherID:   "t1",
		Title:       "Empty",
		Subject:     "Mathematics",
		Status:      model.QuizPublished,
		PublishedAt: &now,
	}
	if err := quizRepo.Create(quiz); err != nil {
		t.Fatalf("seeding quiz: %v", err)
	}

	result, err := gradingSvc.Submit(student, &SubmitRequest{QuizID: quiz.ID})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Percentage != 0 || result.Grade != "F" {
		t.Errorf("zero max score should grade 0%%/F, got %v/%s", result.Percentage, result.Grade)
	}
}

func TestSubmitUnavailableQuiz(t *testing.T) {
	db := newTestDB(t)
	questionSvc := newQuestionService(db)
	quizSvc := newQuizService(db, nil)
	gradingSvc := newGradingService(db)
	teacher := teacherClaims("school-1", "t1")
	student := studentClaims("school-1", "s1", "10A")

	ids := seedBankQuestions(t, questionSvc, teacher)
	draft, err := quizSvc.CreateQuiz(teacher, &CreateQuizRequest{
		Title: "Draft", Subject: "Mathematics", QuestionBankIDs: ids,
	})
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	if _, err := gradingSvc.Submit(student, &SubmitRequest{QuizID: draft.ID}); !errors.Is(err, util.ErrQuizUnavailable) {
		t.Fatalf("draft submit should be ErrQuizUnavailable, got %v", err)
	}
	if _, err := gradingSvc.Submit(student, &SubmitRequest{QuizID: "missing"}); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("missing quiz should be ErrNotFound, got %v", err)
	}

	// Cross-tenant submit reads as not found, never as forbidden.
	outsider := studentClaims("school-2", "s9", "9B")
	if err := quizSvc.PublishQuiz(context.Background(), teacher, draft.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if _, err := gradingSvc.Submit(outsider, &SubmitRequest{QuizID: draft.ID}); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("cross-tenant submit should be ErrNotFound, got %v", err)
	}
}

func TestSubmitClosesActiveAttempt(t *testing.T) {
	db := newTestDB(t)
	questionSvc := newQuestionService(db)
	quizSvc := newQuizService(db, nil)
	attemptSvc := newAttemptService(db, 24*time.Hour)
	gradingSvc := newGradingService(db)
	teacher := teacherClaims("school-1", "t1")
	student := studentClaims("school-1", "s1", "10A")

	quiz := seedPublishedQuiz(t, questionSvc, quizSvc, teacher, "Closing")

	if _, err := attemptSvc.SaveProgress(student, &SaveProgressRequest{
		QuizID:  quiz.ID,
		Answers: map[string]string{"q1": "4"},
	}); err != nil {
		t.Fatalf("save progress: %v", err)
	}

	if _, err := gradingSvc.Submit(student, &SubmitRequest{QuizID: quiz.ID}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	active, err := attemptSvc.GetActive(student, quiz.ID)
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if active != nil {
		t.Error("attempt should not be resumable after submission")
	}
}
