package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartedu_backend/internal/model"
	"smartedu_backend/internal/util"
)

func seedPublishedQuiz(t *testing.T, questionSvc *QuestionService, quizSvc *QuizService, teacher *util.Claims, title string) *model.Quiz {
	t.Helper()

	ids := seedBankQuestions(t, questionSvc, teacher)
	quiz, err := quizSvc.CreateQuiz(teacher, &CreateQuizRequest{
		Title: title, Subject: "Mathematics", QuestionBankIDs: ids,
	})
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	if err := quizSvc.PublishQuiz(context.Background(), teacher, quiz.ID); err != nil {
		t.Fatalf("publish: %v", err)
	}
	return quiz
}

func TestSaveProgressUpserts(t *testing.T) {
	db := newTestDB(t)
	questionSvc := newQuestionService(db)
	quizSvc := newQuizService(db, nil)
	attemptSvc := newAttemptService(db, 24*time.Hour)
	teacher := teacherClaims("school-1", "t1")
	student := studentClaims("school-1", "s1", "10A")

	quiz := seedPublishedQuiz(t, questionSvc, quizSvc, teacher, "Progress")

	first, err := attemptSvc.SaveProgress(student, &SaveProgressRequest{
		QuizID:          quiz.ID,
		Answers:         map[string]string{"q1": "4"},
		CurrentQuestion: 1,
		TimeSpent:       30,
	})
	if err != nil {
		t.Fatalf("first save: %v", err)
	}

	second, err := attemptSvc.SaveProgress(student, &SaveProgressRequest{
		QuizID:          quiz.ID,
		Answers:         map[string]string{"q1": "4", "q2": "False"},
		CurrentQuestion: 2,
		TimeSpent:       90,
	})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("second save created a new attempt: %s vs %s", first.ID, second.ID)
	}

	var count int64
	db.Model(&model.QuizAttempt{}).Count(&count)
	if count != 1 {
		t.Errorf("expected a single attempt row, found %d", count)
	}

	active, err := attemptSvc.GetActive(student, quiz.ID)
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if active == nil {
		t.Fatal("expected an active attempt")
	}
	if active.CurrentQuestion != 2 || active.TimeSpent != 90 {
		t.Errorf("checkpoint not updated: question=%d time=%d", active.CurrentQuestion, active.TimeSpent)
	}
	if len(active.Answers) != 2 {
		t.Errorf("answers not updated: %v", active.Answers)
	}
}

func TestSaveProgressExpiryWindowIsFixed(t *testing.T) {
	db := newTestDB(t)
	questionSvc := newQuestionService(db)
	quizSvc := newQuizService(db, nil)
	attemptSvc := newAttemptService(db, 24*time.Hour)
	teacher := teacherClaims("school-1", "t1")
	student := studentClaims("school-1", "s1", "10A")

	quiz := seedPublishedQuiz(t, questionSvc, quizSvc, teacher, "Fixed window")

	first, err := attemptSvc.SaveProgress(student, &SaveProgressRequest{
		QuizID:  quiz.ID,
		Answers: map[string]string{"q1": "4"},
	})
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	firstExpiry := first.ExpiresAt

	second, err := attemptSvc.SaveProgress(student, &SaveProgressRequest{
		QuizID:  quiz.ID,
		Answers: map[string]string{"q1": "5"},
	})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if !second.ExpiresAt.Equal(firstExpiry) {
		t.Errorf("expiry moved from %v to %v", firstExpiry, second.ExpiresAt)
	}
}

func TestSaveProgressAfterExpiryStartsFresh(t *testing.T) {
	db := newTestDB(t)
	questionSvc := newQuestionService(db)
	quizSvc := newQuizService(db, nil)
	// A tiny TTL expires the first attempt immediately.
	attemptSvc := newAttemptService(db, time.Nanosecond)
	teacher := teacherClaims("school-1", "t1")
	student := studentClaims("school-1", "s1", "10A")

	quiz := seedPublishedQuiz(t, questionSvc, quizSvc, teacher, "Expiring")

	first, err := attemptSvc.SaveProgress(student, &SaveProgressRequest{
		QuizID:  quiz.ID,
		Answers: map[string]string{"q1": "4"},
	})
	if err != nil {
		t.Fatalf("first save: %v", err)
	}

	time.Sleep(time.Millisecond)

	second, err := attemptSvc.SaveProgress(student, &SaveProgressRequest{
		QuizID:  quiz.ID,
		Answers: map[string]string{"q1": "5"},
	})
	if err != nil {
		t.Fatalf("post-expiry save: %v", err)
	}
	if first.ID == second.ID {
		t.Error("expired attempt was resumed instead of replaced")
	}

	var count int64
	db.Model(&model.QuizAttempt{}).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 attempt rows, found %d", count)
	}

	// The expired row stays in storage but is invisible to reads.
	active, err := attemptSvc.GetActive(student, quiz.ID)
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if active != nil {
		t.Error("nanosecond TTL attempt should already be expired")
	}
}

func TestGetActiveWithoutAttempt(t *testing.T) {
	db := newTestDB(t)
	attemptSvc := newAttemptService(db, 24*time.Hour)
	student := studentClaims("school-1", "s1", "10A")

	attempt, err := attemptSvc.GetActive(student, "no-such-quiz")
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if attempt != nil {
		t.Errorf("expected nil attempt, got %+v", attempt)
	}
}

func TestSaveProgressRequiresPublishedQuiz(t *testing.T) {
	db := newTestDB(t)
	questionSvc := newQuestionService(db)
	quizSvc := newQuizService(db, nil)
	attemptSvc := newAttemptService(db, 24*time.Hour)
	teacher := teacherClaims("school-1", "t1")
	student := studentClaims("school-1", "s1", "10A")

	ids := seedBankQuestions(t, questionSvc, teacher)
	draft, err := quizSvc.CreateQuiz(teacher, &CreateQuizRequest{
		Title: "Draft only", Subject: "Mathematics", QuestionBankIDs: ids,
	})
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	_, err = attemptSvc.SaveProgress(student, &SaveProgressRequest{QuizID: draft.ID})
	if !errors.Is(err, util.ErrQuizUnavailable) {
		t.Fatalf("expected ErrQuizUnavailable, got %v", err)
	}

	_, err = attemptSvc.SaveProgress(student, &SaveProgressRequest{QuizID: "missing"})
	if !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
