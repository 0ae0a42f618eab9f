package service

import (
	"math"
	"testing"
	"time"

	"smartedu_backend/internal/model"
	"smartedu_backend/internal/repository"
)

func TestImprovementTrend(t *testing.T) {
	history := func(percentages ...float64) []model.QuizResult {
		results := make([]model.QuizResult, len(percentages))
		for i, p := range percentages {
			results[i].Percentage = p
		}
		return results
	}

	cases := []struct {
		name    string
		results []model.QuizResult
		want    float64
	}{
		{"empty", nil, 0},
		{"single result", history(80), 0},
		{"improving", history(50, 90), 40},
		{"declining", history(90, 50), -40},
		{"odd count splits at the middle", history(60, 70, 80), (70.0+80.0)/2 - 60},
		{"flat", history(75, 75, 75, 75), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := improvementTrend(tc.results)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("improvementTrend = %v, want %v", got, tc.want)
			}
		})
	}
}

func seedResult(t *testing.T, repo *repository.ResultRepository, schoolID, quizID, title, subject, studentEmail string, percentage float64, submittedAt time.Time) {
	t.Helper()

	err := repo.Create(&model.QuizResult{
		SchoolID:     schoolID,
		QuizID:       quizID,
		QuizTitle:    title,
		QuizSubject:  subject,
		StudentID:    studentEmail,
		StudentEmail: studentEmail,
		Percentage:   percentage,
		Grade:        letterGrade(percentage),
		SubmittedAt:  submittedAt,
	})
	if err != nil {
		t.Fatalf("seeding result: %v", err)
	}
}

func TestQuizAnalyticsCountsDistinctStudents(t *testing.T) {
	db := newTestDB(t)
	resultSvc := newResultService(db)
	repo := resultSvc.ResultRepo
	teacher := teacherClaims("school-1", "t1")

	now := time.Now()
	// alice retakes the quiz; bob submits once.
	seedResult(t, repo, "school-1", "quiz-1", "Algebra", "Mathematics", "alice@school.test", 40, now)
	seedResult(t, repo, "school-1", "quiz-1", "Algebra", "Mathematics", "alice@school.test", 80, now.Add(time.Hour))
	seedResult(t, repo, "school-1", "quiz-1", "Algebra", "Mathematics", "bob@school.test", 60, now)
	// Another school's data must stay invisible.
	seedResult(t, repo, "school-2", "quiz-9", "Algebra", "Mathematics", "eve@other.test", 100, now)

	rows, err := resultSvc.QuizAnalytics(teacher, "")
	if err != nil {
		t.Fatalf("QuizAnalytics: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 aggregate row, got %d", len(rows))
	}

	row := rows[0]
	if row.Submissions != 3 {
		t.Errorf("submissions = %d, want 3", row.Submissions)
	}
	if row.Students != 2 {
		t.Errorf("students = %d, want 2 (retakes must not inflate)", row.Students)
	}
	if row.MaxPercentage != 80 || row.MinPercentage != 40 {
		t.Errorf("max/min = %v/%v, want 80/40", row.MaxPercentage, row.MinPercentage)
	}
	if math.Abs(row.AvgPercentage-60) > 1e-9 {
		t.Errorf("avg = %v, want 60", row.AvgPercentage)
	}
}

func TestSubjectAnalytics(t *testing.T) {
	db := newTestDB(t)
	resultSvc := newResultService(db)
	repo := resultSvc.ResultRepo
	teacher := teacherClaims("school-1", "t1")

	now := time.Now()
	seedResult(t, repo, "school-1", "quiz-1", "Algebra", "Mathematics", "alice@school.test", 70, now)
	seedResult(t, repo, "school-1", "quiz-2", "Optics", "Physics", "alice@school.test", 90, now)
	seedResult(t, repo, "school-1", "quiz-2", "Optics", "Physics", "bob@school.test", 50, now)

	rows, err := resultSvc.SubjectAnalytics(teacher)
	if err != nil {
		t.Fatalf("SubjectAnalytics: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 subjects, got %d", len(rows))
	}

	bySubject := map[string]repository.SubjectAnalyticsRow{}
	for _, r := range rows {
		bySubject[r.Subject] = r
	}
	if bySubject["Physics"].Submissions != 2 || bySubject["Physics"].Students != 2 {
		t.Errorf("physics row = %+v", bySubject["Physics"])
	}
	if math.Abs(bySubject["Physics"].AvgPercentage-70) > 1e-9 {
		t.Errorf("physics avg = %v, want 70", bySubject["Physics"].AvgPercentage)
	}
	if bySubject["Physics"].MaxPercentage != 90 || bySubject["Physics"].MinPercentage != 50 {
		t.Errorf("physics max/min = %v/%v, want 90/50",
			bySubject["Physics"].MaxPercentage, bySubject["Physics"].MinPercentage)
	}
	if bySubject["Mathematics"].MaxPercentage != 70 || bySubject["Mathematics"].MinPercentage != 70 {
		t.Errorf("mathematics max/min = %v/%v, want 70/70",
			bySubject["Mathematics"].MaxPercentage, bySubject["Mathematics"].MinPercentage)
	}
}

func TestStudentHistoryOrderAndTrend(t *testing.T) {
	db := newTestDB(t)
	resultSvc := newResultService(db)
	repo := resultSvc.ResultRepo
	student := studentClaims("school-1", "alice@school.test", "10A")

	now := time.Now()
	seedResult(t, repo, "school-1", "quiz-1", "Algebra", "Mathematics", "alice@school.test", 40, now.Add(-2*time.Hour))
	seedResult(t, repo, "school-1", "quiz-2", "Geometry", "Mathematics", "alice@school.test", 60, now.Add(-time.Hour))
	seedResult(t, repo, "school-1", "quiz-3", "Optics", "Physics", "alice@school.test", 90, now)

	history, err := resultSvc.GetStudentHistory(student, "")
	if err != nil {
		t.Fatalf("GetStudentHistory: %v", err)
	}
	if len(history.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(history.Results))
	}
	for i := 1; i < len(history.Results); i++ {
		if history.Results[i].SubmittedAt.Before(history.Results[i-1].SubmittedAt) {
			t.Error("history must be ordered oldest first")
		}
	}
	// Split at n/2: earlier half {40}, later half {60, 90}.
	want := (60.0+90.0)/2 - 40
	if math.Abs(history.Trend-want) > 1e-9 {
		t.Errorf("trend = %v, want %v", history.Trend, want)
	}

	mathOnly, err := resultSvc.GetStudentHistory(student, "Mathematics")
	if err != nil {
		t.Fatalf("subject filter: %v", err)
	}
	if len(mathOnly.Results) != 2 {
		t.Errorf("expected 2 mathematics results, got %d", len(mathOnly.Results))
	}
}

func TestListForTeacherFilters(t *testing.T) {
	db := newTestDB(t)
	resultSvc := newResultService(db)
	repo := resultSvc.ResultRepo
	teacher := teacherClaims("school-1", "t1")

	now := time.Now()
	seedResult(t, repo, "school-1", "quiz-1", "Algebra", "Mathematics", "alice@school.test", 70, now.Add(-2*time.Hour))
	seedResult(t, repo, "school-1", "quiz-2", "Optics", "Physics", "bob@school.test", 90, now)

	rows, total, err := resultSvc.ListForTeacher(teacher, repository.ResultFilter{Subject: "Physics"})
	if err != nil {
		t.Fatalf("ListForTeacher: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].StudentEmail != "bob@school.test" {
		t.Errorf("subject filter returned %d rows (total %d)", len(rows), total)
	}

	rows, total, err = resultSvc.ListForTeacher(teacher, repository.ResultFilter{StudentEmail: "alice@school.test"})
	if err != nil {
		t.Fatalf("student filter: %v", err)
	}
	if total != 1 || rows[0].QuizID != "quiz-1" {
		t.Errorf("student filter returned %+v", rows)
	}

	rows, total, err = resultSvc.ListForTeacher(teacher, repository.ResultFilter{From: now.Add(-time.Hour)})
	if err != nil {
		t.Fatalf("from filter: %v", err)
	}
	if total != 1 || rows[0].QuizID != "quiz-2" {
		t.Errorf("from filter returned %+v", rows)
	}

	rows, total, err = resultSvc.ListForTeacher(teacher, repository.ResultFilter{To: now.Add(-time.Hour)})
	if err != nil {
		t.Fatalf("to filter: %v", err)
	}
	if total != 1 || rows[0].QuizID != "quiz-1" {
		t.Errorf("to filter returned %+v", rows)
	}
}
