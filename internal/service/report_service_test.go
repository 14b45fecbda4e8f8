package service

import (
	"context"
	"testing"

	"homework_backend/internal/model"
)

func TestStudentProgressOrderedByDeadline(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.seedUser(t, model.Teacher, "Учитель")
	student := env.seedUser(t, model.Student, "Ученик")
	classroom := env.seedClassroom(t, teacher.ID, student.ID)
	env.seedScale(t)

	late, err := env.homeworkSvc.CreateHomework(teacher.ID, classroom.ID, CreateHomeworkReq{
		Title:        "Вторая",
		AssignedDate: "2026-03-01",
		Deadline:     "2026-03-20",
		Questions:    []QuestionRow{{Number: 1, Format: "integer", Answer: "1"}},
	})
	if err != nil {
		t.Fatalf("create late homework: %v", err)
	}
	early, err := env.homeworkSvc.CreateHomework(teacher.ID, classroom.ID, CreateHomeworkReq{
		Title:        "Первая",
		AssignedDate: "2026-03-01",
		Deadline:     "2026-03-05",
		Questions:    []QuestionRow{{Number: 1, Format: "integer", Answer: "1"}},
	})
	if err != nil {
		t.Fatalf("create early homework: %v", err)
	}

	// 先交截止晚的，曲线仍按截止日期排
	if _, err := env.submissionSvc.Submit(student.ID, late.ID, SubmitReq{Answers: map[string]string{"1": "1"}}); err != nil {
		t.Fatalf("submit late: %v", err)
	}
	if _, err := env.submissionSvc.Submit(student.ID, early.ID, SubmitReq{Answers: map[string]string{"1": "2"}}); err != nil {
		t.Fatalf("submit early: %v", err)
	}

	progress, err := env.reportSvc.GetStudentProgress(context.Background(), student.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(progress.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(progress.Points))
	}
	if progress.Points[0].TemplateID != early.ID || progress.Points[1].TemplateID != late.ID {
		t.Fatalf("points not ordered by deadline: %d, %d", progress.Points[0].TemplateID, progress.Points[1].TemplateID)
	}

	// 未批改的点用量表对最终分折算临时等级
	if progress.Points[0].Grade == nil {
		t.Fatal("ungraded point should carry provisional grade")
	}
}

func TestClassroomStatsAggregation(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.seedUser(t, model.Teacher, "Учитель")
	s1 := env.seedUser(t, model.Student, "Первый")
	s2 := env.seedUser(t, model.Student, "Второй")
	classroom := env.seedClassroom(t, teacher.ID, s1.ID, s2.ID)
	env.seedScale(t)
	template := env.seedHomework(t, teacher.ID, classroom.ID)

	if _, err := env.submissionSvc.Submit(s1.ID, template.ID, SubmitReq{
		Answers: map[string]string{"1": "4", "2": "Paris", "3": "4.5"},
	}); err != nil {
		t.Fatalf("submit s1: %v", err)
	}
	if _, err := env.submissionSvc.Submit(s2.ID, template.ID, SubmitReq{
		Answers: map[string]string{"1": "0"},
	}); err != nil {
		t.Fatalf("submit s2: %v", err)
	}

	stats, err := env.reportSvc.GetClassroomStats(context.Background(), teacher.ID, classroom.ID, false)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats.Templates) != 1 {
		t.Fatalf("template reports = %d, want 1", len(stats.Templates))
	}

	report := stats.Templates[0]
	if report.RosterSize != 2 {
		t.Fatalf("roster size = %d, want 2", report.RosterSize)
	}
	if report.Submitted != 2 {
		t.Fatalf("submitted = %d, want 2", report.Submitted)
	}
	if report.Graded != 0 {
		t.Fatalf("graded = %d, want 0", report.Graded)
	}
	if report.AverageScore != 1.5 {
		t.Fatalf("average = %v, want 1.5", report.AverageScore)
	}
}
