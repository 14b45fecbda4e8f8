package service

import (
	"errors"
	"testing"

	"homework_backend/internal/model"
	"homework_backend/internal/util"
)

func TestSubmitAutoGrades(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.seedUser(t, model.Teacher, "Учитель")
	student := env.seedUser(t, model.Student, "Ученик")
	classroom := env.seedClassroom(t, teacher.ID, student.ID)
	env.seedScale(t)
	template := env.seedHomework(t, teacher.ID, classroom.ID)

	// 1: 正确；2: 大小写和空格不影响；3: 用逗号写小数也算对
	submission, err := env.submissionSvc.Submit(student.ID, template.ID, SubmitReq{
		Answers: map[string]string{
			"1": "4",
			"2": "  paris ",
			"3": "4,5",
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submission.AutoScore != 3 {
		t.Fatalf("auto score = %d, want 3", submission.AutoScore)
	}
	if submission.FinalScore != 3 {
		t.Fatalf("final score = %d, want auto score 3", submission.FinalScore)
	}
	if submission.Graded {
		t.Fatal("fresh submission must not be graded")
	}
	if submission.Grade != nil {
		t.Fatal("fresh submission must not carry a grade")
	}
}

func TestSubmitPartiallyWrong(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.seedUser(t, model.Teacher, "Учитель")
	student := env.seedUser(t, model.Student, "Ученик")
	classroom := env.seedClassroom(t, teacher.ID, student.ID)
	env.seedScale(t)
	template := env.seedHomework(t, teacher.ID, classroom.ID)

	// 2 错、3 漏答，非法键被忽略
	submission, err := env.submissionSvc.Submit(student.ID, template.ID, SubmitReq{
		Answers: map[string]string{
			"1":   "4",
			"2":   "London",
			"abc": "junk",
		},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submission.AutoScore != 1 {
		t.Fatalf("auto score = %d, want 1", submission.AutoScore)
	}
}

func TestSubmitOutsideClassroom(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.seedUser(t, model.Teacher, "Учитель")
	insider := env.seedUser(t, model.Student, "Свой")
	outsider := env.seedUser(t, model.Student, "Чужой")
	classroom := env.seedClassroom(t, teacher.ID, insider.ID)
	env.seedScale(t)
	template := env.seedHomework(t, teacher.ID, classroom.ID)

	_, err := env.submissionSvc.Submit(outsider.ID, template.ID, SubmitReq{
		Answers: map[string]string{"1": "4"},
	})
	if !errors.Is(err, util.ErrNotInClassroom) {
		t.Fatalf("expected ErrNotInClassroom, got %v", err)
	}
}

func TestReviewSetsGradeFromScale(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.seedUser(t, model.Teacher, "Учитель")
	student := env.seedUser(t, model.Student, "Ученик")
	classroom := env.seedClassroom(t, teacher.ID, student.ID)
	env.seedScale(t) // 30/51/71/89
	template := env.seedHomework(t, teacher.ID, classroom.ID)

	submission, err := env.submissionSvc.Submit(student.ID, template.ID, SubmitReq{
		Answers: map[string]string{"1": "5", "2": "Paris", "3": "4.5"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if submission.AutoScore != 2 {
		t.Fatalf("auto score = %d, want 2", submission.AutoScore)
	}

	// 教师订正第 1 题答案并按百分制手工给分
	finalScore := 95
	reviewed, err := env.submissionSvc.Review(teacher.ID, submission.ID, ReviewReq{
		Answers:    map[string]string{"1": "4", "2": "Paris", "3": "4.5"},
		FinalScore: &finalScore,
		Comment:    "Молодец",
	}, false)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if reviewed.AutoScore != 3 {
		t.Fatalf("auto score after edit = %d, want 3", reviewed.AutoScore)
	}
	if reviewed.FinalScore != 95 {
		t.Fatalf("final score = %d, want 95 (stored verbatim)", reviewed.FinalScore)
	}
	if !reviewed.Graded {
		t.Fatal("submission must be marked graded")
	}
	if reviewed.Grade == nil || *reviewed.Grade != 5 {
		t.Fatalf("grade = %v, want 5 for score 95 on 30/51/71/89", reviewed.Grade)
	}
	if reviewed.TeacherComment != "Молодец" {
		t.Fatalf("comment = %q", reviewed.TeacherComment)
	}
}

func TestResubmitClearsReview(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.seedUser(t, model.Teacher, "Учитель")
	student := env.seedUser(t, model.Student, "Ученик")
	classroom := env.seedClassroom(t, teacher.ID, student.ID)
	env.seedScale(t)
	template := env.seedHomework(t, teacher.ID, classroom.ID)

	submission, err := env.submissionSvc.Submit(student.ID, template.ID, SubmitReq{
		Answers: map[string]string{"1": "4"},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	finalScore := 50
	if _, err := env.submissionSvc.Review(teacher.ID, submission.ID, ReviewReq{
		Answers:    map[string]string{"1": "4"},
		FinalScore: &finalScore,
		Comment:    "Перепиши",
	}, false); err != nil {
		t.Fatalf("review: %v", err)
	}

	resubmitted, err := env.submissionSvc.Submit(student.ID, template.ID, SubmitReq{
		Answers: map[string]string{"1": "4", "2": "Paris", "3": "4.5"},
	})
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if resubmitted.ID != submission.ID {
		t.Fatalf("resubmit created a new row: %d != %d", resubmitted.ID, submission.ID)
	}
	if resubmitted.Graded {
		t.Fatal("resubmission must reset graded flag")
	}
	if resubmitted.Grade != nil {
		t.Fatal("resubmission must clear grade")
	}
	if resubmitted.TeacherComment != "" {
		t.Fatalf("resubmission must clear comment, got %q", resubmitted.TeacherComment)
	}
	if resubmitted.FinalScore != resubmitted.AutoScore {
		t.Fatalf("final score = %d, want reset to auto score %d", resubmitted.FinalScore, resubmitted.AutoScore)
	}
}

func TestStatusListCoversRoster(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.seedUser(t, model.Teacher, "Учитель")
	active := env.seedUser(t, model.Student, "Активный")
	silent := env.seedUser(t, model.Student, "Молчун")
	classroom := env.seedClassroom(t, teacher.ID, active.ID, silent.ID)
	env.seedScale(t)
	template := env.seedHomework(t, teacher.ID, classroom.ID)

	if _, err := env.submissionSvc.Submit(active.ID, template.ID, SubmitReq{
		Answers: map[string]string{"1": "4", "2": "Paris", "3": "4.5"},
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	statuses, err := env.submissionSvc.StatusList(teacher.ID, template.ID, false)
	if err != nil {
		t.Fatalf("status list: %v", err)
	}
	if len(statuses) != 2 {
		t.Fatalf("status rows = %d, want full roster of 2", len(statuses))
	}

	byID := make(map[uint]SubmissionStatus, len(statuses))
	for _, s := range statuses {
		byID[s.StudentID] = s
	}
	if !byID[active.ID].Submitted || byID[active.ID].AutoScore != 3 {
		t.Fatalf("active student status wrong: %+v", byID[active.ID])
	}
	if byID[silent.ID].Submitted {
		t.Fatal("silent student must appear as not submitted")
	}
}

func TestStatusListNotOwner(t *testing.T) {
	env := newTestEnv(t)

	owner := env.seedUser(t, model.Teacher, "Хозяин")
	intruder := env.seedUser(t, model.Teacher, "Чужой")
	classroom := env.seedClassroom(t, owner.ID)
	env.seedScale(t)
	template := env.seedHomework(t, owner.ID, classroom.ID)

	if _, err := env.submissionSvc.StatusList(intruder.ID, template.ID, false); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	// 管理员例外
	if _, err := env.submissionSvc.StatusList(intruder.ID, template.ID, true); err != nil {
		t.Fatalf("admin should pass ownership check: %v", err)
	}
}
