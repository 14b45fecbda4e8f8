package service

import (
	"encoding/json"
	"errors"
	"testing"

	"homework_backend/internal/grading"
	"homework_backend/internal/model"
	"homework_backend/internal/util"
)

func TestCreateHomeworkWithoutAnyScale(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.seedUser(t, model.Teacher, "Учитель")
	classroom := env.seedClassroom(t, teacher.ID)

	_, err := env.homeworkSvc.CreateHomework(teacher.ID, classroom.ID, CreateHomeworkReq{
		Title:        "Без шкалы",
		AssignedDate: "2026-02-01",
		Deadline:     "2026-02-08",
		Questions:    []QuestionRow{{Number: 1, Format: "text", Answer: "x"}},
	})
	if !errors.Is(err, util.ErrNoGradeScale) {
		t.Fatalf("expected ErrNoGradeScale, got %v", err)
	}
}

func TestCreateHomeworkCanonicalForm(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.seedUser(t, model.Teacher, "Учитель")
	classroom := env.seedClassroom(t, teacher.ID)
	env.seedScale(t)

	// 乱序的行、标记删除的行、带空格的答案
	template, err := env.homeworkSvc.CreateHomework(teacher.ID, classroom.ID, CreateHomeworkReq{
		Title:        "Контрольная",
		AssignedDate: "2026-03-01",
		Deadline:     "2026-03-10",
		Questions: []QuestionRow{
			{Number: 5, Format: "float", Answer: " 2,5 "},
			{Number: 2, Format: "text", Answer: "Oslo"},
			{Number: 9, Format: "integer", Answer: "7", Delete: true},
			{Number: 1, Format: "integer", Answer: "10"},
		},
	})
	if err != nil {
		t.Fatalf("create homework: %v", err)
	}

	var questions []grading.Question
	if err := json.Unmarshal(template.Questions, &questions); err != nil {
		t.Fatalf("unmarshal questions: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("question count = %d, want 3 (deleted row kept?)", len(questions))
	}
	for i, want := range []int{1, 2, 5} {
		if questions[i].Number != want {
			t.Fatalf("questions[%d].Number = %d, want %d", i, questions[i].Number, want)
		}
	}
	if template.MaxScore != 3 {
		t.Fatalf("max score = %d, want 3", template.MaxScore)
	}

	var answerKey map[string]string
	if err := json.Unmarshal(template.AnswerKey, &answerKey); err != nil {
		t.Fatalf("unmarshal answer key: %v", err)
	}
	if answerKey["5"] != "2,5" {
		t.Fatalf("answer for question 5 = %q, want trimmed %q", answerKey["5"], "2,5")
	}
	if _, ok := answerKey["9"]; ok {
		t.Fatal("deleted question leaked into answer key")
	}
}

func TestCreateHomeworkRejectsWholeForm(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.seedUser(t, model.Teacher, "Учитель")
	classroom := env.seedClassroom(t, teacher.ID)
	env.seedScale(t)

	_, err := env.homeworkSvc.CreateHomework(teacher.ID, classroom.ID, CreateHomeworkReq{
		Title:        "Дубли",
		AssignedDate: "2026-03-01",
		Deadline:     "2026-03-10",
		Questions: []QuestionRow{
			{Number: 1, Format: "integer", Answer: "1"},
			{Number: 1, Format: "text", Answer: "dup"},
			{Number: 2, Format: "decimal", Answer: "bad format"},
			{Number: -3, Format: "text", Answer: "bad number"},
		},
	})

	var verr *util.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 3 {
		t.Fatalf("field errors = %d, want 3: %v", len(verr.Fields), verr.Fields)
	}

	// 整次提交被拒，不允许部分落库
	templates, err := env.homework.FindByClassroom(classroom.ID)
	if err != nil {
		t.Fatalf("list homework: %v", err)
	}
	if len(templates) != 0 {
		t.Fatalf("homework persisted despite validation failure: %d", len(templates))
	}
}

func TestCreateHomeworkNotOwner(t *testing.T) {
	env := newTestEnv(t)

	owner := env.seedUser(t, model.Teacher, "Хозяин")
	intruder := env.seedUser(t, model.Teacher, "Чужой")
	classroom := env.seedClassroom(t, owner.ID)
	env.seedScale(t)

	_, err := env.homeworkSvc.CreateHomework(intruder.ID, classroom.ID, CreateHomeworkReq{
		Title:        "Чужой класс",
		AssignedDate: "2026-03-01",
		Deadline:     "2026-03-10",
		Questions:    []QuestionRow{{Number: 1, Format: "text", Answer: "x"}},
	})
	if !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestGetForUserHidesAnswerKey(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.seedUser(t, model.Teacher, "Учитель")
	student := env.seedUser(t, model.Student, "Ученик")
	outsider := env.seedUser(t, model.Student, "Посторонний")
	classroom := env.seedClassroom(t, teacher.ID, student.ID)
	env.seedScale(t)
	template := env.seedHomework(t, teacher.ID, classroom.ID)

	teacherView, err := env.homeworkSvc.GetForUser(&util.Claims{UserID: teacher.ID, Role: model.Teacher}, template.ID)
	if err != nil {
		t.Fatalf("teacher view: %v", err)
	}
	if teacherView.AnswerKey == nil {
		t.Fatal("teacher view missing answer key")
	}

	studentView, err := env.homeworkSvc.GetForUser(&util.Claims{UserID: student.ID, Role: model.Student}, template.ID)
	if err != nil {
		t.Fatalf("student view: %v", err)
	}
	if studentView.AnswerKey != nil {
		t.Fatal("answer key leaked to student view")
	}
	if len(studentView.Questions) != 3 {
		t.Fatalf("student sees %d questions, want 3", len(studentView.Questions))
	}

	_, err = env.homeworkSvc.GetForUser(&util.Claims{UserID: outsider.ID, Role: model.Student}, template.ID)
	if !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for outsider, got %v", err)
	}
}

func TestListForUserByRole(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.seedUser(t, model.Teacher, "Учитель")
	student := env.seedUser(t, model.Student, "Ученик")
	loner := env.seedUser(t, model.Student, "Безкласса")
	classroom := env.seedClassroom(t, teacher.ID, student.ID)
	env.seedScale(t)
	env.seedHomework(t, teacher.ID, classroom.ID)

	forTeacher, err := env.homeworkSvc.ListForUser(&util.Claims{UserID: teacher.ID, Role: model.Teacher})
	if err != nil {
		t.Fatalf("teacher list: %v", err)
	}
	if len(forTeacher) != 1 {
		t.Fatalf("teacher sees %d templates, want 1", len(forTeacher))
	}

	forStudent, err := env.homeworkSvc.ListForUser(&util.Claims{UserID: student.ID, Role: model.Student})
	if err != nil {
		t.Fatalf("student list: %v", err)
	}
	if len(forStudent) != 1 {
		t.Fatalf("student sees %d templates, want 1", len(forStudent))
	}

	forLoner, err := env.homeworkSvc.ListForUser(&util.Claims{UserID: loner.ID, Role: model.Student})
	if err != nil {
		t.Fatalf("loner list: %v", err)
	}
	if len(forLoner) != 0 {
		t.Fatalf("student without classroom sees %d templates, want 0", len(forLoner))
	}
}
