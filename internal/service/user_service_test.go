package service

import (
	"errors"
	"testing"

	"homework_backend/internal/model"
	"homework_backend/internal/util"
)

func strPtr(s string) *string { return &s }

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, env.profiles, env.classrooms)

	user := env.seedUser(t, model.Student, "Старая")

	profile, err := svc.UpdateProfile(user.ID, UpdateProfileReq{
		LastName:  strPtr("Новая"),
		BirthDate: strPtr("2010-09-01"),
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if profile.LastName != "Новая" {
		t.Fatalf("last name = %q", profile.LastName)
	}
	if profile.BirthDate == nil || profile.BirthDate.Format(util.DateFormat) != "2010-09-01" {
		t.Fatalf("birth date = %v", profile.BirthDate)
	}
	// 未传的字段保持原值
	if profile.FirstName != "Test" {
		t.Fatalf("first name changed unexpectedly: %q", profile.FirstName)
	}
}

func TestUpdateProfileBadDate(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, env.profiles, env.classrooms)

	user := env.seedUser(t, model.Student, "Ученик")

	_, err := svc.UpdateProfile(user.ID, UpdateProfileReq{BirthDate: strPtr("01.09.2010")})
	var verr *util.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestGetProfileByRole(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, env.profiles, env.classrooms)

	teacher := env.seedUser(t, model.Teacher, "Учитель")
	student := env.seedUser(t, model.Student, "Ученик")
	classroom := env.seedClassroom(t, teacher.ID, student.ID)

	teacherView, err := svc.GetProfile(teacher.ID)
	if err != nil {
		t.Fatalf("teacher profile: %v", err)
	}
	if len(teacherView.TeacherClassrooms) != 1 || teacherView.TeacherClassrooms[0].ID != classroom.ID {
		t.Fatalf("teacher classrooms = %+v", teacherView.TeacherClassrooms)
	}

	studentView, err := svc.GetProfile(student.ID)
	if err != nil {
		t.Fatalf("student profile: %v", err)
	}
	if studentView.StudentClassroom == nil || studentView.StudentClassroom.ID != classroom.ID {
		t.Fatalf("student classroom = %+v", studentView.StudentClassroom)
	}
}
