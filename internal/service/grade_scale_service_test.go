package service

import (
	"errors"
	"testing"

	"homework_backend/internal/model"
	"homework_backend/internal/util"
)

func TestDeleteScaleInUse(t *testing.T) {
	env := newTestEnv(t)

	teacher := env.seedUser(t, model.Teacher, "Учитель")
	classroom := env.seedClassroom(t, teacher.ID)
	scale := env.seedScale(t)
	env.seedHomework(t, teacher.ID, classroom.ID)

	err := env.gradeScaleSvc.DeleteScale(scale.ID)
	if !errors.Is(err, util.ErrScaleInUse) {
		t.Fatalf("expected ErrScaleInUse, got %v", err)
	}

	unused, err := env.gradeScaleSvc.CreateScale(GradeScaleReq{Threshold2: 10, Threshold3: 20, Threshold4: 30, Threshold5: 40})
	if err != nil {
		t.Fatalf("create scale: %v", err)
	}
	if err := env.gradeScaleSvc.DeleteScale(unused.ID); err != nil {
		t.Fatalf("delete unused scale: %v", err)
	}
}

func TestUpdateScale(t *testing.T) {
	env := newTestEnv(t)

	scale := env.seedScale(t)
	updated, err := env.gradeScaleSvc.UpdateScale(scale.ID, GradeScaleReq{Threshold2: 20, Threshold3: 40, Threshold4: 60, Threshold5: 80})
	if err != nil {
		t.Fatalf("update scale: %v", err)
	}
	if updated.Threshold5 != 80 {
		t.Fatalf("threshold5 = %d, want 80", updated.Threshold5)
	}
}
