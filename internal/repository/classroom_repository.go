package repository

import (
	"homework_backend/internal/model"

	"gorm.io/gorm"
)

type ClassroomRepository struct {
	DB *gorm.DB
}

func NewClassroomRepository(db *gorm.DB) *ClassroomRepository {
	return &ClassroomRepository{DB: db}
}

func (r *ClassroomRepository) Create(tx *gorm.DB, classroom *model.Classroom) error {
	return tx.Create(classroom).Error
}

func (r *ClassroomRepository) FindByID(id uint) (*model.Classroom, error) {
	var classroom model.Classroom
	err := r.DB.First(&classroom, id).Error
	return &classroom, err
}

func (r *ClassroomRepository) FindByTeacher(teacherID uint) ([]model.Classroom, error) {
	var classrooms []model.Classroom
	err := r.DB.Where("teacher_id = ?", teacherID).Order("name").Find(&classrooms).Error
	return classrooms, err
}
