package repository

import (
	"homework_backend/internal/model"

	"gorm.io/gorm"
)

type GradeScaleRepository struct {
	DB *gorm.DB
}

func NewGradeScaleRepository(db *gorm.DB) *GradeScaleRepository {
	return &GradeScaleRepository{DB: db}
}

func (r *GradeScaleRepository) Create(scale *model.GradeScale) error {
	return r.DB.Create(scale).Error
}

func (r *GradeScaleRepository) FindByID(id uint) (*model.GradeScale, error) {
	var scale model.GradeScale
	err := r.DB.First(&scale, id).Error
	return &scale, err
}

func (r *GradeScaleRepository) List() ([]model.GradeScale, error) {
	var scales []model.GradeScale
	err := r.DB.Order("id").Find(&scales).Error
	return scales, err
}

func (r *GradeScaleRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.GradeScale{}).Count(&count).Error
	return count, err
}

// FirstForTeacher 优先取教师自己的量表，没有则取系统里最早的一条
func (r *GradeScaleRepository) FirstForTeacher(teacherID uint) (*model.GradeScale, error) {
	var scale model.GradeScale
	err := r.DB.Where("teacher_id = ?", teacherID).Order("id").First(&scale).Error
	if err == gorm.ErrRecordNotFound {
		err = r.DB.Order("id").First(&scale).Error
	}
	return &scale, err
}

func (r *GradeScaleRepository) Update(scale *model.GradeScale) error {
	return r.DB.Save(scale).Error
}

func (r *GradeScaleRepository) Delete(id uint) error {
	return r.DB.Delete(&model.GradeScale{}, id).Error
}
