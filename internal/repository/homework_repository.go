package repository

import (
	"homework_backend/internal/model"

	"gorm.io/gorm"
)

type HomeworkRepository struct {
	DB *gorm.DB
}

func NewHomeworkRepository(db *gorm.DB) *HomeworkRepository {
	return &HomeworkRepository{DB: db}
}

func (r *HomeworkRepository) Create(template *model.HomeworkTemplate) error {
	return r.DB.Create(template).Error
}

func (r *HomeworkRepository) FindByID(id uint) (*model.HomeworkTemplate, error) {
	var template model.HomeworkTemplate
	err := r.DB.First(&template, id).Error
	return &template, err
}

func (r *HomeworkRepository) FindByClassroom(classroomID uint) ([]model.HomeworkTemplate, error) {
	var templates []model.HomeworkTemplate
	err := r.DB.Where("classroom_id = ?", classroomID).Order("deadline").Find(&templates).Error
	return templates, err
}

func (r *HomeworkRepository) FindByClassrooms(classroomIDs []uint) ([]model.HomeworkTemplate, error) {
	if len(classroomIDs) == 0 {
		return nil, nil
	}
	var templates []model.HomeworkTemplate
	err := r.DB.Where("classroom_id IN ?", classroomIDs).Order("deadline").Find(&templates).Error
	return templates, err
}

func (r *HomeworkRepository) UpdateAttachment(id uint, url string) error {
	return r.DB.Model(&model.HomeworkTemplate{}).
		Where("id = ?", id).
		Update("attachment_url", url).Error
}

// CountByScale 统计引用某评分量表的作业数，量表被引用时禁止删除
func (r *HomeworkRepository) CountByScale(scaleID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.HomeworkTemplate{}).
		Where("grade_scale_id = ?", scaleID).
		Count(&count).Error
	return count, err
}
