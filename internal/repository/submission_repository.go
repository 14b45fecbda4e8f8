package repository

import (
	"homework_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(submission *model.StudentSubmission) error {
	return r.DB.Create(submission).Error
}

func (r *SubmissionRepository) Save(submission *model.StudentSubmission) error {
	return r.DB.Save(submission).Error
}

func (r *SubmissionRepository) FindByID(id uint) (*model.StudentSubmission, error) {
	var submission model.StudentSubmission
	err := r.DB.First(&submission, id).Error
	return &submission, err
}

func (r *SubmissionRepository) FindByStudentAndTemplate(studentID, templateID uint) (*model.StudentSubmission, error) {
	var submission model.StudentSubmission
	err := r.DB.Where("student_id = ? AND template_id = ?", studentID, templateID).First(&submission).Error
	return &submission, err
}

func (r *SubmissionRepository) FindByTemplate(templateID uint) ([]model.StudentSubmission, error) {
	var submissions []model.StudentSubmission
	err := r.DB.Where("template_id = ?", templateID).Find(&submissions).Error
	return submissions, err
}

// FindByStudent 返回学生的全部提交，按作业截止日期排序（图表按时间轴消费）
func (r *SubmissionRepository) FindByStudent(studentID uint) ([]model.StudentSubmission, error) {
	var submissions []model.StudentSubmission
	err := r.DB.
		Joins("JOIN homework_templates ON homework_templates.id = student_submissions.template_id").
		Where("student_submissions.student_id = ?", studentID).
		Order("homework_templates.deadline").
		Find(&submissions).Error
	return submissions, err
}

type TemplateStats struct {
	Submitted    int64
	Graded       int64
	AverageScore float64
}

// StatsByTemplate 汇总单个作业的提交情况
func (r *SubmissionRepository) StatsByTemplate(templateID uint) (*TemplateStats, error) {
	var stats TemplateStats

	err := r.DB.Model(&model.StudentSubmission{}).
		Where("template_id = ?", templateID).
		Count(&stats.Submitted).Error
	if err != nil {
		return nil, err
	}

	err = r.DB.Model(&model.StudentSubmission{}).
		Where("template_id = ? AND graded = ?", templateID, true).
		Count(&stats.Graded).Error
	if err != nil {
		return nil, err
	}

	if stats.Submitted > 0 {
		err = r.DB.Model(&model.StudentSubmission{}).
			Where("template_id = ?", templateID).
			Select("AVG(final_score)").
			Scan(&stats.AverageScore).Error
		if err != nil {
			return nil, err
		}
	}

	return &stats, nil
}
