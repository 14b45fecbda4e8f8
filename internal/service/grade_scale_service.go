package service

import (
	"homework_backend/internal/grading"
	"homework_backend/internal/model"
	"homework_backend/internal/repository"
	"homework_backend/internal/util"
)

type GradeScaleService struct {
	ScaleRepo    *repository.GradeScaleRepository
	HomeworkRepo *repository.HomeworkRepository
}

func NewGradeScaleService(scaleRepo *repository.GradeScaleRepository, homeworkRepo *repository.HomeworkRepository) *GradeScaleService {
	return &GradeScaleService{
		ScaleRepo:    scaleRepo,
		HomeworkRepo: homeworkRepo,
	}
}

type GradeScaleReq struct {
	TeacherID  uint `json:"teacherId" binding:"required"`
	Threshold2 int  `json:"threshold2" binding:"gte=0"`
	Threshold3 int  `json:"threshold3" binding:"gte=0"`
	Threshold4 int  `json:"threshold4" binding:"gte=0"`
	Threshold5 int  `json:"threshold5" binding:"gte=0"`
}

func (s *GradeScaleService) CreateScale(req GradeScaleReq) (*model.GradeScale, error) {
	scale := &model.GradeScale{
		TeacherID:  req.TeacherID,
		Threshold2: req.Threshold2,
		Threshold3: req.Threshold3,
		Threshold4: req.Threshold4,
		Threshold5: req.Threshold5,
	}
	if err := s.ScaleRepo.Create(scale); err != nil {
		return nil, err
	}
	return scale, nil
}

func (s *GradeScaleService) ListScales() ([]model.GradeScale, error) {
	return s.ScaleRepo.List()
}

func (s *GradeScaleService) GetScale(id uint) (*model.GradeScale, error) {
	return s.ScaleRepo.FindByID(id)
}

func (s *GradeScaleService) UpdateScale(id uint, req GradeScaleReq) (*model.GradeScale, error) {
	scale, err := s.ScaleRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	scale.TeacherID = req.TeacherID
	scale.Threshold2 = req.Threshold2
	scale.Threshold3 = req.Threshold3
	scale.Threshold4 = req.Threshold4
	scale.Threshold5 = req.Threshold5

	if err := s.ScaleRepo.Update(scale); err != nil {
		return nil, err
	}
	return scale, nil
}

// DeleteScale 量表被任何作业引用时拒绝删除
func (s *GradeScaleService) DeleteScale(id uint) error {
	if _, err := s.ScaleRepo.FindByID(id); err != nil {
		return err
	}

	count, err := s.HomeworkRepo.CountByScale(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrScaleInUse
	}

	return s.ScaleRepo.Delete(id)
}

// Thresholds 把量表转成评分包的阈值结构
func Thresholds(scale *model.GradeScale) grading.Thresholds {
	return grading.Thresholds{
		T2: scale.Threshold2,
		T3: scale.Threshold3,
		T4: scale.Threshold4,
		T5: scale.Threshold5,
	}
}
