package service

import (
	"homework_backend/internal/model"
	"homework_backend/internal/repository"
	"homework_backend/internal/util"

	"gorm.io/gorm"
)

type ClassroomService struct {
	ClassroomRepo *repository.ClassroomRepository
	ProfileRepo   *repository.ProfileRepository
	UserRepo      *repository.UserRepository
	DB            *gorm.DB
}

func NewClassroomService(classroomRepo *repository.ClassroomRepository, profileRepo *repository.ProfileRepository, userRepo *repository.UserRepository, db *gorm.DB) *ClassroomService {
	return &ClassroomService{
		ClassroomRepo: classroomRepo,
		ProfileRepo:   profileRepo,
		UserRepo:      userRepo,
		DB:            db,
	}
}

type CreateClassroomReq struct {
	Name       string `json:"name" binding:"required,max=64"`
	StudentIDs []uint `json:"studentIds"`
}

// CreateClassroom 建班并批量转入初始名册，两步在同一事务内完成
func (s *ClassroomService) CreateClassroom(teacherID uint, req CreateClassroomReq) (*model.Classroom, error) {
	classroom := &model.Classroom{
		Name:      req.Name,
		TeacherID: teacherID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.ClassroomRepo.Create(tx, classroom); err != nil {
			return err
		}
		return s.ProfileRepo.AssignClassroom(tx, req.StudentIDs, classroom.ID)
	})
	if err != nil {
		return nil, err
	}

	return classroom, nil
}

type AddStudentsReq struct {
	StudentIDs []uint `json:"studentIds" binding:"required,min=1"`
}

// AddStudents 班主任向自己的班级转入学生，非学生角色的 ID 被忽略
func (s *ClassroomService) AddStudents(teacherID, classroomID uint, req AddStudentsReq) error {
	classroom, err := s.ClassroomRepo.FindByID(classroomID)
	if err != nil {
		return util.ErrClassroomNotFound
	}
	if classroom.TeacherID != teacherID {
		return util.ErrPermissionDenied
	}

	return s.ProfileRepo.AssignClassroom(s.DB, req.StudentIDs, classroomID)
}

// ClassroomDetail 班级详情：班主任资料 + 学生名册
type ClassroomDetail struct {
	Classroom      *model.Classroom `json:"classroom"`
	TeacherProfile *model.Profile   `json:"teacherProfile,omitempty"`
	Students       []model.Profile  `json:"students"`
}

func (s *ClassroomService) GetClassroom(classroomID uint) (*ClassroomDetail, error) {
	classroom, err := s.ClassroomRepo.FindByID(classroomID)
	if err != nil {
		return nil, util.ErrClassroomNotFound
	}

	students, err := s.ProfileRepo.FindRoster(classroomID)
	if err != nil {
		return nil, err
	}

	detail := &ClassroomDetail{
		Classroom: classroom,
		Students:  students,
	}

	if teacherProfile, err := s.ProfileRepo.FindByUserID(classroom.TeacherID); err == nil {
		detail.TeacherProfile = teacherProfile
	}

	return detail, nil
}

func (s *ClassroomService) ListForTeacher(teacherID uint) ([]model.Classroom, error) {
	return s.ClassroomRepo.FindByTeacher(teacherID)
}
