package service

import (
	"homework_backend/internal/model"
	"homework_backend/internal/repository"
	"homework_backend/internal/util"
	"time"
)

type UserService struct {
	UserRepo      *repository.UserRepository
	ProfileRepo   *repository.ProfileRepository
	ClassroomRepo *repository.ClassroomRepository
}

func NewUserService(userRepo *repository.UserRepository, profileRepo *repository.ProfileRepository, classroomRepo *repository.ClassroomRepository) *UserService {
	return &UserService{
		UserRepo:      userRepo,
		ProfileRepo:   profileRepo,
		ClassroomRepo: classroomRepo,
	}
}

// ProfileView 个人主页视图：教师带自己管理的班级，学生带所属班级
type ProfileView struct {
	User              *model.User       `json:"user"`
	Profile           *model.Profile    `json:"profile"`
	TeacherClassrooms []model.Classroom `json:"teacherClassrooms,omitempty"`
	StudentClassroom  *model.Classroom  `json:"studentClassroom,omitempty"`
}

func (s *UserService) GetProfile(userID uint) (*ProfileView, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	profile, err := s.ProfileRepo.FindByUserID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	view := &ProfileView{User: user, Profile: profile}

	switch user.Role {
	case model.Teacher:
		classrooms, err := s.ClassroomRepo.FindByTeacher(userID)
		if err != nil {
			return nil, err
		}
		view.TeacherClassrooms = classrooms
	case model.Student:
		if profile.ClassroomID != nil {
			classroom, err := s.ClassroomRepo.FindByID(*profile.ClassroomID)
			if err == nil {
				view.StudentClassroom = classroom
			}
		}
	}

	return view, nil
}

type UpdateProfileReq struct {
	LastName   *string `json:"lastName"`
	FirstName  *string `json:"firstName"`
	Patronymic *string `json:"patronymic"`
	BirthDate  *string `json:"birthDate"` // YYYY-MM-DD
}

// UpdateProfile 只允许改姓名和出生日期，角色和班级归属不在此处变更
func (s *UserService) UpdateProfile(userID uint, req UpdateProfileReq) (*model.Profile, error) {
	profile, err := s.ProfileRepo.FindByUserID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.Patronymic != nil {
		profile.Patronymic = *req.Patronymic
	}
	if req.BirthDate != nil {
		if *req.BirthDate == "" {
			profile.BirthDate = nil
		} else {
			birthDate, err := time.Parse(util.DateFormat, *req.BirthDate)
			if err != nil {
				verr := util.NewValidationError()
				verr.Add("birthDate", "invalid date, expected YYYY-MM-DD")
				return nil, verr
			}
			profile.BirthDate = &birthDate
		}
	}

	if err := s.ProfileRepo.Update(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
