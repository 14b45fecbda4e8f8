package repository

import (
	"homework_backend/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) Create(tx *gorm.DB, profile *model.Profile) error {
	return tx.Create(profile).Error
}

func (r *ProfileRepository) FindByUserID(userID uint) (*model.Profile, error) {
	var profile model.Profile
	err := r.DB.Where("user_id = ?", userID).First(&profile).Error
	return &profile, err
}

func (r *ProfileRepository) Update(profile *model.Profile) error {
	return r.DB.Save(profile).Error
}

// FindRoster 返回班级的学生名册，按姓、名排序
func (r *ProfileRepository) FindRoster(classroomID uint) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.DB.
		Joins("JOIN users ON users.id = profiles.user_id").
		Where("profiles.classroom_id = ? AND users.role = ?", classroomID, model.Student).
		Order("profiles.last_name, profiles.first_name").
		Find(&profiles).Error
	return profiles, err
}

// AssignClassroom 把给定用户中角色为学生的批量转入班级。
// 学生最多属于一个班级，已有归属的直接改写。
func (r *ProfileRepository) AssignClassroom(tx *gorm.DB, userIDs []uint, classroomID uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	students := tx.Model(&model.User{}).
		Select("id").
		Where("id IN ? AND role = ?", userIDs, model.Student)

	return tx.Model(&model.Profile{}).
		Where("user_id IN (?)", students).
		Update("classroom_id", classroomID).Error
}
