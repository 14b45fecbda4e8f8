package model

import (
	"time"
)

// Profile 与 User 一对一，注册时在同一事务内创建。
// ClassroomID 仅学生使用：一个学生最多属于一个班级。
// swagger:model Profile
type Profile struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex;not null" json:"userId"`
	LastName    string     `gorm:"size:100;not null" json:"lastName"`
	FirstName   string     `gorm:"size:100;not null" json:"firstName"`
	Patronymic  string     `gorm:"size:100" json:"patronymic"`
	BirthDate   *time.Time `json:"birthDate,omitempty"`
	ClassroomID *uint      `gorm:"index" json:"classroomId,omitempty"`
}

func (Profile) TableName() string {
	return "profiles"
}
