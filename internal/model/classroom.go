package model

// swagger:model Classroom
type Classroom struct {
	BaseModel
	Name      string `gorm:"size:64;not null" json:"name"`
	TeacherID uint   `gorm:"index;not null" json:"teacherId"`
}

func (Classroom) TableName() string {
	return "classrooms"
}
