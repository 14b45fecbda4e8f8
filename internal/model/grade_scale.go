package model

// GradeScale 四段升序阈值，低于 Threshold2 的分数落到 1 分档。
// 阈值顺序不做校验（沿用现有行为）。
// swagger:model GradeScale
type GradeScale struct {
	BaseModel
	TeacherID  uint `gorm:"index;not null" json:"teacherId"`
	Threshold2 int  `gorm:"default:30" json:"threshold2"`
	Threshold3 int  `gorm:"default:51" json:"threshold3"`
	Threshold4 int  `gorm:"default:71" json:"threshold4"`
	Threshold5 int  `gorm:"default:89" json:"threshold5"`
}

func (GradeScale) TableName() string {
	return "grade_scales"
}
