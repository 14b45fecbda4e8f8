package model

import (
	"encoding/json"
	"time"
)

// HomeworkTemplate 的 Questions 只存学生可见的题目结构（题号+答案格式），
// AnswerKey 是题号到标准答案的映射，任何接口都不得返回给学生。
// swagger:model HomeworkTemplate
type HomeworkTemplate struct {
	BaseModel
	Title         string          `gorm:"size:64;not null" json:"title"`
	Description   string          `gorm:"type:text" json:"description"`
	ClassroomID   uint            `gorm:"index;not null" json:"classroomId"`
	AttachmentURL string          `gorm:"size:255" json:"attachmentUrl,omitempty"`
	Questions     json.RawMessage `gorm:"type:json" json:"questions"`
	AnswerKey     json.RawMessage `gorm:"type:json" json:"-"`
	AssignedDate  time.Time       `json:"assignedDate"`
	Deadline      time.Time       `json:"deadline"`
	MaxScore      int             `gorm:"default:0" json:"maxScore"`
	GradeScaleID  uint            `gorm:"index;not null" json:"gradeScaleId"`
}

func (HomeworkTemplate) TableName() string {
	return "homework_templates"
}
