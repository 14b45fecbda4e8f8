package model

import (
	"encoding/json"
	"time"
)

// StudentSubmission 每个 (student, template) 对至多一条，重复提交原地覆盖。
// swagger:model StudentSubmission
type StudentSubmission struct {
	BaseModel
	StudentID      uint            `gorm:"not null;uniqueIndex:idx_student_template" json:"studentId"`
	TemplateID     uint            `gorm:"not null;uniqueIndex:idx_student_template;index" json:"templateId"`
	Answers        json.RawMessage `gorm:"type:json" json:"answers"`
	AutoScore      int             `gorm:"default:0" json:"autoScore"`
	FinalScore     int             `gorm:"default:0" json:"finalScore"`
	Grade          *int            `json:"grade,omitempty"`
	Graded         bool            `gorm:"default:false" json:"graded"`
	TeacherComment string          `gorm:"type:text" json:"teacherComment"`
	SubmittedAt    time.Time       `json:"submittedAt"`
}

func (StudentSubmission) TableName() string {
	return "student_submissions"
}
