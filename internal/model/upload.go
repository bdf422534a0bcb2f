package model

import (
	"gorm.io/datatypes"
)

// QuestionUpload records one CSV bulk upload and its outcome.
// swagger:model QuestionUpload
type QuestionUpload struct {
	BaseModel
	TeacherID    uint           `gorm:"not null;index" json:"teacher_id"`
	SubjectID    uint           `gorm:"not null" json:"subject_id"`
	ClassLevel   string         `gorm:"size:20;not null" json:"class_level"`
	TermID       uint           `gorm:"not null" json:"term_id"`
	SessionID    uint           `gorm:"not null" json:"session_id"`
	FileName     string         `gorm:"size:255" json:"file_name"`
	FileURL      string         `gorm:"size:500" json:"file_url"`
	CreatedCount int            `json:"created_count"`
	SkippedCount int            `json:"skipped_count"`
	TotalRows    int            `json:"total_rows"`
	Errors       datatypes.JSON `json:"errors"`
}

func (QuestionUpload) TableName() string {
	return "question_uploads"
}
