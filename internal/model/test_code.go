package model

import (
	"time"
)

type TestCodeStatus string

const (
	CodeStatusActive TestCodeStatus = "active"
	CodeStatusUsing  TestCodeStatus = "using"
	CodeStatusUsed   TestCodeStatus = "used"
)

// TestSettings are shared by a batch and every code issued from it.
type TestSettings struct {
	Title            string     `gorm:"size:255;not null" json:"title"`
	SubjectID        uint       `gorm:"not null;index" json:"subject_id"`
	ClassLevel       string     `gorm:"size:20;not null" json:"class_level"`
	TermID           uint       `gorm:"not null" json:"term_id"`
	SessionID        uint       `gorm:"not null" json:"session_id"`
	TestType         TestType   `gorm:"size:20;not null;default:'CA'" json:"test_type"`
	DurationMinutes  int        `gorm:"not null" json:"duration_minutes"`
	TotalQuestions   int        `gorm:"not null" json:"total_questions"`
	ScorePerQuestion float64    `gorm:"not null;default:1" json:"score_per_question"`
	PassScore        float64    `gorm:"default:0" json:"pass_score"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"`
}

func (s TestSettings) Scope() Scope {
	return Scope{SubjectID: s.SubjectID, ClassLevel: s.ClassLevel, TermID: s.TermID, SessionID: s.SessionID}
}

func (s TestSettings) MaxScore() float64 {
	return float64(s.TotalQuestions) * s.ScorePerQuestion
}

// swagger:model TestCodeBatch
type TestCodeBatch struct {
	BaseModel
	TestSettings
	CodeCount   int  `gorm:"not null" json:"code_count"`
	IsActive    bool `gorm:"default:true" json:"is_active"`
	IsActivated bool `gorm:"default:false" json:"is_activated"`
	CreatedBy   uint `gorm:"not null" json:"created_by"`

	Subject *Subject   `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Codes   []TestCode `gorm:"foreignKey:BatchID" json:"codes,omitempty"`
}

func (TestCodeBatch) TableName() string {
	return "test_code_batches"
}

// swagger:model TestCode
type TestCode struct {
	BaseModel
	Code string `gorm:"size:32;uniqueIndex;not null" json:"code"`
	TestSettings
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	IsActivated bool           `gorm:"default:false" json:"is_activated"`
	IsUsed      bool           `gorm:"default:false;index" json:"is_used"`
	Status      TestCodeStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	ClaimedBy   *uint          `json:"claimed_by,omitempty"`
	ClaimedAt   *time.Time     `json:"claimed_at,omitempty"`
	UsedBy      *uint          `json:"used_by,omitempty"`
	UsedAt      *time.Time     `json:"used_at,omitempty"`
	BatchID     *uint          `gorm:"index" json:"batch_id,omitempty"`
	CreatedBy   uint           `gorm:"not null" json:"created_by"`

	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

func (TestCode) TableName() string {
	return "test_codes"
}

func (c *TestCode) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

func (c *TestCode) ClaimedByOther(studentID uint) bool {
	return c.Status == CodeStatusUsing && c.ClaimedBy != nil && *c.ClaimedBy != studentID
}
