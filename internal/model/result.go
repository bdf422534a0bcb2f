package model

import (
	"time"
)

// TestResult is unique per (student, code) and per (student, scope) so an
// equivalent test cannot be retaken with a different code.
// swagger:model TestResult
type TestResult struct {
	BaseModel
	TestCodeID           uint      `gorm:"not null;uniqueIndex:idx_result_student_code" json:"test_code_id"`
	StudentID            uint      `gorm:"not null;uniqueIndex:idx_result_student_code;uniqueIndex:idx_result_student_scope" json:"student_id"`
	SubjectID            uint      `gorm:"not null;uniqueIndex:idx_result_student_scope" json:"subject_id"`
	ClassLevel           string    `gorm:"size:20;not null;uniqueIndex:idx_result_student_scope" json:"class_level"`
	TermID               uint      `gorm:"not null;uniqueIndex:idx_result_student_scope" json:"term_id"`
	SessionID            uint      `gorm:"not null;uniqueIndex:idx_result_student_scope" json:"session_id"`
	Score                float64   `gorm:"not null" json:"score"`
	TotalQuestions       int       `gorm:"not null" json:"total_questions"`
	CorrectAnswers       int       `gorm:"not null" json:"correct_answers"`
	ScorePerQuestion     float64   `gorm:"not null" json:"score_per_question"`
	TimeTaken            int       `gorm:"not null" json:"time_taken"`
	GradedWithoutShuffle bool      `gorm:"default:false" json:"graded_without_shuffle"`
	SubmittedAt          time.Time `gorm:"not null" json:"submitted_at"`

	Answers  []TestAnswer `gorm:"foreignKey:ResultID" json:"answers,omitempty"`
	TestCode *TestCode    `gorm:"foreignKey:TestCodeID" json:"test_code,omitempty"`
	Student  *User        `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (TestResult) TableName() string {
	return "test_results"
}

func (r *TestResult) MaxScore() float64 {
	return float64(r.TotalQuestions) * r.ScorePerQuestion
}

// swagger:model TestAnswer
type TestAnswer struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ResultID       uint   `gorm:"not null;index" json:"result_id"`
	QuestionID     uint   `gorm:"not null;index" json:"question_id"`
	SelectedAnswer string `gorm:"size:1" json:"selected_answer"`
	IsCorrect      bool   `gorm:"default:false" json:"is_correct"`
}

func (TestAnswer) TableName() string {
	return "test_answers"
}
