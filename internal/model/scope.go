package model

// Scope identifies one question bank: subject, class level, term and session.
// Test codes, results and teacher assignments all point at a scope.
type Scope struct {
	SubjectID  uint   `json:"subject_id"`
	ClassLevel string `json:"class_level"`
	TermID     uint   `json:"term_id"`
	SessionID  uint   `json:"session_id"`
}

type TestType string

const (
	TestTypeCA          TestType = "CA"
	TestTypeExamination TestType = "Examination"
)

func (t TestType) Valid() bool {
	return t == TestTypeCA || t == TestTypeExamination
}
