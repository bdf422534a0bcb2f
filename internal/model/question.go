package model

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
)

// swagger:model Question
type Question struct {
	BaseModel
	SubjectID     uint         `gorm:"not null;index:idx_question_scope" json:"subject_id"`
	ClassLevel    string       `gorm:"size:20;not null;index:idx_question_scope" json:"class_level"`
	TermID        uint         `gorm:"not null;index:idx_question_scope" json:"term_id"`
	SessionID     uint         `gorm:"not null;index:idx_question_scope" json:"session_id"`
	QuestionText  string       `gorm:"type:text;not null" json:"question_text"`
	OptionA       string       `gorm:"type:text;not null" json:"option_a"`
	OptionB       string       `gorm:"type:text;not null" json:"option_b"`
	OptionC       *string      `gorm:"type:text" json:"option_c"`
	OptionD       *string      `gorm:"type:text" json:"option_d"`
	CorrectAnswer string       `gorm:"size:1;not null" json:"correct_answer"`
	QuestionType  QuestionType `gorm:"size:20;not null;default:'multiple_choice'" json:"question_type"`
	TestType      TestType     `gorm:"size:20;not null;default:'CA'" json:"test_type"`
	TeacherID     uint         `gorm:"not null;index" json:"teacher_id"`

	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Teacher *User    `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

func (q *Question) Scope() Scope {
	return Scope{SubjectID: q.SubjectID, ClassLevel: q.ClassLevel, TermID: q.TermID, SessionID: q.SessionID}
}

// Options returns the stored option texts keyed by label. C and D are absent
// for true/false questions.
func (q *Question) Options() map[string]string {
	opts := map[string]string{"A": q.OptionA, "B": q.OptionB}
	if q.OptionC != nil {
		opts["C"] = *q.OptionC
	}
	if q.OptionD != nil {
		opts["D"] = *q.OptionD
	}
	return opts
}

// OptionLabels returns the labels in stored order.
func (q *Question) OptionLabels() []string {
	if q.QuestionType == TrueFalse {
		return []string{"A", "B"}
	}
	return []string{"A", "B", "C", "D"}
}
