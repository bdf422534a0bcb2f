package model

// swagger:model Subject
type Subject struct {
	BaseModel
	Name     string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Code     string `gorm:"size:20" json:"code"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

func (Subject) TableName() string {
	return "subjects"
}

// swagger:model Term
type Term struct {
	BaseModel
	Name     string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	IsActive bool   `gorm:"default:true" json:"is_active"`
}

func (Term) TableName() string {
	return "terms"
}

// AcademicSession is a school year such as "2025/2026".
// swagger:model AcademicSession
type AcademicSession struct {
	BaseModel
	Name      string `gorm:"size:20;uniqueIndex;not null" json:"name"`
	IsCurrent bool   `gorm:"default:false" json:"is_current"`
}

func (AcademicSession) TableName() string {
	return "sessions"
}

// swagger:model TeacherAssignment
type TeacherAssignment struct {
	BaseModel
	TeacherID  uint   `gorm:"not null;uniqueIndex:idx_assignment_scope" json:"teacher_id"`
	SubjectID  uint   `gorm:"not null;uniqueIndex:idx_assignment_scope" json:"subject_id"`
	ClassLevel string `gorm:"size:20;not null;uniqueIndex:idx_assignment_scope" json:"class_level"`
	TermID     uint   `gorm:"not null;uniqueIndex:idx_assignment_scope" json:"term_id"`
	SessionID  uint   `gorm:"not null;uniqueIndex:idx_assignment_scope" json:"session_id"`

	Teacher *User            `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Subject *Subject         `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Term    *Term            `gorm:"foreignKey:TermID" json:"term,omitempty"`
	Session *AcademicSession `gorm:"foreignKey:SessionID" json:"session,omitempty"`
}

func (TeacherAssignment) TableName() string {
	return "teacher_assignments"
}
