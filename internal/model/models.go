package model

// All returns every persisted model, in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Subject{},
		&Term{},
		&AcademicSession{},
		&TeacherAssignment{},
		&Question{},
		&TestCodeBatch{},
		&TestCode{},
		&TestResult{},
		&TestAnswer{},
		&QuestionUpload{},
	}
}
