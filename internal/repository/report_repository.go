package repository

import (
	"cbt_portal_backend/internal/model"
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// ReportRepository runs the read-only aggregate queries behind the dashboards
// with sqlx over the same connection pool gorm uses.
type ReportRepository struct {
	db *sqlx.DB
}

// sqlxDriverName maps a gorm dialector name to the driver name sqlx uses to
// pick a bind variable style.
func sqlxDriverName(dialect string) string {
	switch dialect {
	case "postgres":
		return "postgres"
	case "sqlite":
		return "sqlite3"
	default:
		return "mysql"
	}
}

func NewReportRepository(db *gorm.DB) (*ReportRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &ReportRepository{db: sqlx.NewDb(sqlDB, sqlxDriverName(db.Dialector.Name()))}, nil
}

type TypeCount struct {
	QuestionType string `db:"question_type" json:"question_type"`
	Count        int64  `db:"count" json:"count"`
}

type CodeCounts struct {
	Total     int64 `db:"total" json:"total"`
	Active    int64 `db:"active" json:"active"`
	Inactive  int64 `db:"inactive" json:"inactive"`
	Activated int64 `db:"activated" json:"activated"`
	Used      int64 `db:"used" json:"used"`
	InUse     int64 `db:"in_use" json:"in_use"`
}

type UserCounts struct {
	Total    int64 `db:"total" json:"total"`
	Active   int64 `db:"active" json:"active"`
	Inactive int64 `db:"inactive" json:"inactive"`
}

type SubjectActivity struct {
	SubjectID     uint   `db:"subject_id" json:"subject_id"`
	Name          string `db:"name" json:"name"`
	QuestionCount int64  `db:"question_count" json:"question_count"`
}

type AssignmentQuestionCount struct {
	AssignmentID  uint   `db:"assignment_id" json:"assignment_id"`
	SubjectID     uint   `db:"subject_id" json:"subject_id"`
	SubjectName   string `db:"subject_name" json:"subject_name"`
	ClassLevel    string `db:"class_level" json:"class_level"`
	TermName      string `db:"term_name" json:"term_name"`
	SessionName   string `db:"session_name" json:"session_name"`
	QuestionCount int64  `db:"question_count" json:"question_count"`
}

func (r *ReportRepository) QuestionsByType(ctx context.Context) ([]TypeCount, error) {
	var rows []TypeCount
	err := r.db.SelectContext(ctx, &rows, `
		SELECT question_type, COUNT(*) AS count
		FROM questions
		GROUP BY question_type
		ORDER BY question_type`)
	return rows, err
}

func (r *ReportRepository) CodeCounts(ctx context.Context) (CodeCounts, error) {
	var c CodeCounts
	err := r.db.GetContext(ctx, &c, r.db.Rebind(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(SUM(CASE WHEN is_active THEN 0 ELSE 1 END), 0) AS inactive,
			COALESCE(SUM(CASE WHEN is_activated THEN 1 ELSE 0 END), 0) AS activated,
			COALESCE(SUM(CASE WHEN is_used THEN 1 ELSE 0 END), 0) AS used,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS in_use
		FROM test_codes`), model.CodeStatusUsing)
	return c, err
}

func (r *ReportRepository) UserCounts(ctx context.Context, role model.UserRole) (UserCounts, error) {
	var c UserCounts
	err := r.db.GetContext(ctx, &c, r.db.Rebind(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(SUM(CASE WHEN is_active THEN 0 ELSE 1 END), 0) AS inactive
		FROM users
		WHERE role = ?`), string(role))
	return c, err
}

// Count returns COUNT(*) of a fixed table name.
func (r *ReportRepository) Count(ctx context.Context, table string) (int64, error) {
	switch table {
	case "test_code_batches", "subjects", "test_results", "questions":
	default:
		return 0, errors.New("report: unknown table " + table)
	}
	var n int64
	err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table)
	return n, err
}

// MostActiveSubject is the subject with the most questions, nil when the bank is empty.
func (r *ReportRepository) MostActiveSubject(ctx context.Context) (*SubjectActivity, error) {
	var s SubjectActivity
	err := r.db.GetContext(ctx, &s, `
		SELECT s.id AS subject_id, s.name AS name, COUNT(q.id) AS question_count
		FROM subjects s
		JOIN questions q ON q.subject_id = s.id
		GROUP BY s.id, s.name
		ORDER BY question_count DESC, s.id ASC
		LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// AverageScoreRatio is mean(score / total_questions) over every result, 0 without results.
func (r *ReportRepository) AverageScoreRatio(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	err := r.db.GetContext(ctx, &avg, `
		SELECT AVG(score * 1.0 / total_questions)
		FROM test_results
		WHERE total_questions > 0`)
	if err != nil {
		return 0, err
	}
	return avg.Float64, nil
}

func (r *ReportRepository) TeacherQuestionCount(ctx context.Context, teacherID uint) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM questions WHERE teacher_id = ?`), teacherID)
	return n, err
}

// AssignmentQuestionCounts lists the teacher's assignments with the size of
// each assignment's question bank.
func (r *ReportRepository) AssignmentQuestionCounts(ctx context.Context, teacherID uint) ([]AssignmentQuestionCount, error) {
	var rows []AssignmentQuestionCount
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(`
		SELECT
			a.id AS assignment_id,
			a.subject_id AS subject_id,
			s.name AS subject_name,
			a.class_level AS class_level,
			t.name AS term_name,
			se.name AS session_name,
			COUNT(q.id) AS question_count
		FROM teacher_assignments a
		JOIN subjects s ON s.id = a.subject_id
		JOIN terms t ON t.id = a.term_id
		JOIN sessions se ON se.id = a.session_id
		LEFT JOIN questions q ON q.subject_id = a.subject_id
			AND q.class_level = a.class_level
			AND q.term_id = a.term_id
			AND q.session_id = a.session_id
		WHERE a.teacher_id = ?
		GROUP BY a.id, a.subject_id, s.name, a.class_level, t.name, se.name
		ORDER BY a.id`), teacherID)
	return rows, err
}
