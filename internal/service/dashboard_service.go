package service

import (
	"cbt_portal_backend/internal/model"
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/util"
	"context"
	"time"
)

type DashboardService struct {
	Reports    *repository.ReportRepository
	ResultRepo *repository.ResultRepository
}

func NewDashboardService(reports *repository.ReportRepository, resultRepo *repository.ResultRepository) *DashboardService {
	return &DashboardService{Reports: reports, ResultRepo: resultRepo}
}

type QuestionStats struct {
	Total  int64                  `json:"total"`
	ByType []repository.TypeCount `json:"by_type"`
}

// AdminStats is computed on every request.
type AdminStats struct {
	Questions         QuestionStats               `json:"questions"`
	TestCodes         repository.CodeCounts       `json:"test_codes"`
	Batches           int64                       `json:"batches"`
	Teachers          repository.UserCounts       `json:"teachers"`
	Students          repository.UserCounts       `json:"students"`
	Subjects          int64                       `json:"subjects"`
	CompletedTests    int64                       `json:"completed_tests"`
	MostActiveSubject *repository.SubjectActivity `json:"most_active_subject"`
	CompletionRate    float64                     `json:"completion_rate"`
	AverageScore      float64                     `json:"average_score"`
}

type TeacherStats struct {
	QuestionCount int64                                `json:"question_count"`
	Assignments   []repository.AssignmentQuestionCount `json:"assignments"`
}

// ResultView is one row of the admin results listing.
type ResultView struct {
	ResultID             uint           `json:"result_id"`
	StudentID            uint           `json:"student_id"`
	StudentName          string         `json:"student_name"`
	Username             string         `json:"username"`
	TestCode             string         `json:"test_code"`
	Title                string         `json:"title"`
	Subject              string         `json:"subject"`
	ClassLevel           string         `json:"class_level"`
	TestType             model.TestType `json:"test_type"`
	Score                float64        `json:"score"`
	MaxPossibleScore     float64        `json:"max_possible_score"`
	CorrectAnswers       int            `json:"correct_answers"`
	TotalQuestions       int            `json:"total_questions"`
	Percentage           float64        `json:"percentage"`
	TimeTaken            int            `json:"time_taken"`
	GradedWithoutShuffle bool           `json:"graded_without_shuffle"`
	SubmittedAt          time.Time      `json:"submitted_at"`
}

func (s *DashboardService) AdminStats(ctx context.Context) (*AdminStats, error) {
	var (
		stats AdminStats
		err   error
	)
	if stats.Questions.ByType, err = s.Reports.QuestionsByType(ctx); err != nil {
		return nil, err
	}
	for _, tc := range stats.Questions.ByType {
		stats.Questions.Total += tc.Count
	}
	if stats.TestCodes, err = s.Reports.CodeCounts(ctx); err != nil {
		return nil, err
	}
	if stats.Batches, err = s.Reports.Count(ctx, "test_code_batches"); err != nil {
		return nil, err
	}
	if stats.Teachers, err = s.Reports.UserCounts(ctx, model.Teacher); err != nil {
		return nil, err
	}
	if stats.Students, err = s.Reports.UserCounts(ctx, model.Student); err != nil {
		return nil, err
	}
	if stats.Subjects, err = s.Reports.Count(ctx, "subjects"); err != nil {
		return nil, err
	}
	if stats.CompletedTests, err = s.Reports.Count(ctx, "test_results"); err != nil {
		return nil, err
	}
	if stats.MostActiveSubject, err = s.Reports.MostActiveSubject(ctx); err != nil {
		return nil, err
	}

	if stats.TestCodes.Activated > 0 {
		stats.CompletionRate = util.Round2(float64(stats.CompletedTests) / float64(stats.TestCodes.Activated) * 100)
	}
	avg, err := s.Reports.AverageScoreRatio(ctx)
	if err != nil {
		return nil, err
	}
	stats.AverageScore = util.Round2(avg * 100)
	return &stats, nil
}

func (s *DashboardService) TeacherStats(ctx context.Context, teacherID uint) (*TeacherStats, error) {
	count, err := s.Reports.TeacherQuestionCount(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.Reports.AssignmentQuestionCounts(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if assignments == nil {
		assignments = []repository.AssignmentQuestionCount{}
	}
	return &TeacherStats{QuestionCount: count, Assignments: assignments}, nil
}

func (s *DashboardService) Results(ctx context.Context, f repository.ResultFilter) ([]ResultView, int64, error) {
	results, total, err := s.ResultRepo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	views := make([]ResultView, 0, len(results))
	for _, r := range results {
		v := ResultView{
			ResultID:             r.ID,
			StudentID:            r.StudentID,
			ClassLevel:           r.ClassLevel,
			Score:                r.Score,
			MaxPossibleScore:     r.MaxScore(),
			CorrectAnswers:       r.CorrectAnswers,
			TotalQuestions:       r.TotalQuestions,
			Percentage:           percentage(r.CorrectAnswers, r.TotalQuestions),
			TimeTaken:            r.TimeTaken,
			GradedWithoutShuffle: r.GradedWithoutShuffle,
			SubmittedAt:          r.SubmittedAt,
		}
		if r.Student != nil {
			v.StudentName = r.Student.FullName
			v.Username = r.Student.Username
		}
		if r.TestCode != nil {
			v.TestCode = r.TestCode.Code
			v.Title = r.TestCode.Title
			v.TestType = r.TestCode.TestType
			if r.TestCode.Subject != nil {
				v.Subject = r.TestCode.Subject.Name
			}
		}
		views = append(views, v)
	}
	return views, total, nil
}
