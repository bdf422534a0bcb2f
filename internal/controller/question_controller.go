package controller

import (
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/service"
	"cbt_portal_backend/internal/util"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
	UploadService   *service.QuestionUploadService
	MaxUploadBytes  int64
}

func NewQuestionController(questionService *service.QuestionService, uploadService *service.QuestionUploadService, maxUploadMB int) *QuestionController {
	return &QuestionController{
		QuestionService: questionService,
		UploadService:   uploadService,
		MaxUploadBytes:  int64(maxUploadMB) << 20,
	}
}

// CreateQuestion godoc
// @Summary Create a question
// @Description Teachers may only write inside one of their assignments.
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuestionRequest true "Question"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 403 {object} util.Response "Not assigned"
// @Failure 422 {object} util.Response "Invalid options for the question type"
// @Router /teacher/questions [post]
func (c *QuestionController) CreateQuestion(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.QuestionRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	q, err := c.QuestionService.Create(ctx.Request.Context(), claims, &req)
	if err != nil {
		util.HandleError(ctx, err, "create question")
		return
	}
	util.Created(ctx, q)
}

// ListQuestions godoc
// @Summary List questions
// @Description Teachers see their own questions, admins see all.
// @Tags Questions
// @Produce json
// @Security ApiKeyAuth
// @Param subject_id query int false "Subject"
// @Param class_level query string false "Class level"
// @Param term_id query int false "Term"
// @Param session_id query int false "Session"
// @Param question_type query string false "multiple_choice or true_false"
// @Param test_type query string false "CA or Examination"
// @Param teacher_id query int false "Author (admins only)"
// @Param search query string false "Text search"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /teacher/questions [get]
func (c *QuestionController) ListQuestions(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var f repository.QuestionFilter
	if !util.BindQuery(ctx, &f) {
		return
	}
	list, total, err := c.QuestionService.List(ctx.Request.Context(), claims, f)
	if err != nil {
		util.HandleError(ctx, err, "list questions")
		return
	}
	paged(ctx, list, total, f.Page)
}

// GetQuestion godoc
// @Summary Get a question
// @Tags Questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Success 200 {object} util.Response{data=model.Question}
// @Router /teacher/questions/{id} [get]
func (c *QuestionController) GetQuestion(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	q, err := c.QuestionService.Get(ctx.Request.Context(), claims, id)
	if err != nil {
		util.HandleError(ctx, err, "get question")
		return
	}
	util.Success(ctx, q)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags Questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Param body body service.QuestionRequest true "Question"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 409 {object} util.Response "Already answered in a test"
// @Router /teacher/questions/{id} [put]
func (c *QuestionController) UpdateQuestion(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.QuestionRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	q, err := c.QuestionService.Update(ctx.Request.Context(), claims, id, &req)
	if err != nil {
		util.HandleError(ctx, err, "update question")
		return
	}
	util.Success(ctx, q)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags Questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Question ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "Already answered in a test"
// @Router /teacher/questions/{id} [delete]
func (c *QuestionController) DeleteQuestion(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.QuestionService.Delete(ctx.Request.Context(), claims, id); err != nil {
		util.HandleError(ctx, err, "delete question")
		return
	}
	util.SuccessWithMessage(ctx, "Question deleted", nil)
}

// BulkUpload godoc
// @Summary Import questions from CSV
// @Description Invalid rows are skipped and reported, valid rows are saved.
// @Tags Questions
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "CSV file"
// @Param subject_id formData int true "Subject"
// @Param class_level formData string true "Class level"
// @Param term_id formData int true "Term"
// @Param session_id formData int true "Session"
// @Param test_type formData string false "CA or Examination"
// @Success 200 {object} util.Response{data=service.UploadSummary}
// @Failure 400 {object} util.Response "Bad file or header"
// @Router /teacher/bulk-upload [post]
func (c *QuestionController) BulkUpload(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.UploadRequest
	if !util.BindForm(ctx, &req) {
		return
	}
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "A CSV file is required in the 'file' field")
		return
	}
	if err := util.CheckCSVUpload(header, c.MaxUploadBytes); err != nil {
		util.HandleError(ctx, err, "read upload")
		return
	}

	f, err := header.Open()
	if err != nil {
		util.HandleError(ctx, err, "read upload")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, c.MaxUploadBytes+1))
	if err != nil {
		util.HandleError(ctx, err, "read upload")
		return
	}

	summary, err := c.UploadService.Upload(ctx.Request.Context(), claims, &req, header.Filename, data)
	if err != nil {
		util.HandleError(ctx, err, "import questions")
		return
	}
	util.SuccessWithMessage(ctx, "Upload processed", summary)
}

// UploadTemplate godoc
// @Summary Download the CSV header template
// @Tags Questions
// @Produce text/csv
// @Security ApiKeyAuth
// @Success 200 {file} file
// @Router /teacher/bulk-upload/template [get]
func (c *QuestionController) UploadTemplate(ctx *gin.Context) {
	ctx.Header("Content-Disposition", `attachment; filename="questions_template.csv"`)
	ctx.Data(http.StatusOK, util.MimeCSV, c.UploadService.Template())
}

// UploadHistory godoc
// @Summary Past bulk uploads
// @Tags Questions
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /teacher/uploads [get]
func (c *QuestionController) UploadHistory(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var p repository.Page
	if !util.BindQuery(ctx, &p) {
		return
	}
	list, total, err := c.UploadService.History(ctx.Request.Context(), claims, p)
	if err != nil {
		util.HandleError(ctx, err, "list uploads")
		return
	}
	paged(ctx, list, total, p)
}
