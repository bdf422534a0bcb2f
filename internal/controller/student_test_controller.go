package controller

import (
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/service"
	"cbt_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentTestController struct {
	TestTakingService *service.TestTakingService
}

func NewStudentTestController(testTakingService *service.TestTakingService) *StudentTestController {
	return &StudentTestController{TestTakingService: testTakingService}
}

type TestCodeRequest struct {
	TestCode string `json:"test_code" binding:"required"`
}

// ValidateTestCode godoc
// @Summary Check a test code before starting
// @Tags Student tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body TestCodeRequest true "Test code"
// @Success 200 {object} util.Response{data=service.TestInfo}
// @Failure 403 {object} util.Response "Code inactive or not activated"
// @Failure 404 {object} util.Response "Invalid test code"
// @Failure 409 {object} util.Response "Code used, in use or test already taken"
// @Failure 410 {object} util.Response "Code expired"
// @Failure 422 {object} util.Response "Not enough questions"
// @Router /student/validate-test-code [post]
func (c *StudentTestController) ValidateTestCode(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req TestCodeRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	info, err := c.TestTakingService.ValidateCode(ctx.Request.Context(), claims.UserID, req.TestCode)
	if err != nil {
		util.HandleError(ctx, err, "validate test code")
		return
	}
	util.SuccessWithMessage(ctx, "Test code is valid", info)
}

// TakeTest godoc
// @Summary Start or resume a test
// @Description Claims the code and returns the question paper. Reloading returns the same paper.
// @Tags Student tests
// @Produce json
// @Security ApiKeyAuth
// @Param code query string true "Test code"
// @Success 200 {object} util.Response{data=service.TestPaper}
// @Router /student/take-test [get]
func (c *StudentTestController) TakeTest(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	code := ctx.Query("code")
	if code == "" {
		util.ValidationError(ctx, map[string]string{"code": "is required"})
		return
	}
	paper, err := c.TestTakingService.TakeTest(ctx.Request.Context(), claims.UserID, code)
	if err != nil {
		util.HandleError(ctx, err, "load test")
		return
	}
	util.Success(ctx, paper)
}

// CancelTest godoc
// @Summary Release a claimed test code
// @Tags Student tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body TestCodeRequest true "Test code"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "Not claimed by you or already used"
// @Router /student/cancel-test [post]
func (c *StudentTestController) CancelTest(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req TestCodeRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	if err := c.TestTakingService.CancelTest(ctx.Request.Context(), claims.UserID, req.TestCode); err != nil {
		util.HandleError(ctx, err, "cancel test")
		return
	}
	util.SuccessWithMessage(ctx, "Test cancelled", nil)
}

// SubmitTest godoc
// @Summary Submit answers
// @Tags Student tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubmitRequest true "Answers keyed by question id"
// @Success 200 {object} util.Response{data=service.SubmitResponse}
// @Failure 409 {object} util.Response "Code used or test already taken"
// @Failure 422 {object} util.Response "Time limit exceeded"
// @Router /student/submit-test [post]
func (c *StudentTestController) SubmitTest(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.SubmitRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.TestTakingService.Submit(ctx.Request.Context(), claims.UserID, &req)
	if err != nil {
		util.HandleError(ctx, err, "submit test")
		return
	}
	util.SuccessWithMessage(ctx, "Test submitted", resp)
}

// MyResults godoc
// @Summary The calling student's results
// @Tags Student tests
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /student/results [get]
func (c *StudentTestController) MyResults(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var p repository.Page
	if !util.BindQuery(ctx, &p) {
		return
	}
	list, total, err := c.TestTakingService.Results(ctx.Request.Context(), claims.UserID, p)
	if err != nil {
		util.HandleError(ctx, err, "list results")
		return
	}
	paged(ctx, list, total, p)
}
