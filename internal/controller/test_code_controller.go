package controller

import (
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/service"
	"cbt_portal_backend/internal/util"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type TestCodeController struct {
	TestCodeService *service.TestCodeService
}

func NewTestCodeController(testCodeService *service.TestCodeService) *TestCodeController {
	return &TestCodeController{TestCodeService: testCodeService}
}

type FlagRequest struct {
	Value *bool `json:"value" binding:"required"`
}

// CreateBatch godoc
// @Summary Issue a batch of test codes
// @Description Codes start unactivated. The question bank must hold at least total_questions questions for the scope.
// @Tags Test codes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.BatchRequest true "Batch settings"
// @Success 201 {object} util.Response{data=service.BatchCreated}
// @Failure 422 {object} util.Response "Insufficient questions or invalid settings"
// @Router /admin/test-code-batches [post]
func (c *TestCodeController) CreateBatch(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.BatchRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	batch, err := c.TestCodeService.CreateBatch(ctx.Request.Context(), claims.UserID, &req)
	if err != nil {
		util.HandleError(ctx, err, "create batch")
		return
	}
	util.Created(ctx, service.NewBatchCreated(batch))
}

// ListBatches godoc
// @Summary List test code batches
// @Tags Test codes
// @Produce json
// @Security ApiKeyAuth
// @Param subject_id query int false "Subject"
// @Param class_level query string false "Class level"
// @Param term_id query int false "Term"
// @Param session_id query int false "Session"
// @Param test_type query string false "CA or Examination"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /admin/test-code-batches [get]
func (c *TestCodeController) ListBatches(ctx *gin.Context) {
	var f repository.BatchFilter
	if !util.BindQuery(ctx, &f) {
		return
	}
	list, total, err := c.TestCodeService.ListBatches(ctx.Request.Context(), f)
	if err != nil {
		util.HandleError(ctx, err, "list batches")
		return
	}
	paged(ctx, list, total, f.Page)
}

// GetBatch godoc
// @Summary Get a batch with its codes
// @Tags Test codes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Batch ID"
// @Success 200 {object} util.Response{data=service.BatchView}
// @Router /admin/test-code-batches/{id} [get]
func (c *TestCodeController) GetBatch(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	view, err := c.TestCodeService.GetBatch(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err, "get batch")
		return
	}
	util.Success(ctx, view)
}

// ActivateBatch godoc
// @Summary Activate or deactivate every unused code of a batch
// @Tags Test codes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Batch ID"
// @Param body body FlagRequest true "New is_activated value"
// @Success 200 {object} util.Response
// @Router /admin/test-code-batches/{id}/activation [patch]
func (c *TestCodeController) ActivateBatch(ctx *gin.Context) {
	c.setBatchFlag(ctx, c.TestCodeService.SetBatchActivated, "Batch activation updated")
}

// EnableBatch godoc
// @Summary Enable or disable every unused code of a batch
// @Tags Test codes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Batch ID"
// @Param body body FlagRequest true "New is_active value"
// @Success 200 {object} util.Response
// @Router /admin/test-code-batches/{id}/active [patch]
func (c *TestCodeController) EnableBatch(ctx *gin.Context) {
	c.setBatchFlag(ctx, c.TestCodeService.SetBatchActive, "Batch status updated")
}

func (c *TestCodeController) setBatchFlag(ctx *gin.Context, set func(context.Context, uint, bool) error, message string) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req FlagRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	if err := set(ctx.Request.Context(), id, *req.Value); err != nil {
		util.HandleError(ctx, err, "update batch")
		return
	}
	util.SuccessWithMessage(ctx, message, gin.H{"id": id, "value": *req.Value})
}

// DeleteBatch godoc
// @Summary Delete a batch none of whose codes were used
// @Tags Test codes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Batch ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "Batch has used codes"
// @Router /admin/test-code-batches/{id} [delete]
func (c *TestCodeController) DeleteBatch(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.TestCodeService.DeleteBatch(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err, "delete batch")
		return
	}
	util.SuccessWithMessage(ctx, "Batch deleted", nil)
}

// ExportBatch godoc
// @Summary Download a batch's codes as CSV
// @Tags Test codes
// @Produce text/csv
// @Security ApiKeyAuth
// @Param id path int true "Batch ID"
// @Success 200 {file} file
// @Router /admin/test-code-batches/{id}/export [get]
func (c *TestCodeController) ExportBatch(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	name, data, err := c.TestCodeService.ExportBatch(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err, "export batch")
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	ctx.Data(http.StatusOK, util.MimeCSV, data)
}

// CreateCode godoc
// @Summary Issue a single test code
// @Tags Test codes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TestSettingsRequest true "Code settings"
// @Success 201 {object} util.Response{data=model.TestCode}
// @Router /admin/test-codes [post]
func (c *TestCodeController) CreateCode(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.TestSettingsRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	code, err := c.TestCodeService.CreateCode(ctx.Request.Context(), claims.UserID, &req)
	if err != nil {
		util.HandleError(ctx, err, "create test code")
		return
	}
	util.Created(ctx, code)
}

// ListCodes godoc
// @Summary List test codes
// @Tags Test codes
// @Produce json
// @Security ApiKeyAuth
// @Param subject_id query int false "Subject"
// @Param class_level query string false "Class level"
// @Param term_id query int false "Term"
// @Param session_id query int false "Session"
// @Param test_type query string false "CA or Examination"
// @Param status query string false "active, using or used"
// @Param batch_id query int false "Batch"
// @Param is_activated query bool false "Activation flag"
// @Param is_active query bool false "Enabled flag"
// @Param search query string false "Code or title"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /admin/test-codes [get]
func (c *TestCodeController) ListCodes(ctx *gin.Context) {
	var f repository.TestCodeFilter
	if !util.BindQuery(ctx, &f) {
		return
	}
	list, total, err := c.TestCodeService.ListCodes(ctx.Request.Context(), f)
	if err != nil {
		util.HandleError(ctx, err, "list test codes")
		return
	}
	paged(ctx, list, total, f.Page)
}

// GetCode godoc
// @Summary Get a test code
// @Tags Test codes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Code ID"
// @Success 200 {object} util.Response{data=model.TestCode}
// @Router /admin/test-codes/{id} [get]
func (c *TestCodeController) GetCode(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	code, err := c.TestCodeService.GetCode(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err, "get test code")
		return
	}
	util.Success(ctx, code)
}

// ToggleActivation godoc
// @Summary Flip is_activated on an unused code
// @Tags Test codes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Code ID"
// @Success 200 {object} util.Response{data=model.TestCode}
// @Router /admin/test-codes/{id}/toggle-activation [patch]
func (c *TestCodeController) ToggleActivation(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	code, err := c.TestCodeService.ToggleActivation(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err, "toggle test code")
		return
	}
	util.Success(ctx, code)
}

// ToggleActive godoc
// @Summary Flip is_active on an unused code
// @Tags Test codes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Code ID"
// @Success 200 {object} util.Response{data=model.TestCode}
// @Router /admin/test-codes/{id}/toggle-active [patch]
func (c *TestCodeController) ToggleActive(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	code, err := c.TestCodeService.ToggleActive(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err, "toggle test code")
		return
	}
	util.Success(ctx, code)
}

// DeleteCode godoc
// @Summary Delete an unused test code
// @Tags Test codes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Code ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "Code already used"
// @Router /admin/test-codes/{id} [delete]
func (c *TestCodeController) DeleteCode(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.TestCodeService.DeleteCode(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err, "delete test code")
		return
	}
	util.SuccessWithMessage(ctx, "Test code deleted", nil)
}
