package controller

import (
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/service"
	"cbt_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// AdminStats godoc
// @Summary School-wide statistics
// @Tags Dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.AdminStats}
// @Router /admin/dashboard-stats [get]
func (c *DashboardController) AdminStats(ctx *gin.Context) {
	stats, err := c.DashboardService.AdminStats(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err, "load dashboard")
		return
	}
	util.Success(ctx, stats)
}

// TeacherStats godoc
// @Summary Question bank statistics for the calling teacher
// @Tags Dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.TeacherStats}
// @Router /teacher/dashboard-stats [get]
func (c *DashboardController) TeacherStats(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	stats, err := c.DashboardService.TeacherStats(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err, "load dashboard")
		return
	}
	util.Success(ctx, stats)
}

// Results godoc
// @Summary List test results
// @Tags Dashboard
// @Produce json
// @Security ApiKeyAuth
// @Param student_id query int false "Student"
// @Param subject_id query int false "Subject"
// @Param class_level query string false "Class level"
// @Param term_id query int false "Term"
// @Param session_id query int false "Session"
// @Param test_type query string false "CA or Examination"
// @Param batch_id query int false "Batch"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /admin/results [get]
func (c *DashboardController) Results(ctx *gin.Context) {
	var f repository.ResultFilter
	if !util.BindQuery(ctx, &f) {
		return
	}
	list, total, err := c.DashboardService.Results(ctx.Request.Context(), f)
	if err != nil {
		util.HandleError(ctx, err, "list results")
		return
	}
	paged(ctx, list, total, f.Page)
}
