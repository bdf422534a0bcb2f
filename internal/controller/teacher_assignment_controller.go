package controller

import (
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/service"
	"cbt_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TeacherAssignmentController struct {
	AssignmentService *service.TeacherAssignmentService
}

func NewTeacherAssignmentController(assignmentService *service.TeacherAssignmentService) *TeacherAssignmentController {
	return &TeacherAssignmentController{AssignmentService: assignmentService}
}

// CreateAssignment godoc
// @Summary Assign a teacher to a subject, class, term and session
// @Tags Teacher assignments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.AssignmentRequest true "Assignment"
// @Success 201 {object} util.Response{data=model.TeacherAssignment}
// @Failure 409 {object} util.Response "Already assigned"
// @Router /admin/teacher-assignments [post]
func (c *TeacherAssignmentController) CreateAssignment(ctx *gin.Context) {
	var req service.AssignmentRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	a, err := c.AssignmentService.Create(ctx.Request.Context(), &req)
	if err != nil {
		util.HandleError(ctx, err, "create assignment")
		return
	}
	util.Created(ctx, a)
}

// ListAssignments godoc
// @Summary List teacher assignments
// @Tags Teacher assignments
// @Produce json
// @Security ApiKeyAuth
// @Param teacher_id query int false "Teacher"
// @Param subject_id query int false "Subject"
// @Param class_level query string false "Class level"
// @Param term_id query int false "Term"
// @Param session_id query int false "Session"
// @Success 200 {object} util.Response{data=[]model.TeacherAssignment}
// @Router /admin/teacher-assignments [get]
func (c *TeacherAssignmentController) ListAssignments(ctx *gin.Context) {
	var f repository.AssignmentFilter
	if !util.BindQuery(ctx, &f) {
		return
	}
	list, err := c.AssignmentService.List(ctx.Request.Context(), f)
	if err != nil {
		util.HandleError(ctx, err, "list assignments")
		return
	}
	util.Success(ctx, list)
}

// MyAssignments godoc
// @Summary The calling teacher's assignments
// @Tags Teacher assignments
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.TeacherAssignment}
// @Router /teacher/assignments [get]
func (c *TeacherAssignmentController) MyAssignments(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	list, err := c.AssignmentService.List(ctx.Request.Context(), repository.AssignmentFilter{TeacherID: claims.UserID})
	if err != nil {
		util.HandleError(ctx, err, "list assignments")
		return
	}
	util.Success(ctx, list)
}

// DeleteAssignment godoc
// @Summary Remove a teacher assignment
// @Tags Teacher assignments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Assignment ID"
// @Success 200 {object} util.Response
// @Router /admin/teacher-assignments/{id} [delete]
func (c *TeacherAssignmentController) DeleteAssignment(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.AssignmentService.Delete(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err, "delete assignment")
		return
	}
	util.SuccessWithMessage(ctx, "Assignment deleted", nil)
}
