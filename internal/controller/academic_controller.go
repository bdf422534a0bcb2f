package controller

import (
	"cbt_portal_backend/internal/service"
	"cbt_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AcademicController struct {
	AcademicService *service.AcademicService
}

func NewAcademicController(academicService *service.AcademicService) *AcademicController {
	return &AcademicController{AcademicService: academicService}
}

// ListSubjects godoc
// @Summary List subjects
// @Tags Academic
// @Produce json
// @Security ApiKeyAuth
// @Param active query bool false "Only active subjects"
// @Success 200 {object} util.Response{data=[]model.Subject}
// @Router /admin/subjects [get]
func (c *AcademicController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.AcademicService.ListSubjects(ctx.Request.Context(), ctx.Query("active") == "true")
	if err != nil {
		util.HandleError(ctx, err, "list subjects")
		return
	}
	util.Success(ctx, subjects)
}

// CreateSubject godoc
// @Summary Create a subject
// @Tags Academic
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubjectRequest true "Subject"
// @Success 201 {object} util.Response{data=model.Subject}
// @Failure 409 {object} util.Response
// @Router /admin/subjects [post]
func (c *AcademicController) CreateSubject(ctx *gin.Context) {
	var req service.SubjectRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	subject, err := c.AcademicService.CreateSubject(ctx.Request.Context(), &req)
	if err != nil {
		util.HandleError(ctx, err, "create subject")
		return
	}
	util.Created(ctx, subject)
}

// UpdateSubject godoc
// @Summary Update a subject
// @Tags Academic
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Subject ID"
// @Param body body service.SubjectRequest true "Subject"
// @Success 200 {object} util.Response{data=model.Subject}
// @Router /admin/subjects/{id} [put]
func (c *AcademicController) UpdateSubject(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.SubjectRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	subject, err := c.AcademicService.UpdateSubject(ctx.Request.Context(), id, &req)
	if err != nil {
		util.HandleError(ctx, err, "update subject")
		return
	}
	util.Success(ctx, subject)
}

// DeleteSubject godoc
// @Summary Delete an unreferenced subject
// @Tags Academic
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Subject ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response "Still referenced"
// @Router /admin/subjects/{id} [delete]
func (c *AcademicController) DeleteSubject(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.AcademicService.DeleteSubject(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err, "delete subject")
		return
	}
	util.SuccessWithMessage(ctx, "Subject deleted", nil)
}

// ListTerms godoc
// @Summary List terms
// @Tags Academic
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Term}
// @Router /admin/terms [get]
func (c *AcademicController) ListTerms(ctx *gin.Context) {
	terms, err := c.AcademicService.ListTerms(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err, "list terms")
		return
	}
	util.Success(ctx, terms)
}

// CreateTerm godoc
// @Summary Create a term
// @Tags Academic
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.TermRequest true "Term"
// @Success 201 {object} util.Response{data=model.Term}
// @Router /admin/terms [post]
func (c *AcademicController) CreateTerm(ctx *gin.Context) {
	var req service.TermRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	term, err := c.AcademicService.CreateTerm(ctx.Request.Context(), &req)
	if err != nil {
		util.HandleError(ctx, err, "create term")
		return
	}
	util.Created(ctx, term)
}

// UpdateTerm godoc
// @Summary Update a term
// @Tags Academic
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Term ID"
// @Param body body service.TermRequest true "Term"
// @Success 200 {object} util.Response{data=model.Term}
// @Router /admin/terms/{id} [put]
func (c *AcademicController) UpdateTerm(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.TermRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	term, err := c.AcademicService.UpdateTerm(ctx.Request.Context(), id, &req)
	if err != nil {
		util.HandleError(ctx, err, "update term")
		return
	}
	util.Success(ctx, term)
}

// DeleteTerm godoc
// @Summary Delete an unreferenced term
// @Tags Academic
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Term ID"
// @Success 200 {object} util.Response
// @Router /admin/terms/{id} [delete]
func (c *AcademicController) DeleteTerm(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.AcademicService.DeleteTerm(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err, "delete term")
		return
	}
	util.SuccessWithMessage(ctx, "Term deleted", nil)
}

// ListSessions godoc
// @Summary List academic sessions
// @Tags Academic
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.AcademicSession}
// @Router /admin/sessions [get]
func (c *AcademicController) ListSessions(ctx *gin.Context) {
	sessions, err := c.AcademicService.ListSessions(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err, "list sessions")
		return
	}
	util.Success(ctx, sessions)
}

// CreateSession godoc
// @Summary Create an academic session
// @Tags Academic
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SessionRequest true "Session"
// @Success 201 {object} util.Response{data=model.AcademicSession}
// @Router /admin/sessions [post]
func (c *AcademicController) CreateSession(ctx *gin.Context) {
	var req service.SessionRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	session, err := c.AcademicService.CreateSession(ctx.Request.Context(), &req)
	if err != nil {
		util.HandleError(ctx, err, "create session")
		return
	}
	util.Created(ctx, session)
}

// UpdateSession godoc
// @Summary Update an academic session
// @Description Marking a session current clears the flag on every other session.
// @Tags Academic
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Session ID"
// @Param body body service.SessionRequest true "Session"
// @Success 200 {object} util.Response{data=model.AcademicSession}
// @Router /admin/sessions/{id} [put]
func (c *AcademicController) UpdateSession(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.SessionRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	session, err := c.AcademicService.UpdateSession(ctx.Request.Context(), id, &req)
	if err != nil {
		util.HandleError(ctx, err, "update session")
		return
	}
	util.Success(ctx, session)
}

// DeleteSession godoc
// @Summary Delete an unreferenced academic session
// @Tags Academic
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Session ID"
// @Success 200 {object} util.Response
// @Router /admin/sessions/{id} [delete]
func (c *AcademicController) DeleteSession(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.AcademicService.DeleteSession(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err, "delete session")
		return
	}
	util.SuccessWithMessage(ctx, "Session deleted", nil)
}
