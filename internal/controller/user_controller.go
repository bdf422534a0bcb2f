package controller

import (
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/service"
	"cbt_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// CreateUser godoc
// @Summary Create a user of any role
// @Tags Users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateUserRequest true "User"
// @Success 201 {object} util.Response{data=model.User}
// @Failure 409 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /admin/users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req service.CreateUserRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	user, err := c.UserService.Create(ctx.Request.Context(), &req)
	if err != nil {
		util.HandleError(ctx, err, "create user")
		return
	}
	util.Created(ctx, user)
}

// ListUsers godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Security ApiKeyAuth
// @Param role query string false "student, teacher or admin"
// @Param class_level query string false "Class level"
// @Param is_active query bool false "Active flag"
// @Param search query string false "Name, username, email or matric number"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	var f repository.UserFilter
	if !util.BindQuery(ctx, &f) {
		return
	}
	users, total, err := c.UserService.List(ctx.Request.Context(), f)
	if err != nil {
		util.HandleError(ctx, err, "list users")
		return
	}
	paged(ctx, users, total, f.Page)
}

// GetUser godoc
// @Summary Get a user
// @Tags Users
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 404 {object} util.Response
// @Router /admin/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	user, err := c.UserService.Get(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err, "get user")
		return
	}
	util.Success(ctx, user)
}

// UpdateUser godoc
// @Summary Update a user
// @Tags Users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Param body body service.UpdateUserRequest true "Fields to change"
// @Success 200 {object} util.Response{data=model.User}
// @Router /admin/users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.UpdateUserRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	user, err := c.UserService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		util.HandleError(ctx, err, "update user")
		return
	}
	util.Success(ctx, user)
}

// ToggleUserActive godoc
// @Summary Enable or disable a user
// @Tags Users
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Success 200 {object} util.Response{data=model.User}
// @Router /admin/users/{id}/toggle-active [patch]
func (c *UserController) ToggleUserActive(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	user, err := c.UserService.ToggleActive(ctx.Request.Context(), claims.UserID, id)
	if err != nil {
		util.HandleError(ctx, err, "toggle user")
		return
	}
	util.Success(ctx, user)
}

// ResetPassword godoc
// @Summary Reset a user's password
// @Tags Users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Param body body service.ResetPasswordRequest true "New password"
// @Success 200 {object} util.Response
// @Router /admin/users/{id}/reset-password [post]
func (c *UserController) ResetPassword(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	var req service.ResetPasswordRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	if err := c.UserService.ResetPassword(ctx.Request.Context(), id, &req); err != nil {
		util.HandleError(ctx, err, "reset password")
		return
	}
	util.SuccessWithMessage(ctx, "Password reset", nil)
}

// DeleteUser godoc
// @Summary Delete a user without questions, results or assignments
// @Tags Users
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Success 200 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /admin/users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	if err := c.UserService.Delete(ctx.Request.Context(), claims.UserID, id); err != nil {
		util.HandleError(ctx, err, "delete user")
		return
	}
	util.SuccessWithMessage(ctx, "User deleted", nil)
}
