package controller

import (
	"cbt_portal_backend/internal/service"
	"cbt_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register godoc
// @Summary Student self-registration
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body service.RegisterRequest true "New student"
// @Success 201 {object} util.Response{data=model.User}
// @Failure 409 {object} util.Response "Username, email or matric number taken"
// @Failure 422 {object} util.Response "Validation failed"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	user, err := c.AuthService.Register(ctx.Request.Context(), &req)
	if err != nil {
		util.HandleError(ctx, err, "register")
		return
	}
	util.Created(ctx, user)
}

// Login godoc
// @Summary Log in with username or email
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body service.LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=service.LoginResponse}
// @Failure 401 {object} util.Response "Invalid credentials"
// @Failure 403 {object} util.Response "Account disabled"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	resp, err := c.AuthService.Login(ctx.Request.Context(), &req)
	if err != nil {
		util.HandleError(ctx, err, "log in")
		return
	}
	util.SuccessWithMessage(ctx, "Login successful", resp)
}

// Me godoc
// @Summary Current user profile
// @Tags Auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	user, err := c.AuthService.Me(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err, "load profile")
		return
	}
	util.Success(ctx, user)
}

// ChangePassword godoc
// @Summary Change own password
// @Tags Auth
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ChangePasswordRequest true "Passwords"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "Current password is incorrect"
// @Router /auth/change-password [post]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	var req service.ChangePasswordRequest
	if !util.BindJSON(ctx, &req) {
		return
	}
	if err := c.AuthService.ChangePassword(ctx.Request.Context(), claims.UserID, &req); err != nil {
		util.HandleError(ctx, err, "change password")
		return
	}
	util.SuccessWithMessage(ctx, "Password changed", nil)
}

// Logout godoc
// @Summary Revoke the current token
// @Tags Auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	claims, ok := currentUser(ctx)
	if !ok {
		return
	}
	if err := c.AuthService.Logout(ctx.Request.Context(), claims); err != nil {
		util.HandleError(ctx, err, "log out")
		return
	}
	util.SuccessWithMessage(ctx, "Logged out", nil)
}
