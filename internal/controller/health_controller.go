package controller

import (
	"cbt_portal_backend/internal/service"
	"cbt_portal_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type SystemController struct {
	DB              *gorm.DB
	Redis           *redis.Client
	AcademicService *service.AcademicService
}

func NewSystemController(db *gorm.DB, rdb *redis.Client, academicService *service.AcademicService) *SystemController {
	return &SystemController{DB: db, Redis: rdb, AcademicService: academicService}
}

// HealthCheck godoc
// @Summary Health check
// @Description Pings the database and Redis.
// @Tags System
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /system/health [get]
func (c *SystemController) HealthCheck(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}
	if err := sqlDB.PingContext(ctx.Request.Context()); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	redisStatus := "up"
	if c.Redis == nil || c.Redis.Ping(ctx.Request.Context()).Err() != nil {
		redisStatus = "down"
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"database": "up",
			"redis":    redisStatus,
		},
	})
}

// ClassLevels godoc
// @Summary Configured class levels
// @Tags System
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]string}
// @Router /system/class-levels [get]
func (c *SystemController) ClassLevels(ctx *gin.Context) {
	util.Success(ctx, c.AcademicService.ClassLevels())
}

// AcademicContext godoc
// @Summary Current session, active terms and subjects
// @Tags System
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.AcademicContext}
// @Router /system/academic-context [get]
func (c *SystemController) AcademicContext(ctx *gin.Context) {
	out, err := c.AcademicService.Context(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err, "load academic context")
		return
	}
	util.Success(ctx, out)
}
