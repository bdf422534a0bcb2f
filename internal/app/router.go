package app

import (
	"cbt_portal_backend/docs"
	"cbt_portal_backend/internal/config"
	"cbt_portal_backend/internal/middleware"
	"cbt_portal_backend/internal/model"
	"cbt_portal_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	auth := middleware.AuthMiddleware(cfg.JWT.Secret, a.services.blacklist)
	api := router.Group("/api")

	// 1. public and session routes
	a.registerAuthRoutes(api, c, auth)
	a.registerSystemRoutes(api, c, auth)

	// 2. admin
	admin := api.Group("/admin")
	admin.Use(auth, middleware.RoleMiddleware(model.Admin))
	a.registerAdminRoutes(admin, c)

	// 3. teacher, admins manage the question bank too
	teacher := api.Group("/teacher")
	teacher.Use(auth, middleware.RoleMiddleware(model.Teacher, model.Admin))
	a.registerTeacherRoutes(teacher, c)

	// 4. student only
	student := api.Group("/student")
	student.Use(auth, middleware.RoleMiddleware(model.Student))
	a.registerStudentRoutes(student, c)
}

func (a *App) registerAuthRoutes(api *gin.RouterGroup, c *controllers, auth gin.HandlerFunc) {
	group := api.Group("/auth")
	{
		group.POST("/register", c.auth.Register)
		group.POST("/login", c.auth.Login)

		authorized := group.Group("")
		authorized.Use(auth)
		authorized.GET("/me", c.auth.Me)
		authorized.POST("/change-password", c.auth.ChangePassword)
		authorized.POST("/logout", c.auth.Logout)
	}
}

func (a *App) registerSystemRoutes(api *gin.RouterGroup, c *controllers, auth gin.HandlerFunc) {
	group := api.Group("/system")
	{
		group.GET("/health", c.system.HealthCheck)
		group.GET("/class-levels", auth, c.system.ClassLevels)
		group.GET("/academic-context", auth, c.system.AcademicContext)
	}
}

func (a *App) registerAdminRoutes(admin *gin.RouterGroup, c *controllers) {
	users := admin.Group("/users")
	{
		users.POST("", c.user.CreateUser)
		users.GET("", c.user.ListUsers)
		users.GET("/:id", c.user.GetUser)
		users.PUT("/:id", c.user.UpdateUser)
		users.PATCH("/:id/toggle-active", c.user.ToggleUserActive)
		users.POST("/:id/reset-password", c.user.ResetPassword)
		users.DELETE("/:id", c.user.DeleteUser)
	}

	subjects := admin.Group("/subjects")
	{
		subjects.GET("", c.academic.ListSubjects)
		subjects.POST("", c.academic.CreateSubject)
		subjects.PUT("/:id", c.academic.UpdateSubject)
		subjects.DELETE("/:id", c.academic.DeleteSubject)
	}

	terms := admin.Group("/terms")
	{
		terms.GET("", c.academic.ListTerms)
		terms.POST("", c.academic.CreateTerm)
		terms.PUT("/:id", c.academic.UpdateTerm)
		terms.DELETE("/:id", c.academic.DeleteTerm)
	}

	sessions := admin.Group("/sessions")
	{
		sessions.GET("", c.academic.ListSessions)
		sessions.POST("", c.academic.CreateSession)
		sessions.PUT("/:id", c.academic.UpdateSession)
		sessions.DELETE("/:id", c.academic.DeleteSession)
	}

	assignments := admin.Group("/teacher-assignments")
	{
		assignments.POST("", c.assignment.CreateAssignment)
		assignments.GET("", c.assignment.ListAssignments)
		assignments.DELETE("/:id", c.assignment.DeleteAssignment)
	}

	batches := admin.Group("/test-code-batches")
	{
		batches.POST("", c.testCode.CreateBatch)
		batches.GET("", c.testCode.ListBatches)
		batches.GET("/:id", c.testCode.GetBatch)
		batches.PATCH("/:id/activation", c.testCode.ActivateBatch)
		batches.PATCH("/:id/active", c.testCode.EnableBatch)
		batches.GET("/:id/export", c.testCode.ExportBatch)
		batches.DELETE("/:id", c.testCode.DeleteBatch)
	}

	codes := admin.Group("/test-codes")
	{
		codes.POST("", c.testCode.CreateCode)
		codes.GET("", c.testCode.ListCodes)
		codes.GET("/:id", c.testCode.GetCode)
		codes.PATCH("/:id/toggle-activation", c.testCode.ToggleActivation)
		codes.PATCH("/:id/toggle-active", c.testCode.ToggleActive)
		codes.DELETE("/:id", c.testCode.DeleteCode)
	}

	admin.GET("/dashboard-stats", c.dashboard.AdminStats)
	admin.GET("/results", c.dashboard.Results)
}

func (a *App) registerTeacherRoutes(teacher *gin.RouterGroup, c *controllers) {
	questions := teacher.Group("/questions")
	{
		questions.POST("", c.question.CreateQuestion)
		questions.GET("", c.question.ListQuestions)
		questions.GET("/:id", c.question.GetQuestion)
		questions.PUT("/:id", c.question.UpdateQuestion)
		questions.DELETE("/:id", c.question.DeleteQuestion)
	}

	teacher.POST("/bulk-upload", c.question.BulkUpload)
	teacher.GET("/bulk-upload/template", c.question.UploadTemplate)
	teacher.GET("/uploads", c.question.UploadHistory)
	teacher.GET("/assignments", c.assignment.MyAssignments)
	teacher.GET("/dashboard-stats", c.dashboard.TeacherStats)
}

func (a *App) registerStudentRoutes(student *gin.RouterGroup, c *controllers) {
	student.POST("/validate-test-code", c.studentTest.ValidateTestCode)
	student.GET("/take-test", c.studentTest.TakeTest)
	student.POST("/cancel-test", c.studentTest.CancelTest)
	student.POST("/submit-test", c.studentTest.SubmitTest)
	student.GET("/results", c.studentTest.MyResults)
}
