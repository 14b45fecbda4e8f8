package app

import (
	"homework_backend/docs"
	"homework_backend/internal/config"
	"homework_backend/internal/middleware"
	"homework_backend/internal/model"
	"homework_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/profiles/:id", c.user.GetProfile)

		// 体验作业：游客可用
		public.GET("/demo/homework", c.demo.Questions)
		public.POST("/demo/check", c.demo.Check)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.Me)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)
		authGroup.GET("/classrooms/:id", c.classroom.Get)
		authGroup.GET("/homework", c.homework.List)
		authGroup.GET("/homework/:id", c.homework.Get)

		// 学生接口
		student := authGroup.Group("/")
		student.Use(middleware.RoleMiddleware(model.Student))
		{
			student.POST("/homework/:id/submissions", c.submission.Submit)
			student.GET("/homework/:id/submissions/me", c.submission.Mine)
			student.GET("/student/progress", c.report.StudentProgress)
		}

		// 教师接口
		teacher := authGroup.Group("/teacher")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacher.POST("/classrooms", c.classroom.Create)
			teacher.GET("/classrooms", c.classroom.List)
			teacher.POST("/classrooms/:id/students", c.classroom.AddStudents)
			teacher.GET("/classrooms/:id/stats", c.classroom.Stats)
			teacher.POST("/classrooms/:id/homework", c.homework.Create)
			teacher.POST("/homework/:id/file", c.homework.UploadFile)
			teacher.GET("/homework/:id/submissions", c.submission.StatusList)
			teacher.GET("/submissions/:id", c.submission.GetForReview)
			teacher.PUT("/submissions/:id/review", c.submission.Review)
		}

		// 管理员接口
		admin := authGroup.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.POST("/grade-scales", c.gradeScale.Create)
			admin.GET("/grade-scales", c.gradeScale.List)
			admin.GET("/grade-scales/:id", c.gradeScale.Get)
			admin.PUT("/grade-scales/:id", c.gradeScale.Update)
			admin.DELETE("/grade-scales/:id", c.gradeScale.Delete)
		}
	}
}
