package app

import (
	"smartedu_backend/docs"
	"smartedu_backend/internal/config"
	"smartedu_backend/internal/middleware"
	"smartedu_backend/internal/model"

	"smartedu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
		a.registerSharedRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)

		auth := public.Group("/auth")
		{
			auth.POST("/student/login", c.auth.StudentLogin)
			auth.POST("/teacher/login", c.auth.TeacherLogin)
			auth.POST("/principal/login", c.auth.PrincipalLogin)
			auth.POST("/superadmin/login", c.auth.SuperadminLogin)
			auth.GET("/verify", c.auth.Verify)
		}
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	student := rg.Group("/student")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.GET("/quizzes", c.studentQuiz.ListQuizzes)
		student.GET("/quizzes/:id", c.studentQuiz.GetQuiz)
		student.GET("/quizzes/:id/attempt", c.studentQuiz.GetAttempt)
		student.POST("/quizzes/progress", c.studentQuiz.SaveProgress)
		student.POST("/quizzes/submit", c.studentQuiz.Submit)
		student.GET("/results", c.studentQuiz.GetResults)
	}
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher, model.Principal))
	{
		teacher.POST("/questions", c.question.AddQuestion)
		teacher.GET("/questions", c.question.ListQuestions)
		teacher.GET("/questions/vocabulary", c.question.GetVocabulary)
		teacher.DELETE("/questions/:id", c.question.DeleteQuestion)

		teacher.POST("/quizzes", c.quiz.CreateQuiz)
		teacher.GET("/quizzes", c.quiz.ListQuizzes)
		teacher.GET("/quizzes/:id", c.quiz.GetQuiz)
		teacher.PUT("/quizzes/:id/publish", c.quiz.PublishQuiz)
		teacher.PUT("/quizzes/:id/unpublish", c.quiz.UnpublishQuiz)
		teacher.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)

		teacher.GET("/results", c.result.ListResults)
		teacher.GET("/results/analytics", c.result.QuizAnalytics)
		teacher.GET("/results/analytics/subjects", c.result.SubjectAnalytics)

		teacher.POST("/content", c.content.UploadContent)
		teacher.DELETE("/content/:id", c.content.DeleteContent)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Principal, model.Superadmin))
	{
		admin.POST("/users", c.user.CreateUser)
		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id/disable", c.user.DisableUser)
		admin.PUT("/users/:id/enable", c.user.EnableUser)
	}
}

func (a *App) registerSharedRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.PUT("/auth/password", c.auth.ChangePassword)
	rg.GET("/content", c.content.ListContent)
	rg.POST("/content/:id/like", c.content.LikeContent)

	calendar := rg.Group("/calendar")
	{
		calendar.GET("/events", c.calendar.ListEvents)
		calendar.GET("/events/upcoming", c.calendar.UpcomingEvents)
		calendar.GET("/stats", c.calendar.EventStats)

		write := calendar.Group("")
		write.Use(middleware.RoleMiddleware(model.Teacher, model.Principal))
		{
			write.POST("/events", c.calendar.CreateEvent)
			write.DELETE("/events/:id", c.calendar.DeleteEvent)
		}
	}
}
