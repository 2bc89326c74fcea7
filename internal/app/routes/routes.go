package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/skuldata/skuldata/internal/app/controllers"
	"github.com/skuldata/skuldata/internal/app/models"
	"github.com/skuldata/skuldata/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	dashboardController *controllers.DashboardController,
	teacherController *controllers.TeacherController,
	parentController *controllers.ParentController,
	studentController *controllers.StudentController,
	documentController *controllers.DocumentController,
	reportController *controllers.ReportController,
	scheduleController *controllers.ScheduleController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.RegisterSchool)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.GetProfile)

		// Dashboard enforces the superuser check itself so the fixed
		// authorization-failure body stays intact
		authenticated.GET("/dashboard", dashboardController.GetDashboard)

		teachers := authenticated.Group("/teachers")
		{
			teachers.GET("", teacherController.ListTeachers)
			teachers.GET("/:id", teacherController.GetTeacher)
			teachers.POST("", teacherController.CreateTeacher)
			teachers.PUT("/:id", teacherController.UpdateTeacher)
			teachers.DELETE("/:id", teacherController.DeleteTeacher)
		}

		parents := authenticated.Group("/parents")
		{
			parents.GET("", parentController.ListParents)
			parents.GET("/:id", parentController.GetParent)
			parents.POST("", parentController.CreateParent)
			parents.PUT("/:id", parentController.UpdateParent)
			parents.DELETE("/:id", parentController.DeleteParent)
		}

		students := authenticated.Group("/students")
		{
			students.GET("", studentController.ListStudents)
			students.GET("/:id", studentController.GetStudent)
			students.POST("", studentController.CreateStudent)
			students.PUT("/:id", studentController.UpdateStudent)
			students.DELETE("/:id", studentController.DeleteStudent)
		}

		documents := authenticated.Group("/documents")
		{
			documents.GET("", documentController.ListDocuments)
			documents.GET("/:id", documentController.GetDocument)
			documents.POST("", documentController.CreateDocument)
			documents.DELETE("/:id", documentController.DeleteDocument)
		}

		reports := authenticated.Group("/reports")
		{
			reports.GET("/requests", reportController.ListReportRequests)
			reports.GET("/requests/:id", reportController.GetReportRequest)
			reports.POST("/requests", reportController.RequestReport)

			reports.GET("", reportController.ListReports)
			reports.GET("/:id", reportController.GetReport)
			reports.DELETE("/:id", reportController.DeleteReport)
		}

		// Schedule management is deployment-wide, superuser only
		schedules := authenticated.Group("/schedules")
		schedules.Use(authMiddleware.RoleRequired(models.RoleSuperuser))
		{
			schedules.GET("", scheduleController.ListSchedules)
			schedules.GET("/:name", scheduleController.GetSchedule)
			schedules.PATCH("/:name", scheduleController.UpdateSchedule)
		}
	}
}
