package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shulehub/shule-backend/internal/config"
	"github.com/shulehub/shule-backend/internal/handler"
	"github.com/shulehub/shule-backend/internal/middleware"
	"github.com/shulehub/shule-backend/internal/model"
	"github.com/shulehub/shule-backend/internal/response"
	"github.com/shulehub/shule-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Bulk       *handler.BulkHandler
	Student    *handler.StudentHandler
	Class      *handler.ClassHandler
	Subject    *handler.SubjectHandler
	Grade      *handler.GradeHandler
	Fee        *handler.FeeHandler
	Payroll    *handler.PayrollHandler
	Attendance *handler.AttendanceHandler
	Message    *handler.MessageHandler
	Dashboard  *handler.DashboardHandler
	Report     *handler.ReportHandler
	User       *handler.UserHandler
	Stream     *handler.StreamHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", handlers.Auth.Login)

		auth.POST("/logout", middleware.RequireAuth(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
		auth.POST("/change-password", middleware.RequireAuth(authService), handlers.Auth.ChangePassword)
	}

	// ─── 2. Shared Group (any authenticated role) ──────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireAuth(authService))
	{
		api.GET("/classes", handlers.Class.ListClasses)
		api.GET("/subjects", handlers.Subject.ListSubjects)
		api.GET("/subjects/:id", handlers.Subject.GetSubject)

		// Student reads; parents are scoped to their own children inside
		// the handlers.
		api.GET("/students/:id", handlers.Student.GetStudent)
		api.GET("/students/:id/grades", handlers.Grade.StudentReport)
		api.GET("/students/:id/fees", handlers.Fee.StudentStatements)
		api.GET("/students/:id/attendance", handlers.Attendance.StudentAttendance)

		api.GET("/students",
			middleware.RequireRole(model.RoleAdmin, model.RoleTeacher, model.RoleFinance),
			handlers.Student.ListStudents,
		)
		api.GET("/students/lookup",
			middleware.RequireRole(model.RoleAdmin, model.RoleTeacher, model.RoleFinance),
			handlers.Student.LookupStudent,
		)

		// Messaging and notifications
		api.POST("/messages", handlers.Message.SendMessage)
		api.GET("/messages/inbox", handlers.Message.Inbox)
		api.GET("/messages/sent", handlers.Message.Sent)
		api.GET("/messages/unread", handlers.Message.UnreadCount)
		api.GET("/messages/:id", handlers.Message.ReadMessage)
		api.GET("/notifications", handlers.Message.ListNotifications)
		api.POST("/notifications/read", handlers.Message.MarkNotificationsRead)
	}

	// ─── 3. Parent Group ───────────────────────────────────────────────
	parentAPI := router.Group("/api/v1/parent")
	parentAPI.Use(middleware.RequireAuth(authService), middleware.RequireRole(model.RoleParent))
	{
		parentAPI.GET("/children", handlers.Student.MyChildren)
	}

	// ─── 4. Staff Group (admins and teachers) ──────────────────────────
	staffAPI := router.Group("/api/v1/staff")
	staffAPI.Use(middleware.RequireAuth(authService), middleware.RequireRole(model.RoleAdmin, model.RoleTeacher))
	{
		staffAPI.POST("/grades", handlers.Grade.CreateGrade)
		staffAPI.POST("/attendance", handlers.Attendance.MarkAttendance)
		staffAPI.GET("/attendance/:classId", handlers.Attendance.ClassRegister)
		staffAPI.GET("/reports/classes/:id/grades", handlers.Report.ClassGrades)
	}

	// ─── 5. Finance Group (admins and finance staff) ───────────────────
	financeAPI := router.Group("/api/v1/finance")
	financeAPI.Use(middleware.RequireAuth(authService), middleware.RequireRole(model.RoleAdmin, model.RoleFinance))
	{
		financeAPI.POST("/statements", handlers.Fee.CreateStatement)
		financeAPI.GET("/statements/:id", handlers.Fee.GetStatement)
		financeAPI.POST("/payments", handlers.Fee.RecordPayment)
		financeAPI.GET("/overdue", handlers.Fee.ListOverdue)

		financeAPI.POST("/salaries", handlers.Payroll.CreateSalary)
		financeAPI.GET("/salaries", handlers.Payroll.ListSalaries)
		financeAPI.GET("/salaries/staff/:id", handlers.Payroll.StaffHistory)
		financeAPI.POST("/salaries/:id/pay", handlers.Payroll.MarkPaid)

		financeAPI.GET("/reports/classes/:id/balances", handlers.Report.ClassFeeBalances)
	}

	// ─── 6. Admin Group ────────────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAuth(authService), middleware.RequireRole(model.RoleAdmin))
	{
		adminAPI.POST("/imports/:kind", handlers.Bulk.Import)

		adminAPI.POST("/students", handlers.Student.CreateStudent)
		adminAPI.PUT("/students/:id", handlers.Student.UpdateStudent)

		adminAPI.POST("/classes", handlers.Class.CreateClass)
		adminAPI.PUT("/classes/:id", handlers.Class.UpdateClass)
		adminAPI.DELETE("/classes/:id", handlers.Class.DeleteClass)

		adminAPI.POST("/subjects", handlers.Subject.CreateSubject)

		adminAPI.GET("/users", handlers.User.ListUsers)
		adminAPI.POST("/users", handlers.User.CreateUser)
		adminAPI.GET("/users/:id", handlers.User.GetUser)
		adminAPI.PUT("/users/:id", handlers.User.UpdateUser)

		adminAPI.GET("/dashboard", handlers.Dashboard.Summary)
	}

	// ─── 7. WebSocket Group ────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireAuth(authService))
	{
		ws.GET("/notifications", handlers.Stream.NotificationStream)
	}

	return router
}
