package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/shulehub/shule-backend/internal/config"
	"github.com/shulehub/shule-backend/internal/database"
	"github.com/shulehub/shule-backend/internal/handler"
	"github.com/shulehub/shule-backend/internal/logger"
	"github.com/shulehub/shule-backend/internal/mailer"
	"github.com/shulehub/shule-backend/internal/repository"
	"github.com/shulehub/shule-backend/internal/router"
	"github.com/shulehub/shule-backend/internal/service"
	"github.com/shulehub/shule-backend/internal/validator"
	"github.com/shulehub/shule-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Shule Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	gradeRepo := repository.NewGradeRepository(pool)
	feeRepo := repository.NewFeeRepository(pool)
	payrollRepo := repository.NewPayrollRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb, userRepo)
	userService := service.NewUserService(userRepo, authService)
	studentService := service.NewStudentService(studentRepo, classRepo, userRepo)
	classService := service.NewClassService(classRepo, userRepo)
	subjectService := service.NewSubjectService(subjectRepo)
	gradeService := service.NewGradeService(gradeRepo, studentRepo, subjectRepo)
	feeService := service.NewFeeService(feeRepo, studentRepo)
	payrollService := service.NewPayrollService(payrollRepo, userRepo)
	attendanceService := service.NewAttendanceService(attendanceRepo, studentRepo, classRepo)
	notificationService := service.NewNotificationService(messageRepo, userRepo, rdb, log)
	messageService := service.NewMessageService(messageRepo, userRepo, notificationService)
	reminderService := service.NewReminderService(feeService, notificationService, log)
	reportService := service.NewReportService(gradeRepo, classRepo, studentRepo, feeService)
	dashboardService := service.NewDashboardService(dashboardRepo, feeRepo, attendanceRepo)

	importService, err := service.NewImportService(cfg, userRepo, studentRepo, classRepo, subjectRepo, gradeRepo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize import service")
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService, userService),
		Bulk:       handler.NewBulkHandler(cfg, importService),
		Student:    handler.NewStudentHandler(studentService),
		Class:      handler.NewClassHandler(classService),
		Subject:    handler.NewSubjectHandler(subjectService),
		Grade:      handler.NewGradeHandler(gradeService, studentService),
		Fee:        handler.NewFeeHandler(feeService, studentService),
		Payroll:    handler.NewPayrollHandler(payrollService),
		Attendance: handler.NewAttendanceHandler(attendanceService, studentService),
		Message:    handler.NewMessageHandler(messageService, notificationService),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		Report:     handler.NewReportHandler(reportService),
		User:       handler.NewUserHandler(userService),
		Stream:     handler.NewStreamHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	var sender mailer.Sender
	if cfg.SendgridAPIKey != "" {
		sender = mailer.NewSendGridSender(cfg.SendgridAPIKey, cfg.EmailFromName, cfg.EmailFrom)
	} else {
		log.Warn().Msg("SENDGRID_API_KEY not set, email goes to the log")
		sender = mailer.NewConsoleSender(log)
	}

	notifyWorker := worker.NewNotifyWorker(rdb, sender, log)
	reminderWorker := worker.NewReminderWorker(reminderService, cfg.ReminderHour, log)

	go notifyWorker.Start(workerCtx)
	go reminderWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
