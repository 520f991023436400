package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/api"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/auth"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/config"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/db"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/logger"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/metrics"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/middleware"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/repository/postgres"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/services"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if os.Getenv("APP_MIGRATE") == "true" {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, 15*time.Minute, 7*24*time.Hour)

	auditSvc := services.NewAuditService(repos.AuditEvents, wp, cfg.AuditPageSize)
	userSvc := services.NewUserService(repos.Users, tm, auditSvc)
	subjectSvc := services.NewSubjectService(repos.Subjects, auditSvc)
	planSvc := services.NewPaymentPlanService(repos.PaymentPlans, auditSvc)
	enrollmentSvc := services.NewEnrollmentService(repos.Enrollments, repos.Users, repos.Subjects, repos.PaymentPlans, auditSvc)

	if cfg.AuditRetentionDays > 0 {
		rw := worker.NewRetentionWorker(24*time.Hour, auditSvc, cfg.AuditRetentionDays)
		rw.Start()
		defer rw.Stop()
	}

	r := api.NewRouter(api.RouterDeps{
		Cfg:           cfg,
		Auth:          middleware.NewAuthMiddleware(tm),
		UserSvc:       userSvc,
		SubjectSvc:    subjectSvc,
		PlanSvc:       planSvc,
		EnrollmentSvc: enrollmentSvc,
		AuditSvc:      auditSvc,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
