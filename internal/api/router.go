package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/api/handlers"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/config"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/metrics"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/middleware"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/models"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/services"
)

type RouterDeps struct {
	Cfg           config.Config
	Auth          *middleware.AuthMiddleware
	UserSvc       *services.UserService
	SubjectSvc    *services.SubjectService
	PlanSvc       *services.PaymentPlanService
	EnrollmentSvc *services.EnrollmentService
	AuditSvc      *services.AuditService
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	authH := handlers.NewAuthHandler(d.UserSvc)
	subjectH := handlers.NewSubjectHandler(d.SubjectSvc)
	planH := handlers.NewPaymentPlanHandler(d.PlanSvc)
	enrollmentH := handlers.NewEnrollmentHandler(d.EnrollmentSvc)
	auditH := handlers.NewAuditHandler(d.AuditSvc)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)

		// everything below requires a valid access token; successful GETs
		// record an access audit event
		r.Group(func(r chi.Router) {
			r.Use(d.Auth.Auth, middleware.AccessAudit(d.AuditSvc))

			r.With(middleware.RequireRole(models.RoleAdmin)).Get("/users", authH.ListUsers)

			r.Route("/subjects", func(r chi.Router) {
				r.Get("/", subjectH.List)
				r.Get("/{id}", subjectH.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(models.RoleAdmin))
					r.Post("/", subjectH.Create)
					r.Put("/{id}", subjectH.Update)
					r.Delete("/{id}", subjectH.Delete)
				})
			})

			r.Route("/payment-plans", func(r chi.Router) {
				r.Get("/", planH.List)
				r.Get("/{id}", planH.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(models.RoleAdmin))
					r.Post("/", planH.Create)
					r.Put("/{id}", planH.Update)
					r.Delete("/{id}", planH.Delete)
				})
			})

			r.Route("/enrollments", func(r chi.Router) {
				r.Get("/", enrollmentH.List)
				r.Get("/{id}", enrollmentH.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleTeacher))
					r.Post("/", enrollmentH.Create)
					r.Patch("/{id}/status", enrollmentH.UpdateStatus)
				})
			})

			r.Route("/audit", func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Get("/events", auditH.List)
				r.Get("/stats", auditH.Stats)
				r.Post("/purge", auditH.Purge)
			})
		})
	})

	return r
}
