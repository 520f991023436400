package handlers

import (
	"net/http"
	"strconv"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/api/httpx"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/api/validate"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/middleware"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/models"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/pagination"
	repo "github.com/AminHassanDouale/ilmacademy-sub004/internal/repository"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/services"
	"github.com/go-chi/chi/v5"
)

type EnrollmentHandler struct {
	enrollments *services.EnrollmentService
}

func NewEnrollmentHandler(enrollments *services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollments: enrollments}
}

type enrollmentReq struct {
	StudentID     string  `json:"student_id"`
	SubjectID     string  `json:"subject_id"`
	PaymentPlanID *string `json:"payment_plan_id"`
}

func (h *EnrollmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req enrollmentReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	if err := validate.Collect(
		validate.Required("student_id", req.StudentID),
		validate.Required("subject_id", req.SubjectID),
	); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation", "invalid enrollment", err)
		return
	}
	e, err := h.enrollments.Create(r.Context(), middleware.ActorID(r.Context()), models.Enrollment{
		StudentID: req.StudentID, SubjectID: req.SubjectID, PaymentPlanID: req.PaymentPlanID,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, e)
}

func (h *EnrollmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.enrollments.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, e)
}

func (h *EnrollmentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repo.EnrollmentFilter{
		StudentID: q.Get("student_id"),
		SubjectID: q.Get("subject_id"),
		Status:    q.Get("status"),
	}
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("page_size"))

	res, err := h.enrollments.List(r.Context(), f, pagination.NewPageRequest(page, size))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

type statusReq struct {
	Status string `json:"status"`
}

func (h *EnrollmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	e, err := h.enrollments.UpdateStatus(r.Context(), middleware.ActorID(r.Context()),
		chi.URLParam(r, "id"), models.EnrollmentStatus(req.Status))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, e)
}
