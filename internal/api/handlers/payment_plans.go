package handlers

import (
	"net/http"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/api/httpx"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/api/validate"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/middleware"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/models"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/services"
	"github.com/go-chi/chi/v5"
)

type PaymentPlanHandler struct {
	plans *services.PaymentPlanService
}

func NewPaymentPlanHandler(plans *services.PaymentPlanService) *PaymentPlanHandler {
	return &PaymentPlanHandler{plans: plans}
}

type planReq struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Active   bool   `json:"active"`
}

func (req planReq) model(id string) models.PaymentPlan {
	return models.PaymentPlan{
		ID: id, Name: req.Name, Type: models.PlanType(req.Type),
		Amount: req.Amount, Currency: req.Currency, Active: req.Active,
	}
}

func (h *PaymentPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req planReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	if err := validate.Collect(
		validate.Required("name", req.Name),
		validate.OneOf("type", req.Type, string(models.PlanMonthly), string(models.PlanTerm), string(models.PlanAnnual)),
		validate.MinInt("amount", req.Amount, 0),
	); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation", "invalid payment plan", err)
		return
	}
	p, err := h.plans.Create(r.Context(), middleware.ActorID(r.Context()), req.model(""))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}

func (h *PaymentPlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.plans.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *PaymentPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.plans.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *PaymentPlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req planReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	p, err := h.plans.Update(r.Context(), middleware.ActorID(r.Context()), req.model(chi.URLParam(r, "id")))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *PaymentPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.plans.Delete(r.Context(), middleware.ActorID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
