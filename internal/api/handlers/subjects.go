package handlers

import (
	"net/http"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/api/httpx"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/middleware"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/models"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/services"
	"github.com/go-chi/chi/v5"
)

type SubjectHandler struct {
	subjects *services.SubjectService
}

func NewSubjectHandler(subjects *services.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjects: subjects}
}

type subjectReq struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Level  string `json:"level"`
	Active bool   `json:"active"`
}

func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req subjectReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	s, err := h.subjects.Create(r.Context(), middleware.ActorID(r.Context()), models.Subject{
		Name: req.Name, Code: req.Code, Level: req.Level, Active: req.Active,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, s)
}

func (h *SubjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.subjects.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s)
}

func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.subjects.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *SubjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req subjectReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	s, err := h.subjects.Update(r.Context(), middleware.ActorID(r.Context()), models.Subject{
		ID: chi.URLParam(r, "id"), Name: req.Name, Code: req.Code, Level: req.Level, Active: req.Active,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s)
}

func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.subjects.Delete(r.Context(), middleware.ActorID(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
