package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/api/httpx"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/pagination"
	repo "github.com/AminHassanDouale/ilmacademy-sub004/internal/repository"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/services"
)

type AuditHandler struct {
	audit *services.AuditService
}

func NewAuditHandler(audit *services.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List serves the admin activity-log screen. All filters are optional and
// AND-combined; an out-of-range page yields an empty page.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := repo.AuditFilter{
		Search:      q.Get("q"),
		ActorID:     q.Get("actor_id"),
		Verb:        q.Get("verb"),
		SubjectType: q.Get("subject_type"),
	}
	if day := q.Get("day"); day != "" {
		t, err := time.Parse("2006-01-02", day)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad_request", "day must be YYYY-MM-DD", nil)
			return
		}
		f.Day = &t
	}

	sort := repo.DefaultAuditSort()
	if col := q.Get("sort"); col != "" {
		sort = repo.AuditSort{Column: col, Desc: q.Get("dir") == "desc"}
		sort.Normalize()
	}

	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("page_size"))

	res, err := h.audit.List(r.Context(), f, sort, pagination.NewPageRequest(page, size))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// Stats never fails; a store outage yields an all-zero snapshot.
func (h *AuditHandler) Stats(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.audit.Stats(r.Context(), time.Now()))
}

type purgeReq struct {
	Days int `json:"days"`
}

func (h *AuditHandler) Purge(w http.ResponseWriter, r *http.Request) {
	var req purgeReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
		return
	}
	deleted, err := h.audit.PurgeOlderThan(r.Context(), req.Days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"deleted_count": deleted, "days": req.Days})
}
