package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/AminHassanDouale/ilmacademy-sub004/internal/models"
	"github.com/AminHassanDouale/ilmacademy-sub004/internal/services"
	"github.com/mssola/useragent"
)

// AccessAudit is the single call-site wrapper for "page was accessed"
// audit events: every GET screen route wrapped by it records one access
// event after a successful response. Mutations record their own events in
// the services, through the same recorder.
func AccessAudit(audit *services.AuditService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if r.Method != http.MethodGet || rec.status >= 400 {
				return
			}
			audit.RecordAccess(services.RecordInput{
				ActorID:     ActorID(r.Context()),
				Verb:        models.VerbAccess,
				Description: "Accessed " + routePattern(r),
				Metadata:    requestMeta(r),
			})
		})
	}
}

// requestMeta captures the request context included in audit metadata.
func requestMeta(r *http.Request) map[string]any {
	meta := map[string]any{
		"ip":   clientIP(r),
		"path": r.URL.Path,
	}
	if id := RequestIDFrom(r.Context()); id != "" {
		meta["request_id"] = id
	}
	if uaStr := r.UserAgent(); uaStr != "" {
		ua := useragent.New(uaStr)
		name, version := ua.Browser()
		meta["browser"] = strings.TrimSpace(name + " " + version)
		meta["os"] = ua.OS()
	}
	return meta
}

// RequestMeta exposes the same capture to mutation handlers.
func RequestMeta(r *http.Request) map[string]any { return requestMeta(r) }

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i > 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
