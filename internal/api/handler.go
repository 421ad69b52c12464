package api

import (
	"time"

	"phone-inspection-backend/internal/blob"
	"phone-inspection-backend/internal/report"
	"phone-inspection-backend/internal/session"
	"phone-inspection-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store      store.Store
	sessions   session.Manager
	uploader   blob.Uploader
	exporter   *report.Exporter
	cookieName string
	sessionTTL time.Duration
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, sessions session.Manager, uploader blob.Uploader, exporter *report.Exporter, cookieName string, sessionTTL time.Duration) *Handler {
	return &Handler{
		store:      s,
		sessions:   sessions,
		uploader:   uploader,
		exporter:   exporter,
		cookieName: cookieName,
		sessionTTL: sessionTTL,
	}
}
