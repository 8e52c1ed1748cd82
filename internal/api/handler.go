package api

import (
	"equipment-tracker/internal/metrics"
	"equipment-tracker/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	metrics *metrics.Registry
}

// NewHandler creates a new API handler. reg may be nil.
func NewHandler(s store.Store, reg *metrics.Registry) *Handler {
	return &Handler{
		store:   s,
		metrics: reg,
	}
}
