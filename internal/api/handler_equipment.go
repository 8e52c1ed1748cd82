package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"equipment-tracker/internal/logging"
	"equipment-tracker/internal/mw"
	"equipment-tracker/internal/store"
)

// ListEquipment handles GET /api/equipment.
func (h *Handler) ListEquipment(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		h.storageFailure(c, "fetch", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreateEquipment handles POST /api/equipment.
func (h *Handler) CreateEquipment(c *gin.Context) {
	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}
	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidBody})
		return
	}

	created, err := h.store.Create(c.Request.Context(), in)
	if err != nil {
		h.storageFailure(c, "add", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateEquipment handles PUT /api/equipment/:id.
func (h *Handler) UpdateEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req equipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}
	in, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidBody})
		return
	}

	updated, err := h.store.Update(c.Request.Context(), id, in)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse{Error: msgNotFound})
		return
	}
	if err != nil {
		h.storageFailure(c, "update", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteEquipment handles DELETE /api/equipment/:id.
func (h *Handler) DeleteEquipment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	err := h.store.Delete(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse{Error: msgNotFound})
		return
	}
	if err != nil {
		h.storageFailure(c, "delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Health reports whether the database answers a ping.
func (h *Handler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		logging.Warn("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msgInvalidID})
		return 0, false
	}
	return id, true
}

// storageFailure logs the full error and answers with a fixed message so no
// driver detail reaches the caller.
func (h *Handler) storageFailure(c *gin.Context, verb string, err error) {
	logging.Error("equipment storage failure",
		"operation", verb,
		"request_id", mw.GetRequestID(c),
		"error", err,
	)
	if h.metrics != nil {
		h.metrics.StorageErrorsTotal.WithLabelValues(verb).Inc()
	}
	c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to " + verb + " equipment"})
}
