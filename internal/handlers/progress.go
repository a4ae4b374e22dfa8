package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maplewood-labs/participate-backend/internal/requestdata"
	"github.com/maplewood-labs/participate-backend/internal/services"
)

type ProgressHandler struct {
	svc services.ProgressService
}

func NewProgressHandler(svc services.ProgressService) *ProgressHandler {
	return &ProgressHandler{svc: svc}
}

type saveProgressRequest struct {
	SlideshowSlug string `json:"slideshow_slug"`
	CurrentH      *int   `json:"current_h"`
	CurrentV      *int   `json:"current_v"`
	MaxPercentage *int   `json:"max_percentage"`
	Completed     *bool  `json:"completed"`
}

// POST /api/slideshows/progress
func (h *ProgressHandler) Save(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var req saveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SlideshowSlug == "" {
		RespondError(c, http.StatusBadRequest, "slideshow_slug is required")
		return
	}

	if _, err := h.svc.Save(c.Request.Context(), rd.UserID, services.ProgressInput{
		SlideshowSlug: req.SlideshowSlug,
		CurrentH:      req.CurrentH,
		CurrentV:      req.CurrentV,
		MaxPercentage: req.MaxPercentage,
		Completed:     req.Completed,
	}); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to save progress")
		return
	}
	RespondOK(c, http.StatusOK, nil)
}

// GET /api/slideshows/progress?slideshow_slug=...
func (h *ProgressHandler) Get(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	slug := c.Query("slideshow_slug")
	if slug == "" {
		RespondError(c, http.StatusBadRequest, "slideshow_slug is required")
		return
	}

	state, err := h.svc.Get(c.Request.Context(), rd.UserID, slug)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load progress")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{
		"slideshow_slug": state.SlideshowSlug,
		"current_h":      state.CurrentH,
		"current_v":      state.CurrentV,
		"max_percentage": state.MaxPercentage,
		"completed":      state.Completed,
	})
}

// GET /api/slideshows/progress/all
func (h *ProgressHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	states, err := h.svc.ListForUser(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load progress")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"progress": states})
}
