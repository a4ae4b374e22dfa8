package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/maplewood-labs/participate-backend/internal/requestdata"
	"github.com/maplewood-labs/participate-backend/internal/services"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

type ParticipationHandler struct {
	admin      services.AdminService
	directory  services.DirectoryService
	display    services.DisplayService
	yearSelect services.YearSelectService
}

func NewParticipationHandler(
	admin services.AdminService,
	directory services.DirectoryService,
	display services.DisplayService,
	yearSelect services.YearSelectService,
) *ParticipationHandler {
	return &ParticipationHandler{admin: admin, directory: directory, display: display, yearSelect: yearSelect}
}

// GET /api/participations
func (h *ParticipationHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	listings, err := h.directory.ParticipationsAdminList(c.Request.Context(), rd)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list participations")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"participations": listings})
}

// POST /api/participations
func (h *ParticipationHandler) Save(c *gin.Context) {
	var row types.Participation
	if err := c.ShouldBindJSON(&row); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if row.PersonID == uuid.Nil || row.GroupID == uuid.Nil {
		RespondError(c, http.StatusBadRequest, "person_id and group_id are required")
		return
	}
	if err := h.admin.SaveParticipation(c.Request.Context(), &row); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"participation": row})
}

// DELETE /api/participations/:id
func (h *ParticipationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid participation id")
		return
	}
	if err := h.admin.DeleteParticipation(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete participation")
		return
	}
	RespondOK(c, http.StatusOK, nil)
}

// GET /api/participations/:id/years
func (h *ParticipationHandler) YearsDisplay(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid participation id")
		return
	}
	display, err := h.display.ParticipationYearsDisplay(c.Request.Context(), id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to format years")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"years": display})
}

// GET /api/participations/:id/years/widget
func (h *ParticipationHandler) YearsWidget(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid participation id")
		return
	}
	html, err := h.yearSelect.Widget(c.Request.Context(), id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to render widget")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// GET /api/participations/year-choices
func (h *ParticipationHandler) YearChoices(c *gin.Context) {
	choices, err := h.yearSelect.Choices(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list year choices")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"choices": choices})
}
