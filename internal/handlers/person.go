package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/maplewood-labs/participate-backend/internal/requestdata"
	"github.com/maplewood-labs/participate-backend/internal/services"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

type PersonHandler struct {
	admin     services.AdminService
	directory services.DirectoryService
	display   services.DisplayService
}

func NewPersonHandler(admin services.AdminService, directory services.DirectoryService, display services.DisplayService) *PersonHandler {
	return &PersonHandler{admin: admin, directory: directory, display: display}
}

// GET /api/people
func (h *PersonHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	people, err := h.directory.PeopleAdminList(c.Request.Context(), rd)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list people")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"people": people})
}

// GET /api/people/:id/participations
func (h *PersonHandler) Participations(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid person id")
		return
	}
	listings, err := h.directory.PersonParticipations(c.Request.Context(), id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list participations")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"participations": listings})
}

// GET /api/people/:id/summary
func (h *PersonHandler) Summary(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid person id")
		return
	}
	summary, err := h.display.PersonParticipationSummary(c.Request.Context(), id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load summary")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"summary": summary})
}

// POST /api/people
func (h *PersonHandler) Save(c *gin.Context) {
	var row types.Person
	if err := c.ShouldBindJSON(&row); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.admin.SavePerson(c.Request.Context(), &row); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"person": row})
}

// DELETE /api/people/:id
func (h *PersonHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid person id")
		return
	}
	if err := h.admin.DeletePerson(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete person")
		return
	}
	RespondOK(c, http.StatusOK, nil)
}
