package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/maplewood-labs/participate-backend/internal/requestdata"
	"github.com/maplewood-labs/participate-backend/internal/services"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

type GroupHandler struct {
	admin     services.AdminService
	directory services.DirectoryService
}

func NewGroupHandler(admin services.AdminService, directory services.DirectoryService) *GroupHandler {
	return &GroupHandler{admin: admin, directory: directory}
}

// GET /api/groups
func (h *GroupHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	groups, err := h.directory.GroupsAdminList(c.Request.Context(), rd)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list groups")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"groups": groups})
}

// GET /api/groups/:id/participations?page=N
func (h *GroupHandler) Participations(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid group id")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	listings, err := h.directory.GroupParticipations(c.Request.Context(), id, page)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list participations")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"participations": listings, "page": page})
}

// GET /api/groups/:id/facilitators
func (h *GroupHandler) Facilitators(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid group id")
		return
	}
	names, err := h.directory.GroupFacilitatorNames(c.Request.Context(), id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list facilitators")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"facilitators": names})
}

// POST /api/groups
func (h *GroupHandler) Save(c *gin.Context) {
	var row types.Group
	if err := c.ShouldBindJSON(&row); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.admin.SaveGroup(c.Request.Context(), &row); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"group": row})
}

// DELETE /api/groups/:id
func (h *GroupHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid group id")
		return
	}
	if err := h.admin.DeleteGroup(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete group")
		return
	}
	RespondOK(c, http.StatusOK, nil)
}

// DELETE /api/groups/:id/members/:personID
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid group id")
		return
	}
	personID, err := uuid.Parse(c.Param("personID"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid person id")
		return
	}
	if err := h.admin.RemoveGroupMember(c.Request.Context(), groupID, personID); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to remove member")
		return
	}
	RespondOK(c, http.StatusOK, nil)
}
