package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/services"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

type RoleHandler struct {
	admin    services.AdminService
	roleRepo repos.RoleRepo
}

func NewRoleHandler(admin services.AdminService, roleRepo repos.RoleRepo) *RoleHandler {
	return &RoleHandler{admin: admin, roleRepo: roleRepo}
}

// GET /api/roles
func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roleRepo.List(c.Request.Context(), nil)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list roles")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"roles": roles})
}

// POST /api/roles
func (h *RoleHandler) Save(c *gin.Context) {
	var row types.Role
	if err := c.ShouldBindJSON(&row); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if row.Title == "" {
		RespondError(c, http.StatusBadRequest, "title is required")
		return
	}
	if err := h.admin.SaveRole(c.Request.Context(), &row); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"role": row})
}

// DELETE /api/roles/:id
func (h *RoleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid role id")
		return
	}
	if err := h.admin.DeleteRole(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete role")
		return
	}
	RespondOK(c, http.StatusOK, nil)
}
