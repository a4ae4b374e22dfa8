package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/services"
)

type GuardianHandler struct {
	admin        services.AdminService
	guardianRepo repos.GuardianStudentRepo
}

func NewGuardianHandler(admin services.AdminService, guardianRepo repos.GuardianStudentRepo) *GuardianHandler {
	return &GuardianHandler{admin: admin, guardianRepo: guardianRepo}
}

type saveGuardianRequest struct {
	GuardianID   uuid.UUID `json:"guardian_id" binding:"required"`
	StudentID    uuid.UUID `json:"student_id" binding:"required"`
	Relationship string    `json:"relationship"`
	Notes        string    `json:"notes"`
}

// POST /api/guardians
func (h *GuardianHandler) Save(c *gin.Context) {
	var req saveGuardianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "guardian_id and student_id are required")
		return
	}
	row, err := h.admin.SaveGuardian(c.Request.Context(), req.GuardianID, req.StudentID, req.Relationship, req.Notes)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"guardian": row})
}

// GET /api/people/:id/guardians
func (h *GuardianHandler) ListForStudent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid person id")
		return
	}
	rows, err := h.guardianRepo.ListByStudentID(c.Request.Context(), nil, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list guardians")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"guardians": rows})
}

// DELETE /api/guardians/:id
func (h *GuardianHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid guardian id")
		return
	}
	if err := h.admin.DeleteGuardian(c.Request.Context(), id); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to delete guardian")
		return
	}
	RespondOK(c, http.StatusOK, nil)
}
