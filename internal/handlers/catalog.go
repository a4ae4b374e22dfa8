package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

// CatalogHandler serves the supporting reference data: pathways, per-group
// themes and the core-competency list.
type CatalogHandler struct {
	pathwayRepo    repos.PathwayRepo
	themeRepo      repos.ThemeRepo
	competencyRepo repos.CoreCompetencyRepo
}

func NewCatalogHandler(pathwayRepo repos.PathwayRepo, themeRepo repos.ThemeRepo, competencyRepo repos.CoreCompetencyRepo) *CatalogHandler {
	return &CatalogHandler{pathwayRepo: pathwayRepo, themeRepo: themeRepo, competencyRepo: competencyRepo}
}

// GET /api/pathways
func (h *CatalogHandler) ListPathways(c *gin.Context) {
	rows, err := h.pathwayRepo.List(c.Request.Context(), nil)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list pathways")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"pathways": rows})
}

// POST /api/pathways
func (h *CatalogHandler) SavePathway(c *gin.Context) {
	var row types.Pathway
	if err := c.ShouldBindJSON(&row); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.pathwayRepo.Save(c.Request.Context(), nil, &row); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"pathway": row})
}

// GET /api/groups/:id/theme
func (h *CatalogHandler) GroupTheme(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid group id")
		return
	}
	theme, err := h.themeRepo.GetByGroupID(c.Request.Context(), nil, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load theme")
		return
	}
	if theme == nil {
		RespondError(c, http.StatusNotFound, "no theme for group")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"theme": theme})
}

// POST /api/themes
func (h *CatalogHandler) SaveTheme(c *gin.Context) {
	var row types.Theme
	if err := c.ShouldBindJSON(&row); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.themeRepo.Save(c.Request.Context(), nil, &row); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"theme": row})
}

// GET /api/core-competencies
func (h *CatalogHandler) ListCompetencies(c *gin.Context) {
	rows, err := h.competencyRepo.List(c.Request.Context(), nil)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list core competencies")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"core_competencies": rows})
}
