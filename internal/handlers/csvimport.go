package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maplewood-labs/participate-backend/internal/services"
)

type CSVImportHandler struct {
	svc services.CSVImportService
}

func NewCSVImportHandler(svc services.CSVImportService) *CSVImportHandler {
	return &CSVImportHandler{svc: svc}
}

// POST /api/import/people uploads a people CSV. New accounts come back in a
// downloadable credentials CSV when requested with ?credentials=csv.
func (h *CSVImportHandler) ImportPeople(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "csv file is required")
		return
	}
	f, err := file.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "failed to read upload")
		return
	}
	defer f.Close()

	report, err := h.svc.ImportPeople(c.Request.Context(), f)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if c.Query("credentials") == "csv" && len(report.Credentials) > 0 {
		body, cErr := h.svc.CredentialsCSV(report.Credentials)
		if cErr != nil {
			RespondError(c, http.StatusInternalServerError, "failed to render credentials")
			return
		}
		c.Header("Content-Disposition", `attachment; filename="credentials.csv"`)
		c.Data(http.StatusOK, "text/csv", body)
		return
	}

	RespondOK(c, http.StatusOK, gin.H{
		"created":      report.Created,
		"updated":      report.Updated,
		"row_errors":   report.RowErrors,
		"new_accounts": len(report.Credentials),
	})
}

// POST /api/import/guardians
func (h *CSVImportHandler) ImportGuardians(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "csv file is required")
		return
	}
	f, err := file.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "failed to read upload")
		return
	}
	defer f.Close()

	report, err := h.svc.ImportGuardians(c.Request.Context(), f)
	if err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}
	RespondOK(c, http.StatusOK, gin.H{
		"created":    report.Created,
		"row_errors": report.RowErrors,
	})
}

// GET /api/import/people/template
func (h *CSVImportHandler) PeopleTemplate(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="people_template.csv"`)
	c.Data(http.StatusOK, "text/csv", h.svc.PeopleTemplate())
}

// GET /api/import/guardians/template
func (h *CSVImportHandler) GuardianTemplate(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="guardians_template.csv"`)
	c.Data(http.StatusOK, "text/csv", h.svc.GuardianTemplate())
}
