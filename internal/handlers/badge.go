package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/maplewood-labs/participate-backend/internal/jobs"
	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/requestdata"
	"github.com/maplewood-labs/participate-backend/internal/services"
)

type BadgeHandler struct {
	badgeRepo  repos.BadgeRepo
	jobRunRepo repos.JobRunRepo
	queue      *jobs.Queue
}

func NewBadgeHandler(badgeRepo repos.BadgeRepo, jobRunRepo repos.JobRunRepo, queue *jobs.Queue) *BadgeHandler {
	return &BadgeHandler{badgeRepo: badgeRepo, jobRunRepo: jobRunRepo, queue: queue}
}

// GET /api/badges
func (h *BadgeHandler) List(c *gin.Context) {
	badges, err := h.badgeRepo.List(c.Request.Context(), nil)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to list badges")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"badges": badges})
}

// POST /api/badges/import accepts a zip upload, spools it to a temp file and
// queues the import. The response acknowledges the queued run; progress lives
// on the job row.
func (h *BadgeHandler) ImportArchive(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "authentication required")
		return
	}

	file, err := c.FormFile("archive")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "archive file is required")
		return
	}
	if !strings.EqualFold(filepath.Ext(file.Filename), ".zip") {
		RespondError(c, http.StatusBadRequest, "archive must be a .zip file")
		return
	}

	tmp, err := os.CreateTemp("", "badge-import-*.zip")
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to store upload")
		return
	}
	tmp.Close()
	if err := c.SaveUploadedFile(file, tmp.Name()); err != nil {
		os.Remove(tmp.Name())
		RespondError(c, http.StatusInternalServerError, "failed to store upload")
		return
	}

	run, err := h.queue.Submit(c.Request.Context(), services.JobTypeBadgeZipImport,
		services.BadgeZipPayload{ZipPath: tmp.Name()}, &rd.UserID)
	if err != nil {
		os.Remove(tmp.Name())
		RespondError(c, http.StatusInternalServerError, "failed to queue import")
		return
	}

	RespondOK(c, http.StatusAccepted, gin.H{"job_id": run.ID})
}

// GET /api/badges/import/:id
func (h *BadgeHandler) ImportStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid job id")
		return
	}
	run, err := h.jobRunRepo.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load job")
		return
	}
	if run == nil {
		RespondError(c, http.StatusNotFound, "job not found")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"job": run})
}
