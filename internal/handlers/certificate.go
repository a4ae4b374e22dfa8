package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maplewood-labs/participate-backend/internal/requestdata"
	"github.com/maplewood-labs/participate-backend/internal/services"
)

type CertificateHandler struct {
	svc    services.CertificateService
	render services.CertificateRenderService
}

func NewCertificateHandler(svc services.CertificateService, render services.CertificateRenderService) *CertificateHandler {
	return &CertificateHandler{svc: svc, render: render}
}

// GET /api/certificates/mine issues on first access.
func (h *CertificateHandler) Mine(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	cert, err := h.svc.GetOrCreate(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to load certificate")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"certificate": cert})
}

// POST /api/certificates/mine/image renders the certificate PNG server-side
// and attaches it. Re-rendering overwrites the image but never the issue date.
func (h *CertificateHandler) RenderImage(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	cert, err := h.render.RenderAndAttach(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to render certificate image")
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"certificate": cert})
}
