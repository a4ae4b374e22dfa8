package services

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

const (
	certWidth  = 1200
	certHeight = 850
)

// CertificateRenderService draws the certificate PNG for a user and attaches
// it to their certificate row. The issue date printed on the image comes from
// the row, so re-rendering never shifts it.
type CertificateRenderService interface {
	RenderAndAttach(ctx context.Context, userID uuid.UUID) (*types.Certificate, error)
	Render(user *types.User, issuedAt time.Time) (bytes.Buffer, error)
}

type certificateRenderService struct {
	log       *logger.Logger
	certSvc   CertificateService
	userRepo  repos.UserRepo
	mediaRoot string

	titleFace font.Face
	nameFace  font.Face
	bodyFace  font.Face
}

// NewCertificateRenderService loads the certificate font once at wiring time.
// An empty fontPath falls back to the embedded Go Regular face.
func NewCertificateRenderService(
	baseLog *logger.Logger,
	certSvc CertificateService,
	userRepo repos.UserRepo,
	mediaRoot string,
	fontPath string,
) (CertificateRenderService, error) {
	serviceLog := baseLog.With("service", "CertificateRenderService")

	fontBytes := goregular.TTF
	if strings.TrimSpace(fontPath) != "" {
		serviceLog.Info("Loading certificate font", "font", fontPath)
		raw, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		fontBytes = raw
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	face := func(size float64) font.Face {
		return truetype.NewFace(parsedFont, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
	}

	return &certificateRenderService{
		log:       serviceLog,
		certSvc:   certSvc,
		userRepo:  userRepo,
		mediaRoot: mediaRoot,
		titleFace: face(56),
		nameFace:  face(84),
		bodyFace:  face(30),
	}, nil
}

func (s *certificateRenderService) RenderAndAttach(ctx context.Context, userID uuid.UUID) (*types.Certificate, error) {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	cert, err := s.certSvc.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	buf, err := s.Render(user, cert.IssuedAt)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(s.mediaRoot, "certificates")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create certificate dir: %w", err)
	}
	imagePath := filepath.Join(dir, fmt.Sprintf("%s.png", userID))
	if err := os.WriteFile(imagePath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write certificate image: %w", err)
	}

	s.log.Info("Certificate image rendered", "user_id", userID, "path", imagePath)
	return s.certSvc.AttachImage(ctx, userID, imagePath)
}

func (s *certificateRenderService) Render(user *types.User, issuedAt time.Time) (bytes.Buffer, error) {
	var buf bytes.Buffer
	dc := gg.NewContext(certWidth, certHeight)

	dc.SetColor(color.White)
	dc.Clear()

	dc.SetColor(color.NRGBA{R: 0x1F, G: 0x3A, B: 0x5F, A: 0xFF})
	dc.SetLineWidth(6)
	dc.DrawRectangle(30, 30, certWidth-60, certHeight-60)
	dc.Stroke()

	cx := float64(certWidth) / 2

	dc.SetFontFace(s.titleFace)
	dc.DrawStringAnchored("Certificate of Participation", cx, 180, 0.5, 0.5)

	dc.SetColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF})
	dc.SetFontFace(s.bodyFace)
	dc.DrawStringAnchored("awarded to", cx, 300, 0.5, 0.5)

	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		name = user.Username
	}
	dc.SetColor(color.NRGBA{R: 0x1F, G: 0x3A, B: 0x5F, A: 0xFF})
	dc.SetFontFace(s.nameFace)
	dc.DrawStringAnchored(name, cx, 420, 0.5, 0.5)

	dc.SetColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF})
	dc.SetFontFace(s.bodyFace)
	dc.DrawStringAnchored(fmt.Sprintf("Issued %s", issuedAt.Format("January 2, 2006")), cx, 560, 0.5, 0.5)

	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}
