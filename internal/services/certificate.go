package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

// CertificateService issues one certificate per user. The issue timestamp is
// fixed at first creation; later calls and image attachment never touch it.
type CertificateService interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*types.Certificate, error)
	AttachImage(ctx context.Context, userID uuid.UUID, imagePath string) (*types.Certificate, error)
}

type certificateService struct {
	log  *logger.Logger
	repo repos.CertificateRepo
}

func NewCertificateService(baseLog *logger.Logger, repo repos.CertificateRepo) CertificateService {
	return &certificateService{
		log:  baseLog.With("service", "CertificateService"),
		repo: repo,
	}
}

func (s *certificateService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*types.Certificate, error) {
	existing, err := s.repo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load certificate: %w", err)
	}
	if existing != nil {
		return existing, nil
	}
	row := &types.Certificate{UserID: userID}
	if _, err := s.repo.Create(ctx, nil, row); err != nil {
		return nil, fmt.Errorf("create certificate: %w", err)
	}
	s.log.Info("Certificate issued", "user_id", userID, "issued_at", row.IssuedAt)
	return row, nil
}

func (s *certificateService) AttachImage(ctx context.Context, userID uuid.UUID, imagePath string) (*types.Certificate, error) {
	cert, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateImagePath(ctx, nil, cert.ID, imagePath); err != nil {
		return nil, fmt.Errorf("attach certificate image: %w", err)
	}
	cert.ImagePath = imagePath
	return cert, nil
}
