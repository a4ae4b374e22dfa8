package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"gorm.io/datatypes"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

const (
	// JobTypeBadgeZipImport identifies queued archive imports.
	JobTypeBadgeZipImport = "badge_zip_import"

	badgeTargetDimension = 512
	badgeDimensionSlack  = 0.2
)

// BadgeZipPayload is the queued-job payload for an archive import.
type BadgeZipPayload struct {
	ZipPath string `json:"zip_path"`
}

// BadgeImportResult summarizes one archive run. Skips cover duplicate titles,
// rejected dimensions and per-entry failures; none of them abort the run.
// Directories, resource forks and non-png entries are ignored outright.
type BadgeImportResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// BadgeImportService walks a zip of badge art and creates one badge row per
// usable png, deriving the title from the entry path.
type BadgeImportService interface {
	ProcessArchive(ctx context.Context, zipPath string) (*BadgeImportResult, error)
	HandleJob(ctx context.Context, payload datatypes.JSON) error
}

type badgeImportService struct {
	log       *logger.Logger
	badgeRepo repos.BadgeRepo
	mediaRoot string
}

func NewBadgeImportService(baseLog *logger.Logger, badgeRepo repos.BadgeRepo, mediaRoot string) BadgeImportService {
	return &badgeImportService{
		log:       baseLog.With("service", "BadgeImportService"),
		badgeRepo: badgeRepo,
		mediaRoot: mediaRoot,
	}
}

// HandleJob adapts ProcessArchive to the job queue. The uploaded archive is a
// temp file owned by this run, so it is removed whatever the outcome.
func (s *badgeImportService) HandleJob(ctx context.Context, payload datatypes.JSON) error {
	var p BadgeZipPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if p.ZipPath == "" {
		return fmt.Errorf("payload missing zip_path")
	}
	defer func() {
		if err := os.Remove(p.ZipPath); err != nil && !os.IsNotExist(err) {
			s.log.Warn("Failed to remove uploaded archive", "path", p.ZipPath, "error", err)
		}
	}()

	result, err := s.ProcessArchive(ctx, p.ZipPath)
	if err != nil {
		return err
	}
	s.log.Info("Badge archive processed", "path", p.ZipPath, "created", result.Created, "skipped", result.Skipped)
	return nil
}

func (s *badgeImportService) ProcessArchive(ctx context.Context, zipPath string) (*BadgeImportResult, error) {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	result := &BadgeImportResult{}
	for _, entry := range reader.File {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		if !importableEntry(entry) {
			continue
		}
		created, err := s.importEntry(ctx, entry)
		if err != nil {
			s.log.Warn("Badge entry skipped", "entry", entry.Name, "error", err)
			result.Skipped++
			continue
		}
		if created {
			result.Created++
		} else {
			result.Skipped++
		}
	}
	return result, nil
}

func (s *badgeImportService) importEntry(ctx context.Context, entry *zip.File) (bool, error) {
	rc, err := entry.Open()
	if err != nil {
		return false, fmt.Errorf("open entry: %w", err)
	}
	raw, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return false, fmt.Errorf("read entry: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return false, fmt.Errorf("decode image: %w", err)
	}
	bounds := img.Bounds()
	if !dimensionOK(bounds.Dx()) || !dimensionOK(bounds.Dy()) {
		return false, fmt.Errorf("dimensions %dx%d outside accepted range", bounds.Dx(), bounds.Dy())
	}

	title := BadgeTitleFromPath(entry.Name)
	exists, err := s.badgeRepo.TitleExists(ctx, nil, title)
	if err != nil {
		return false, fmt.Errorf("check title: %w", err)
	}
	if exists {
		return false, nil
	}

	imagePath, err := s.storeImage(entry.Name, raw)
	if err != nil {
		return false, fmt.Errorf("store image: %w", err)
	}

	badge := &types.Badge{
		Title:     title,
		ImagePath: imagePath,
		IsActive:  true,
	}
	if _, err := s.badgeRepo.Create(ctx, nil, badge); err != nil {
		return false, fmt.Errorf("create badge: %w", err)
	}
	return true, nil
}

func (s *badgeImportService) storeImage(entryName string, raw []byte) (string, error) {
	dir := filepath.Join(s.mediaRoot, "badges")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dest := filepath.Join(dir, filepath.Base(entryName))
	if err := os.WriteFile(dest, raw, 0o644); err != nil {
		return "", err
	}
	return dest, nil
}

func importableEntry(entry *zip.File) bool {
	if entry.FileInfo().IsDir() {
		return false
	}
	name := entry.Name
	if strings.Contains(name, "__MACOSX") {
		return false
	}
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(base), ".png")
}

func dimensionOK(px int) bool {
	slack := float64(badgeDimensionSlack)
	low := int(float64(badgeTargetDimension) * (1 - slack))
	high := int(float64(badgeTargetDimension) * (1 + slack))
	return px >= low && px <= high
}

// BadgeTitleFromPath derives "Folder - File" from an archive path like
// "team/gold_star.png": underscores and hyphens become spaces and each word
// is capitalized.
func BadgeTitleFromPath(entryName string) string {
	cleaned := filepath.ToSlash(entryName)
	dir := titleCaseWords(filepath.Base(filepath.Dir(cleaned)))
	base := filepath.Base(cleaned)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	file := titleCaseWords(base)
	if dir == "" || dir == "." {
		return file
	}
	return dir + " - " + file
}

func titleCaseWords(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
