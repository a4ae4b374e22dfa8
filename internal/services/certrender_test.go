package services_test

import (
	"context"
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/services"
)

func newRenderService(t *testing.T, env *testEnv, mediaRoot string) services.CertificateRenderService {
	t.Helper()
	certSvc := services.NewCertificateService(env.log, repos.NewCertificateRepo(env.db, env.log))
	svc, err := services.NewCertificateRenderService(env.log, certSvc, env.users, mediaRoot, "")
	if err != nil {
		t.Fatalf("build render service: %v", err)
	}
	return svc
}

func TestRenderAndAttachWritesCertificateImage(t *testing.T) {
	env := newTestEnv(t)
	mediaRoot := t.TempDir()
	svc := newRenderService(t, env, mediaRoot)
	user := env.createUser(t, "render@example.com", "Rae", "Ndal")
	ctx := context.Background()

	cert, err := svc.RenderAndAttach(ctx, user.ID)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if cert.ImagePath == "" {
		t.Fatal("certificate has no image path after render")
	}
	if !strings.Contains(cert.ImagePath, "certificates") {
		t.Fatalf("image path %q not under the certificates dir", cert.ImagePath)
	}

	f, err := os.Open(cert.ImagePath)
	if err != nil {
		t.Fatalf("open rendered image: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode rendered image: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 1200 || bounds.Dy() != 850 {
		t.Fatalf("rendered image is %dx%d, want 1200x850", bounds.Dx(), bounds.Dy())
	}
}

func TestRerenderKeepsIssuedAt(t *testing.T) {
	env := newTestEnv(t)
	svc := newRenderService(t, env, t.TempDir())
	user := env.createUser(t, "rerender@example.com", "Re", "Run")
	ctx := context.Background()

	first, err := svc.RenderAndAttach(ctx, user.ID)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := svc.RenderAndAttach(ctx, user.ID)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if first.ID != second.ID {
		t.Fatal("re-render issued a new certificate")
	}
	if !first.IssuedAt.Equal(second.IssuedAt) {
		t.Fatalf("IssuedAt changed across renders: %v vs %v", first.IssuedAt, second.IssuedAt)
	}
}

func TestRenderUnknownUserFails(t *testing.T) {
	env := newTestEnv(t)
	svc := newRenderService(t, env, t.TempDir())

	if _, err := svc.RenderAndAttach(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error for a user that does not exist")
	}
}
