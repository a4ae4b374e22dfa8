package services_test

import (
	"archive/zip"
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/maplewood-labs/participate-backend/internal/services"
)

func writePNG(t *testing.T, w *zip.Writer, name string, size int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	f, err := w.Create(name)
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
}

func buildArchive(t *testing.T, build func(w *zip.Writer)) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "badges.zip")
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	w := zip.NewWriter(out)
	build(w)
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := out.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestProcessArchiveCreatesAndSkips(t *testing.T) {
	env := newTestEnv(t)
	svc := services.NewBadgeImportService(env.log, env.badges, t.TempDir())

	path := buildArchive(t, func(w *zip.Writer) {
		writePNG(t, w, "team/gold_star.png", 512)
		writePNG(t, w, "team/too_small.png", 100)
	})

	result, err := svc.ProcessArchive(context.Background(), path)
	if err != nil {
		t.Fatalf("process archive: %v", err)
	}
	if result.Created != 1 || result.Skipped != 1 {
		t.Fatalf("result = %+v, want 1 created / 1 skipped", result)
	}

	exists, err := env.badges.TitleExists(context.Background(), nil, "Team - Gold Star")
	if err != nil {
		t.Fatalf("title lookup: %v", err)
	}
	if !exists {
		t.Fatal(`expected badge titled "Team - Gold Star"`)
	}
}

func TestProcessArchiveSkipsDuplicatesAndJunk(t *testing.T) {
	env := newTestEnv(t)
	svc := services.NewBadgeImportService(env.log, env.badges, t.TempDir())

	path := buildArchive(t, func(w *zip.Writer) {
		writePNG(t, w, "team/gold_star.png", 512)
		writePNG(t, w, "__MACOSX/team/gold_star.png", 512)
		f, err := w.Create("team/readme.txt")
		if err != nil {
			t.Fatalf("create entry: %v", err)
		}
		f.Write([]byte("not an image"))
	})

	first, err := svc.ProcessArchive(context.Background(), path)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Created != 1 || first.Skipped != 0 {
		t.Fatalf("first run = %+v, want 1 created / 0 skipped", first)
	}

	second, err := svc.ProcessArchive(context.Background(), path)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Created != 0 || second.Skipped != 1 {
		t.Fatalf("second run = %+v, want 0 created / 1 skipped", second)
	}
}

func TestProcessArchiveBadPath(t *testing.T) {
	env := newTestEnv(t)
	svc := services.NewBadgeImportService(env.log, env.badges, t.TempDir())

	if _, err := svc.ProcessArchive(context.Background(), filepath.Join(t.TempDir(), "missing.zip")); err == nil {
		t.Fatal("expected error for missing archive")
	}
}

func TestBadgeTitleFromPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"team/gold_star.png", "Team - Gold Star"},
		{"community-service/helping_hand.png", "Community Service - Helping Hand"},
		{"solo.png", "Solo"},
	}
	for _, tc := range cases {
		if got := services.BadgeTitleFromPath(tc.in); got != tc.want {
			t.Fatalf("BadgeTitleFromPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
