package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/db"
	"github.com/maplewood-labs/participate-backend/internal/handlers"
	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/middleware"
	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/services"
	"github.com/maplewood-labs/participate-backend/internal/types"
	"github.com/maplewood-labs/participate-backend/internal/utils"
)

type progressTestServer struct {
	router       *gin.Engine
	token        string
	user         *types.User
	progressRepo repos.SlideshowProgressRepo
}

func newProgressTestServer(t *testing.T) *progressTestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	log := logger.NewNop()

	userRepo := repos.NewUserRepo(gdb, log)
	progressRepo := repos.NewSlideshowProgressRepo(gdb, log)
	auth := services.NewAuthService(log, userRepo, "test-secret", time.Hour)
	progress := services.NewProgressService(log, progressRepo)
	handler := handlers.NewProgressHandler(progress)

	hashed, err := utils.HashPassword("pw123456")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &types.User{
		Email:    "viewer@example.com",
		Username: "viewer",
		Password: hashed,
		IsActive: true,
	}
	if _, err := userRepo.Create(context.Background(), nil, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, _, err := auth.Login(context.Background(), "viewer@example.com", "pw123456")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	router := gin.New()
	api := router.Group("/api")
	api.Use(middleware.RequireAuth(auth, userRepo, log))
	api.POST("/slideshows/progress", handler.Save)
	api.GET("/slideshows/progress", handler.Get)

	return &progressTestServer{router: router, token: token, user: user, progressRepo: progressRepo}
}

func (s *progressTestServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestProgressSaveUnauthenticated(t *testing.T) {
	s := newProgressTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/slideshows/progress", "", map[string]any{
		"slideshow_slug": "orientation",
		"current_h":      1,
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] == "success" {
		t.Fatal("unauthenticated call reported success")
	}

	row, err := s.progressRepo.GetByUserAndSlug(context.Background(), nil, s.user.ID, "orientation")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if row != nil {
		t.Fatal("unauthenticated call created a record")
	}
}

func TestProgressSaveMissingSlug(t *testing.T) {
	s := newProgressTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/slideshows/progress", s.token, map[string]any{
		"current_h": 1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestProgressSaveAndGetRoundTrip(t *testing.T) {
	s := newProgressTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/slideshows/progress", s.token, map[string]any{
		"slideshow_slug": "orientation",
		"current_h":      2,
		"current_v":      1,
		"max_percentage": 35,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("save status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/api/slideshows/progress?slideshow_slug=orientation", s.token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var body struct {
		Status        string `json:"status"`
		CurrentH      int    `json:"current_h"`
		CurrentV      int    `json:"current_v"`
		MaxPercentage int    `json:"max_percentage"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "success" || body.CurrentH != 2 || body.CurrentV != 1 || body.MaxPercentage != 35 {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestProgressGetMissingSlug(t *testing.T) {
	s := newProgressTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/slideshows/progress", s.token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
