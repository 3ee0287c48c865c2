package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"civic-reporter-go/internal/domain/analytics"
	"civic-reporter-go/internal/domain/validation"
	"civic-reporter-go/internal/platform/config"
	"civic-reporter-go/internal/platform/logging"
	"civic-reporter-go/internal/platform/storage"
)

type fixedCaptioner struct {
	reply string
	calls int
}

func (f *fixedCaptioner) Caption(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.reply, nil
}

type fixedScorer struct {
	reply string
	calls int
}

func (f *fixedScorer) Score(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.reply, nil
}

type testEnv struct {
	router    *Router
	captioner *fixedCaptioner
	scorer    *fixedScorer
	db        *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Uploads.Dir = t.TempDir()
	logger := logging.Discard()

	dsn := fmt.Sprintf("file:http-%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&storage.Issue{}, &storage.IssueValidation{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	captioner := &fixedCaptioner{reply: "A pothole in a road"}
	scorer := &fixedScorer{reply: "085"}
	pipeline := validation.NewPipeline(
		validation.NewGate(cfg.ImageGate, logger),
		captioner,
		scorer,
		logger,
	)

	router, err := Build(cfg, logger)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	svc, err := NewService(
		cfg,
		logger,
		pipeline,
		storage.NewIssueRepository(db),
		storage.NewValidationRepository(db),
		analytics.NewService(db, cfg.Analytics, nil, logger),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	svc.Register(router.API)

	return &testEnv{
		router:    router,
		captioner: captioner,
		scorer:    scorer,
		db:        db,
	}
}

func multipartReport(t *testing.T, filename string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if filename != "" {
		part, err := writer.CreateFormFile("photo", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestReportAccepted(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartReport(t, "pothole.png", testPNG(t, 500, 500), map[string]string{
		"title":        "Pothole",
		"description":  "Deep pothole near the market",
		"category":     "Roads",
		"constituency": "North",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/report", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	env.router.Engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			IssueID    string            `json:"issue_id"`
			Validation validation.Result `json:"validation"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Data.IssueID == "" {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
	if resp.Data.Validation.Score != "085" || resp.Data.Validation.Caption != "A pothole in a road" {
		t.Errorf("unexpected validation payload: %+v", resp.Data.Validation)
	}

	var count int64
	if err := env.db.Model(&storage.IssueValidation{}).Count(&count).Error; err != nil {
		t.Fatalf("count validations: %v", err)
	}
	if count != 1 {
		t.Errorf("persisted %d validation rows, expected 1", count)
	}
}

func TestReportRejectedImageSkipsRemoteCalls(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartReport(t, "tiny.png", testPNG(t, 50, 50), map[string]string{
		"description": "pothole",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/report", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	env.router.Engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if env.captioner.calls != 0 || env.scorer.calls != 0 {
		t.Errorf("remote calls on rejected image: caption=%d score=%d", env.captioner.calls, env.scorer.calls)
	}

	var count int64
	if err := env.db.Model(&storage.Issue{}).Count(&count).Error; err != nil {
		t.Fatalf("count issues: %v", err)
	}
	if count != 0 {
		t.Errorf("rejected submission persisted %d issues", count)
	}
}

func TestReportMissingPhoto(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartReport(t, "", nil, map[string]string{"description": "pothole"})

	req := httptest.NewRequest(http.MethodPost, "/api/report", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	env.router.Engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != validation.MsgNoFile {
		t.Errorf("message = %q, expected %q", resp.Message, validation.MsgNoFile)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	env.router.Engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool                `json:"success"`
		Data    analytics.Dashboard `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatalf("dashboard failed: %s", rec.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	env.router.Engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}
