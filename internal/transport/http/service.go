package httptransport

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"civic-reporter-go/internal/domain/analytics"
	"civic-reporter-go/internal/domain/validation"
	"civic-reporter-go/internal/platform/config"
	"civic-reporter-go/internal/platform/errors"
	"civic-reporter-go/internal/platform/logging"
	"civic-reporter-go/internal/platform/storage"
)

// Service exposes submission intake and dashboard endpoints.
type Service struct {
	cfg         *config.Config
	logger      *logging.Logger
	pipeline    *validation.Pipeline
	issues      *storage.IssueRepository
	validations *storage.ValidationRepository
	analytics   *analytics.Service
}

func NewService(
	cfg *config.Config,
	logger *logging.Logger,
	pipeline *validation.Pipeline,
	issues *storage.IssueRepository,
	validations *storage.ValidationRepository,
	analyticsSvc *analytics.Service,
) (*Service, error) {
	if cfg == nil {
		return nil, errors.New(errors.KindTransport, "service.new", "config is required")
	}
	if pipeline == nil {
		return nil, errors.New(errors.KindTransport, "service.new", "pipeline is required")
	}
	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.KindTransport, "service.new", "create uploads directory", err)
	}
	return &Service{
		cfg:         cfg,
		logger:      logger,
		pipeline:    pipeline,
		issues:      issues,
		validations: validations,
		analytics:   analyticsSvc,
	}, nil
}

// Register wires the routes onto the API group.
func (s *Service) Register(api *gin.RouterGroup) {
	api.POST("/report", s.handleReport)
	api.GET("/issues/:id/validations", s.handleIssueValidations)
	api.GET("/dashboard", s.handleDashboard)
	api.GET("/health", s.handleHealth)
}

type reportResponse struct {
	IssueID    string            `json:"issue_id"`
	Validation validation.Result `json:"validation"`
}

func (s *Service) handleReport(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		RespondError(c, http.StatusBadRequest, validation.MsgNoFile, nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "could not read uploaded file", nil)
		return
	}
	defer file.Close()

	description := c.PostForm("description")
	title := c.PostForm("title")
	if title == "" {
		title = "Untitled report"
	}

	// The photo is stored locally before validation so the caption stage can
	// read it from disk; a rejected upload is removed again.
	savedPath, err := s.saveUpload(fileHeader.Filename, file)
	if err != nil {
		s.logger.Error("save upload: %v", err)
		RespondError(c, http.StatusInternalServerError, "could not store uploaded file", nil)
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		RespondError(c, http.StatusInternalServerError, "could not rewind uploaded file", nil)
		return
	}

	upload := &validation.Upload{
		Filename: fileHeader.Filename,
		Content:  file,
	}
	result := s.pipeline.Run(c.Request.Context(), upload, savedPath, description)

	if !result.ImageValid {
		_ = os.Remove(savedPath)
		RespondError(c, http.StatusBadRequest, result.ImageMessage, result)
		return
	}

	issue := &storage.Issue{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  description,
		Category:     c.PostForm("category"),
		Constituency: c.PostForm("constituency"),
		PhotoPath:    savedPath,
		CreatedAt:    time.Now(),
	}
	if err := s.issues.Save(c.Request.Context(), issue); err != nil {
		s.logger.Error("persist issue: %v", err)
		RespondError(c, http.StatusInternalServerError, "could not persist issue", nil)
		return
	}

	record := &storage.IssueValidation{
		IssueID:    issue.ID,
		ImageValid: result.ImageValid,
		ImageMsg:   result.ImageMessage,
		Caption:    result.Caption,
		CivicScore: result.Score,
		CreatedAt:  time.Now(),
	}
	if err := s.validations.Save(c.Request.Context(), record); err != nil {
		s.logger.Error("persist validation: %v", err)
	}

	RespondSuccess(c, http.StatusCreated, reportResponse{
		IssueID:    issue.ID,
		Validation: result,
	}, "report accepted")
}

func (s *Service) handleIssueValidations(c *gin.Context) {
	issueID := c.Param("id")

	issue, err := s.issues.FindByID(c.Request.Context(), issueID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not load issue", nil)
		return
	}
	if issue == nil {
		RespondError(c, http.StatusNotFound, "issue not found", nil)
		return
	}

	records, err := s.validations.ListByIssueID(c.Request.Context(), issueID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not load validations", nil)
		return
	}
	RespondSuccess(c, http.StatusOK, records, "")
}

func (s *Service) handleDashboard(c *gin.Context) {
	dashboard, err := s.analytics.GetDashboard(c.Request.Context())
	if err != nil {
		s.logger.Error("dashboard: %v", err)
		RespondError(c, http.StatusInternalServerError, "could not build dashboard", nil)
		return
	}
	RespondSuccess(c, http.StatusOK, dashboard, "")
}

func (s *Service) handleHealth(c *gin.Context) {
	RespondSuccess(c, http.StatusOK, gin.H{"status": "ok"}, "")
}

func (s *Service) saveUpload(filename string, content io.Reader) (string, error) {
	ext := filepath.Ext(filename)
	path := filepath.Join(s.cfg.Uploads.Dir, uuid.NewString()+ext)

	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, content); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}
