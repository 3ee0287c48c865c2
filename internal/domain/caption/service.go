package caption

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"civic-reporter-go/internal/platform/config"
	"civic-reporter-go/internal/platform/errors"
	"civic-reporter-go/internal/platform/logging"
)

// Placeholder captions returned when the real caption cannot be produced.
// The value is always a non-empty string; callers never see an error.
const (
	PlaceholderUnavailable   = "Caption generation unavailable"
	PlaceholderNotFound      = "Image file not found"
	PlaceholderNone          = "No caption generated"
	PlaceholderExtractFailed = "Caption extraction failed"
)

// Service requests captions from a gradio-style HTTP captioning endpoint.
// The remote capability is resolved once at construction: an empty BaseURL
// means captions degrade to placeholders for the lifetime of the service.
type Service struct {
	cfg    config.CaptionConfig
	client *http.Client
	logger *logging.Logger
}

func NewService(cfg config.CaptionConfig, logger *logging.Logger) *Service {
	s := &Service{
		cfg:    cfg,
		logger: logger,
	}
	if cfg.BaseURL != "" {
		timeout := time.Duration(cfg.TimeoutSec) * time.Second
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		s.client = &http.Client{Timeout: timeout}
	} else {
		logger.Warn("captioning service not configured, captions will degrade to placeholders")
	}
	return s
}

// Available reports whether the remote capability was configured.
func (s *Service) Available() bool {
	return s.client != nil
}

type predictRequest struct {
	Data []any `json:"data"`
}

type predictResponse struct {
	Data json.RawMessage `json:"data"`
}

// Caption returns a caption for the image at imagePath. It is total: every
// failure path yields a placeholder string, with the kind-tagged error
// attached for internal observability.
func (s *Service) Caption(ctx context.Context, imagePath string) (string, error) {
	if s.client == nil {
		return PlaceholderUnavailable,
			errors.New(errors.KindCaption, "caption.request", "captioning service not configured")
	}

	raw, err := os.ReadFile(imagePath)
	if err != nil {
		if os.IsNotExist(err) {
			return PlaceholderNotFound,
				errors.Wrap(errors.KindCaption, "caption.read", "read image file", err)
		}
		// Permission and I/O failures are generation failures, not absence.
		return fmt.Sprintf("Caption generation failed: %v", err),
			errors.Wrap(errors.KindCaption, "caption.read", "read image file", err)
	}

	payload := predictRequest{
		Data: []any{
			base64.StdEncoding.EncodeToString(raw),
			s.cfg.TaskPrompt,
			nil,
			s.cfg.ModelName,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("Caption generation failed: %v", err),
			errors.Wrap(errors.KindCaption, "caption.encode", "encode request", err)
	}

	url := strings.TrimSuffix(s.cfg.BaseURL, "/") + "/run/process_image"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Sprintf("Caption generation failed: %v", err),
			errors.Wrap(errors.KindCaption, "caption.request", "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Sprintf("Caption generation failed: %v", err),
			errors.Wrap(errors.KindCaption, "caption.request", "captioning request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Caption generation failed: status %d", resp.StatusCode),
			errors.New(errors.KindCaption, "caption.request",
				fmt.Sprintf("captioning service returned status %d", resp.StatusCode))
	}

	var reply predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return fmt.Sprintf("Caption generation failed: %v", err),
			errors.Wrap(errors.KindCaption, "caption.decode", "decode reply", err)
	}

	return Extract(reply.Data), nil
}
