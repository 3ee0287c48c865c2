package validation

import (
	"fmt"
	"image"
	"io"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"civic-reporter-go/internal/platform/config"
	"civic-reporter-go/internal/platform/logging"
)

// Gate messages exposed to submitters.
const (
	MsgNoFile      = "No file provided"
	MsgInvalidType = "Invalid file type."
	MsgTooSmall    = "Image too small."
	MsgTooLarge    = "Image too large."
	MsgValid       = "Valid image"
)

// Gate checks that an uploaded file is a usable photograph before any
// remote call is spent on it.
type Gate struct {
	cfg     config.ImageGateConfig
	logger  *logging.Logger
	allowed map[string]struct{}
}

func NewGate(cfg config.ImageGateConfig, logger *logging.Logger) *Gate {
	allowed := make(map[string]struct{}, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	return &Gate{
		cfg:     cfg,
		logger:  logger,
		allowed: allowed,
	}
}

// Validate applies the gate rules in order, short-circuiting on the first
// failure. It never panics; unexpected decode failures become invalid
// outcomes. The upload cursor is rewound to the start before returning.
func (g *Gate) Validate(upload *Upload) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Outcome{Valid: false, Message: fmt.Sprintf("Invalid image file: %v", r)}
		}
	}()

	if upload == nil || upload.Content == nil {
		return Outcome{Valid: false, Message: MsgNoFile}
	}
	if !g.allowedFile(upload.Filename) {
		return Outcome{Valid: false, Message: MsgInvalidType}
	}

	if _, err := upload.Content.Seek(0, io.SeekStart); err != nil {
		return Outcome{Valid: false, Message: fmt.Sprintf("Invalid image file: %v", err)}
	}

	cfg, format, err := image.DecodeConfig(upload.Content)

	// The same handle feeds the captioning stage, so always rewind.
	if _, seekErr := upload.Content.Seek(0, io.SeekStart); seekErr != nil {
		return Outcome{Valid: false, Message: fmt.Sprintf("Invalid image file: %v", seekErr)}
	}

	if err != nil {
		return Outcome{Valid: false, Message: fmt.Sprintf("Invalid image file: %v", err)}
	}

	if cfg.Width < g.cfg.MinWidth || cfg.Height < g.cfg.MinHeight {
		return Outcome{Valid: false, Message: MsgTooSmall}
	}
	if cfg.Width > g.cfg.MaxWidth || cfg.Height > g.cfg.MaxHeight {
		return Outcome{Valid: false, Message: MsgTooLarge}
	}

	g.logger.Debug("image gate passed: format=%s width=%d height=%d", format, cfg.Width, cfg.Height)
	return Outcome{Valid: true, Message: MsgValid}
}

func (g *Gate) allowedFile(filename string) bool {
	if filename == "" {
		return false
	}
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return false
	}
	_, ok := g.allowed[strings.ToLower(filename[idx+1:])]
	return ok
}
