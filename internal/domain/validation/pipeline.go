package validation

import (
	"context"

	"civic-reporter-go/internal/platform/errors"
	"civic-reporter-go/internal/platform/logging"
)

// Captioner produces a caption for the image at the given path. The returned
// string is always usable (a placeholder when degraded); the error carries
// the internal kind tag for observability only.
type Captioner interface {
	Caption(ctx context.Context, imagePath string) (string, error)
}

// Scorer rates a caption/description pair. The returned string is always a
// 3-digit code; the error is informational, as with Captioner.
type Scorer interface {
	Score(ctx context.Context, caption, description string) (string, error)
}

// Pipeline runs the end-to-end submission check: gate, then caption, then
// score. Each stage is total; a failed stage degrades to its fallback value
// instead of aborting the submission.
type Pipeline struct {
	gate      *Gate
	captioner Captioner
	scorer    Scorer
	logger    *logging.Logger
}

func NewPipeline(gate *Gate, captioner Captioner, scorer Scorer, logger *logging.Logger) *Pipeline {
	return &Pipeline{
		gate:      gate,
		captioner: captioner,
		scorer:    scorer,
		logger:    logger,
	}
}

// Run processes a single submission. A gate rejection stops the pipeline
// before any remote call is made. Scoring always receives whichever caption
// value resulted, placeholder or not.
func (p *Pipeline) Run(ctx context.Context, upload *Upload, imagePath, description string) Result {
	outcome := p.gate.Validate(upload)
	if !outcome.Valid {
		return Result{
			ImageValid:   false,
			ImageMessage: outcome.Message,
		}
	}

	caption, err := p.captioner.Caption(ctx, imagePath)
	if err != nil {
		p.logKindError("caption degraded", err)
	}

	score, err := p.scorer.Score(ctx, caption, description)
	if err != nil {
		p.logKindError("scoring degraded", err)
	}

	return Result{
		ImageValid:   true,
		ImageMessage: outcome.Message,
		Caption:      caption,
		Score:        score,
	}
}

func (p *Pipeline) logKindError(msg string, err error) {
	switch errors.KindOf(err) {
	case errors.KindCaption:
		p.logger.Warn("%s (caption service): %v", msg, err)
	case errors.KindScoring:
		p.logger.Warn("%s (scoring service): %v", msg, err)
	default:
		p.logger.Warn("%s: %v", msg, err)
	}
}
