package emotion

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RecordStore persists classification records for the emotion trail.
type RecordStore interface {
	InsertEmotionRecord(ctx context.Context, rec Record) error
	SummarizeEmotions(ctx context.Context, ownerID string, sinceMS int64) (map[Category]int, error)
}

// Engine bundles detection, template selection, and the stored emotion trail.
type Engine struct {
	classifier *Classifier
	selector   *TemplateSelector
	records    RecordStore
	log        zerolog.Logger
}

func NewEngine(classifier *Classifier, selector *TemplateSelector, records RecordStore, log zerolog.Logger) *Engine {
	return &Engine{
		classifier: classifier,
		selector:   selector,
		records:    records,
		log:        log.With().Str("component", "emotion.engine").Logger(),
	}
}

// Detect classifies text without side effects.
func (e *Engine) Detect(ctx context.Context, text string) Result {
	return e.classifier.Detect(ctx, text)
}

// RespondTo classifies text and selects a matching reply template.
func (e *Engine) RespondTo(ctx context.Context, text string) (Result, string) {
	res := e.classifier.Detect(ctx, text)
	return res, e.selector.Select(res.Primary, res.PrimaryIntensity)
}

// ReplyFor selects a reply template for an already-classified result.
func (e *Engine) ReplyFor(res Result) string {
	return e.selector.Select(res.Primary, res.PrimaryIntensity)
}

// Track classifies text and appends a record to the owner's emotion trail.
// A failed write does not invalidate the classification.
func (e *Engine) Track(ctx context.Context, ownerID, source, text string) (Result, error) {
	res := e.classifier.Detect(ctx, text)
	if e.records == nil {
		return res, nil
	}
	rec := Record{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Source:      source,
		Category:    res.Primary,
		Intensity:   res.PrimaryIntensity,
		Confidence:  res.Confidence,
		CreatedAtMS: time.Now().UnixMilli(),
	}
	if err := e.records.InsertEmotionRecord(ctx, rec); err != nil {
		e.log.Warn().Err(err).Str("owner", ownerID).Msg("emotion record write failed")
		return res, fmt.Errorf("insert emotion record: %w", err)
	}
	return res, nil
}

// Summary reports how often each category was recorded for the owner since
// the given time.
func (e *Engine) Summary(ctx context.Context, ownerID string, since time.Time) (map[Category]int, error) {
	if e.records == nil {
		return map[Category]int{}, nil
	}
	return e.records.SummarizeEmotions(ctx, ownerID, since.UnixMilli())
}
