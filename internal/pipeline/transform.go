package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/storm-impact-summary/internal/domain"
	"github.com/couchcryptid/storm-impact-summary/internal/observability"
)

// ImpactTransformer implements Transformer using the domain normalization
// functions, with an LRU memo on classification keyed by the raw EVTYPE
// spelling.
type ImpactTransformer struct {
	cache   *classifyCache
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewTransformer creates an ImpactTransformer with a classification cache of
// the given size.
func NewTransformer(cacheSize int, metrics *observability.Metrics, logger *slog.Logger) *ImpactTransformer {
	return &ImpactTransformer{
		cache:   newClassifyCache(cacheSize),
		metrics: metrics,
		logger:  logger,
	}
}

// Transform parses a raw message and normalizes it into a StormImpact.
// Magnitude codes outside the documented alphabet zero their field out and
// are counted, never failing the record; only a structurally malformed
// payload returns an error.
func (t *ImpactTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.StormImpact, error) {
	rec, err := domain.ParseRawRecord(raw)
	if err != nil {
		return domain.StormImpact{}, err
	}

	impact, warnings := domain.BuildImpact(rec, t.classify)
	for _, warning := range warnings {
		t.metrics.UnrecognizedCodes.Inc()
		t.logger.Debug("damage field zeroed out",
			"error", warning,
			"event_type", rec.EventType,
		)
	}

	return impact, nil
}

// classify consults the memo cache before falling back to the rule scan.
func (t *ImpactTransformer) classify(label string) domain.Category {
	if category, ok := t.cache.get(label); ok {
		return category
	}
	category := domain.Classify(label)
	t.cache.put(label, category)
	return category
}
