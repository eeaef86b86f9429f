package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"retailetl/internal/config"
	"retailetl/internal/errors"
	"retailetl/pkg/contracts/domain"
)

// Cleaner runs the complete cleaning pipeline over a raw batch:
// normalize, deduplicate, filter, enrich, then the quality-gate recheck.
type Cleaner struct {
	normalizer *Normalizer
	logger     *slog.Logger
	now        func() time.Time
}

// NewCleaner creates a cleaner with the given options. The now function may
// be overridden in tests; it defaults to time.Now.
func NewCleaner(cfg config.CleaningConfig, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{
		normalizer: NewNormalizer(cfg, logger),
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the evaluation-time source. Intended for tests.
func (c *Cleaner) WithClock(now func() time.Time) *Cleaner {
	c.now = now
	return c
}

// Clean transforms the raw batch into the cleaned record set. The returned
// violations come from the non-blocking quality-gate recheck; a non-empty
// list never fails the run. Only a schema mismatch returns an error.
func (c *Cleaner) Clean(ctx context.Context, columns []string, raw []domain.RawRecord) ([]domain.CleanedRecord, []errors.Violation, error) {
	evalNow := c.now()

	normalized, err := c.normalizer.Normalize(columns, raw)
	if err != nil {
		return nil, nil, err
	}
	c.logger.InfoContext(ctx, "normalized raw records", slog.Int("count", len(normalized)))

	deduped := Deduplicate(c.logger, normalized)

	filter := NewQualityFilter(evalNow, c.logger)
	cleaned := filter.Apply(deduped)

	cleaned = Enrich(c.logger, cleaned)

	violations := CheckCleaned(cleaned, evalNow)
	for _, v := range violations {
		c.logger.WarnContext(ctx, "quality gate violation",
			slog.String("check", v.Check),
			slog.Int("rows", v.Count))
	}

	return cleaned, violations, nil
}
