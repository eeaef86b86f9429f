// Package operations sequences the ETL stages: load, clean, dimension build,
// fact resolution, export and the optional warehouse load. It is the only
// component with I/O and error-boundary responsibility; any stage error is
// fatal and aborts the run.
package operations

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"retailetl/internal/config"
	"retailetl/internal/dataprocessing"
	"retailetl/internal/errors"
	"retailetl/internal/exporter"
	"retailetl/internal/infrastructure"
	"retailetl/internal/loader"
	"retailetl/internal/star"
	"retailetl/internal/warehouse"
	"retailetl/pkg/contracts/domain"
)

// Result exposes everything a run produced: the raw and cleaned record sets,
// the star schema, collected warnings and per-stage states. Tables are
// immutable snapshots; nothing mutates them after the run returns.
type Result struct {
	Raw         []domain.RawRecord
	Cleaned     []domain.CleanedRecord
	Schema      domain.StarSchema
	Violations  []errors.Violation
	Referential errors.ReferentialReport
	Stages      []*StageState
}

// Pipeline runs the complete transform for one workbook.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewPipeline creates a pipeline for the given configuration.
func NewPipeline(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{cfg: cfg, logger: logger}
}

// Run executes all stages. The four dimension builders run in parallel; the
// fact resolver starts only after every builder has returned.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	logger := p.logger.With(slog.String("run_id", infrastructure.GetRunID(ctx)))

	result := &Result{}
	stages := map[string]*StageState{}
	for _, id := range []string{StageLoad, StageClean, StageDimensions, StageFact, StageExport, StageWarehouse} {
		st := NewStageState(id)
		stages[id] = st
		result.Stages = append(result.Stages, st)
	}

	// Load
	stages[StageLoad].Start()
	table, err := loader.NewLoader(logger).Load(p.cfg.Input.Path, p.cfg.Input.Sheet)
	if err != nil {
		stages[StageLoad].Fail(err)
		return nil, errors.NewPipelineError(errors.KindLoad, StageLoad, err)
	}
	result.Raw = table.Records
	stages[StageLoad].Complete(len(table.Records))

	// Clean
	stages[StageClean].Start()
	cleaner := dataprocessing.NewCleaner(p.cfg.Cleaning, logger)
	cleaned, violations, err := cleaner.Clean(ctx, table.Columns, table.Records)
	if err != nil {
		stages[StageClean].Fail(err)
		kind := errors.KindExecution
		if _, ok := err.(*errors.SchemaError); ok {
			kind = errors.KindSchema
		}
		return nil, errors.NewPipelineError(kind, StageClean, err)
	}
	result.Cleaned = cleaned
	result.Violations = violations
	stages[StageClean].Complete(len(cleaned))

	// Dimensions: independent builders, one goroutine each. Every builder
	// writes only its own field of the schema, so no locking is needed.
	stages[StageDimensions].Start()
	var g errgroup.Group
	g.Go(func() error {
		result.Schema.Geography = star.BuildGeography(logger, cleaned)
		return nil
	})
	g.Go(func() error {
		result.Schema.Customer = star.BuildCustomer(logger, cleaned)
		return nil
	})
	g.Go(func() error {
		result.Schema.Product = star.BuildProduct(logger, cleaned)
		return nil
	})
	g.Go(func() error {
		result.Schema.Date = star.BuildDate(logger, cleaned, p.cfg.Dimension.DateBufferMonths)
		return nil
	})
	if err := g.Wait(); err != nil {
		stages[StageDimensions].Fail(err)
		return nil, errors.NewPipelineError(errors.KindExecution, StageDimensions, err)
	}
	dimRows := len(result.Schema.Geography) + len(result.Schema.Customer) +
		len(result.Schema.Product) + len(result.Schema.Date)
	stages[StageDimensions].Complete(dimRows)

	// Fact: strictly after all builders.
	stages[StageFact].Start()
	resolver := star.NewFactResolver(logger, result.Schema)
	facts, referential := resolver.Resolve(cleaned)
	result.Schema.Fact = facts
	result.Referential = referential
	stages[StageFact].Complete(len(facts))

	if len(facts) != len(cleaned) {
		// Row-count invariant; resolver never drops rows, so this is a bug.
		err := fmt.Errorf("fact row count %d does not match cleaned count %d", len(facts), len(cleaned))
		stages[StageFact].Fail(err)
		return nil, errors.NewPipelineError(errors.KindExecution, StageFact, err)
	}

	// Export
	stages[StageExport].Start()
	writer := exporter.NewCSVWriter(p.cfg.Output.Dir, logger)
	if err := writer.WriteStarSchema(result.Schema); err != nil {
		stages[StageExport].Fail(err)
		return nil, errors.NewPipelineError(errors.KindExport, StageExport, err)
	}
	stages[StageExport].Complete(len(facts))

	// Warehouse (optional)
	if p.cfg.Warehouse.Path == "" {
		stages[StageWarehouse].Skip()
	} else {
		stages[StageWarehouse].Start()
		wh, err := warehouse.Open(p.cfg.Warehouse.Path, logger)
		if err != nil {
			stages[StageWarehouse].Fail(err)
			return nil, errors.NewPipelineError(errors.KindExport, StageWarehouse, err)
		}
		err = wh.Load(ctx, result.Schema)
		if closeErr := wh.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			stages[StageWarehouse].Fail(err)
			return nil, errors.NewPipelineError(errors.KindExport, StageWarehouse, err)
		}
		stages[StageWarehouse].Complete(len(facts))
	}

	p.logSummary(ctx, logger, result)
	return result, nil
}

// logSummary emits the final per-table row counts and collected warnings.
func (p *Pipeline) logSummary(ctx context.Context, logger *slog.Logger, r *Result) {
	logger.InfoContext(ctx, "pipeline complete",
		slog.Int("raw", len(r.Raw)),
		slog.Int("cleaned", len(r.Cleaned)),
		slog.Int("dim_geography", len(r.Schema.Geography)),
		slog.Int("dim_customer", len(r.Schema.Customer)),
		slog.Int("dim_product", len(r.Schema.Product)),
		slog.Int("dim_date", len(r.Schema.Date)),
		slog.Int("fact_sales", len(r.Schema.Fact)),
		slog.Int("quality_violations", len(r.Violations)),
		slog.Bool("unresolved_keys", r.Referential.HasUnresolved()))
}
