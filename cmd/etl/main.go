package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"retailetl/internal/config"
	"retailetl/internal/infrastructure"
	"retailetl/internal/operations"
	"retailetl/pkg/contracts"
)

func main() {
	in := flag.String("in", "", "input .xlsx workbook (overrides config)")
	out := flag.String("out", "", "output directory for CSV tables (overrides config)")
	sheet := flag.String("sheet", "", "sheet name or zero-based index; empty reads all sheets")
	bufferMonths := flag.Int("buffer-months", -1, "date dimension buffer in months (overrides config)")
	warehousePath := flag.String("warehouse", "", "optional SQLite database to load the star schema into")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if *in != "" {
		cfg.Input.Path = *in
	}
	if *out != "" {
		cfg.Output.Dir = *out
	}
	if *sheet != "" {
		cfg.Input.Sheet = *sheet
	}
	if *bufferMonths >= 0 {
		cfg.Dimension.DateBufferMonths = *bufferMonths
	}
	if *warehousePath != "" {
		cfg.Warehouse.Path = *warehousePath
	}

	if cfg.Input.Path == "" {
		fmt.Fprintln(os.Stderr, "no input workbook: pass -in or set RETAIL_INPUT_PATH")
		os.Exit(2)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureRunID(context.Background())
	logger.Info("Starting retail sales ETL",
		slog.String("input", cfg.Input.Path),
		slog.String("output_dir", cfg.Output.Dir),
		slog.String("sheet", cfg.Input.Sheet),
		slog.Int("date_buffer_months", cfg.Dimension.DateBufferMonths))

	pipeline := operations.NewPipeline(cfg, logger)
	result, err := pipeline.Run(ctx)
	if err != nil {
		logger.Error("Pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, st := range result.Stages {
		logger.Info("Stage finished",
			slog.String("stage", st.ID),
			slog.String("status", string(st.Status)),
			slog.Int("rows", st.RowCount),
			slog.Duration("duration", st.Duration()))
	}

	fmt.Printf("Processed %d raw records into %d fact rows\n", len(result.Raw), len(result.Schema.Fact))
}
