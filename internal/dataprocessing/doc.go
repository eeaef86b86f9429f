// Package dataprocessing implements the cleaning pipeline that turns raw
// spreadsheet rows into validated sales records.
//
// The stages run in a fixed order:
//
//  1. Normalizer: coerces string fields into typed values; a value that
//     cannot be parsed becomes missing, never an error.
//  2. Deduplicator: collapses rows sharing the composite transaction key,
//     keeping the first occurrence in input order.
//  3. QualityFilter: the authoritative validity gate (positive quantity and
//     price, present and non-future invoice date).
//  4. Enricher: standardizes country names, backfills blank descriptions and
//     computes the line total.
//  5. CheckCleaned: a recheck of the cleaning invariants that reports
//     violations without ever removing rows.
//
// Cleaner wires the stages together and logs per-stage row counts.
package dataprocessing
