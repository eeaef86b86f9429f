// Package star derives the dimensional model from the cleaned record set:
// four dimension tables (geography, customer, product, date) and the sales
// fact table.
//
// Surrogate keys are deterministic hashes of the natural key, so a given
// country or customer receives the same key on every run regardless of row
// order. That makes re-loads idempotent and lets the four builders run in
// parallel without coordination. Each builder reads only the cleaned set and
// returns a table it alone owns.
package star
