// Package warehouse loads the star schema into a SQLite database so the
// result can be queried directly, in addition to the CSV files. The load
// replaces any previous contents: tables are dropped and recreated, and all
// rows are inserted inside a single transaction.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"retailetl/pkg/contracts/domain"
)

// SQLiteWarehouse persists star-schema runs into a SQLite file.
type SQLiteWarehouse struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the warehouse database at path.
func Open(path string, logger *slog.Logger) (*SQLiteWarehouse, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open warehouse database: %w", err)
	}
	return &SQLiteWarehouse{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (w *SQLiteWarehouse) Close() error {
	return w.db.Close()
}

var schemaDDL = []string{
	`DROP TABLE IF EXISTS fact_sales`,
	`DROP TABLE IF EXISTS dim_geography`,
	`DROP TABLE IF EXISTS dim_customer`,
	`DROP TABLE IF EXISTS dim_product`,
	`DROP TABLE IF EXISTS dim_date`,
	`CREATE TABLE dim_geography (
		geography_key INTEGER PRIMARY KEY,
		country TEXT NOT NULL UNIQUE,
		country_code TEXT,
		region TEXT NOT NULL,
		is_uk INTEGER NOT NULL,
		is_eu INTEGER NOT NULL,
		currency_code TEXT,
		time_zone TEXT
	)`,
	`CREATE TABLE dim_customer (
		customer_key INTEGER PRIMARY KEY,
		customer_id TEXT,
		customer_type TEXT NOT NULL,
		country TEXT,
		first_purchase DATETIME,
		last_purchase DATETIME,
		total_transactions INTEGER NOT NULL,
		total_spent REAL NOT NULL,
		is_uk INTEGER NOT NULL
	)`,
	`CREATE TABLE dim_product (
		product_key INTEGER PRIMARY KEY,
		stock_code TEXT NOT NULL UNIQUE,
		product_name TEXT,
		average_price REAL NOT NULL,
		total_quantity_sold INTEGER NOT NULL,
		first_sale_date DATETIME,
		last_sale_date DATETIME,
		is_gift INTEGER NOT NULL,
		is_postage INTEGER NOT NULL,
		category TEXT NOT NULL
	)`,
	`CREATE TABLE dim_date (
		date_key INTEGER PRIMARY KEY,
		date DATETIME NOT NULL,
		year INTEGER NOT NULL,
		quarter INTEGER NOT NULL,
		month INTEGER NOT NULL,
		month_name TEXT NOT NULL,
		day_of_year INTEGER NOT NULL,
		day_of_month INTEGER NOT NULL,
		day_of_week INTEGER NOT NULL,
		day_name TEXT NOT NULL,
		is_weekend INTEGER NOT NULL,
		is_business_day INTEGER NOT NULL
	)`,
	`CREATE TABLE fact_sales (
		invoice_number TEXT NOT NULL,
		customer_key INTEGER NOT NULL,
		product_key INTEGER NOT NULL,
		date_key INTEGER NOT NULL,
		geography_key INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		unit_price REAL NOT NULL,
		total_value REAL NOT NULL
	)`,
}

// Load writes the full star schema into the database.
func (w *SQLiteWarehouse) Load(ctx context.Context, s domain.StarSchema) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin warehouse transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, ddl := range schemaDDL {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create warehouse schema: %w", err)
		}
	}

	if err := w.loadGeography(ctx, tx, s.Geography); err != nil {
		return err
	}
	if err := w.loadCustomer(ctx, tx, s.Customer); err != nil {
		return err
	}
	if err := w.loadProduct(ctx, tx, s.Product); err != nil {
		return err
	}
	if err := w.loadDate(ctx, tx, s.Date); err != nil {
		return err
	}
	if err := w.loadFact(ctx, tx, s.Fact); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit warehouse transaction: %w", err)
	}

	w.logger.InfoContext(ctx, "loaded star schema into warehouse",
		slog.Int("geography", len(s.Geography)),
		slog.Int("customer", len(s.Customer)),
		slog.Int("product", len(s.Product)),
		slog.Int("date", len(s.Date)),
		slog.Int("fact", len(s.Fact)))
	return nil
}

func (w *SQLiteWarehouse) loadGeography(ctx context.Context, tx *sql.Tx, rows []domain.GeographyRow) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO dim_geography (geography_key, country, country_code, region, is_uk, is_eu, currency_code, time_zone)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare geography insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.GeographyKey, r.Country, r.CountryCode,
			string(r.Region), r.IsUK, r.IsEU, r.CurrencyCode, r.TimeZone); err != nil {
			return fmt.Errorf("failed to insert geography row %q: %w", r.Country, err)
		}
	}
	return nil
}

func (w *SQLiteWarehouse) loadCustomer(ctx context.Context, tx *sql.Tx, rows []domain.CustomerRow) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO dim_customer (customer_key, customer_id, customer_type, country, first_purchase, last_purchase, total_transactions, total_spent, is_uk)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare customer insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.CustomerKey, r.CustomerID, string(r.CustomerType),
			r.Country, r.FirstPurchase, r.LastPurchase, r.TotalTransactions, r.TotalSpent, r.IsUK); err != nil {
			return fmt.Errorf("failed to insert customer row %d: %w", r.CustomerKey, err)
		}
	}
	return nil
}

func (w *SQLiteWarehouse) loadProduct(ctx context.Context, tx *sql.Tx, rows []domain.ProductRow) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO dim_product (product_key, stock_code, product_name, average_price, total_quantity_sold, first_sale_date, last_sale_date, is_gift, is_postage, category)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare product insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.ProductKey, r.StockCode, r.ProductName,
			r.AveragePrice, r.TotalQuantitySold, r.FirstSaleDate, r.LastSaleDate,
			r.IsGift, r.IsPostage, string(r.Category)); err != nil {
			return fmt.Errorf("failed to insert product row %q: %w", r.StockCode, err)
		}
	}
	return nil
}

func (w *SQLiteWarehouse) loadDate(ctx context.Context, tx *sql.Tx, rows []domain.DateRow) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO dim_date (date_key, date, year, quarter, month, month_name, day_of_year, day_of_month, day_of_week, day_name, is_weekend, is_business_day)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare date insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.DateKey, r.Date, r.Year, r.Quarter, r.Month,
			r.MonthName, r.DayOfYear, r.DayOfMonth, r.DayOfWeek, r.DayName,
			r.IsWeekend, r.IsBusinessDay); err != nil {
			return fmt.Errorf("failed to insert date row %d: %w", r.DateKey, err)
		}
	}
	return nil
}

func (w *SQLiteWarehouse) loadFact(ctx context.Context, tx *sql.Tx, rows []domain.FactRow) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO fact_sales (invoice_number, customer_key, product_key, date_key, geography_key, quantity, unit_price, total_value)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare fact insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.InvoiceNumber, r.CustomerKey, r.ProductKey,
			r.DateKey, r.GeographyKey, r.Quantity, r.UnitPrice, r.TotalValue); err != nil {
			return fmt.Errorf("failed to insert fact row for invoice %q: %w", r.InvoiceNumber, err)
		}
	}
	return nil
}
