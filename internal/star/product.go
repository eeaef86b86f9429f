package star

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"retailetl/pkg/contracts/domain"
)

// productAccumulator collects per-stock-code aggregates.
type productAccumulator struct {
	name       string // first-seen description in input order
	priceSum   float64
	priceCount int64
	quantity   int64
	firstSale  time.Time
	lastSale   time.Time
}

// BuildProduct derives the product dimension: one row per distinct stock
// code, ordered by stock code.
func BuildProduct(logger *slog.Logger, records []domain.CleanedRecord) []domain.ProductRow {
	if logger == nil {
		logger = slog.Default()
	}

	products := make(map[string]*productAccumulator)
	for _, r := range records {
		acc, ok := products[r.StockCode]
		if !ok {
			acc = &productAccumulator{
				name:      r.Description,
				firstSale: r.InvoiceDate,
				lastSale:  r.InvoiceDate,
			}
			products[r.StockCode] = acc
		}
		acc.priceSum += r.UnitPrice
		acc.priceCount++
		acc.quantity += r.Quantity
		if r.InvoiceDate.Before(acc.firstSale) {
			acc.firstSale = r.InvoiceDate
		}
		if r.InvoiceDate.After(acc.lastSale) {
			acc.lastSale = r.InvoiceDate
		}
	}

	codes := make([]string, 0, len(products))
	for code := range products {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	rows := make([]domain.ProductRow, 0, len(codes))
	for _, code := range codes {
		acc := products[code]
		isGift := strings.Contains(code, "GIFT")
		isPostage := strings.Contains(code, "POST")

		category := domain.CategoryRegular
		switch {
		case isGift:
			category = domain.CategoryGift
		case isPostage:
			category = domain.CategoryService
		}

		rows = append(rows, domain.ProductRow{
			ProductKey:        ProductKey(code),
			StockCode:         code,
			ProductName:       acc.name,
			AveragePrice:      acc.priceSum / float64(acc.priceCount),
			TotalQuantitySold: acc.quantity,
			FirstSaleDate:     acc.firstSale,
			LastSaleDate:      acc.lastSale,
			IsGift:            isGift,
			IsPostage:         isPostage,
			Category:          category,
		})
	}

	logger.Info("built product dimension", slog.Int("products", len(rows)))
	return rows
}
