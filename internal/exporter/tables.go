package exporter

import (
	"strconv"
	"time"

	"retailetl/pkg/contracts/domain"
)

// Output file names, one per table.
const (
	FileGeography = "dim_geography.csv"
	FileCustomer  = "dim_customer.csv"
	FileProduct   = "dim_product.csv"
	FileDate      = "dim_date.csv"
	FileFact      = "fact_sales.csv"
)

const timestampFormat = "2006-01-02 15:04:05"

// WriteStarSchema persists all five tables of the star schema.
func (w *CSVWriter) WriteStarSchema(s domain.StarSchema) error {
	if err := w.WriteTable(FileGeography, geographyHeaders, renderGeography(s.Geography)); err != nil {
		return err
	}
	if err := w.WriteTable(FileCustomer, customerHeaders, renderCustomer(s.Customer)); err != nil {
		return err
	}
	if err := w.WriteTable(FileProduct, productHeaders, renderProduct(s.Product)); err != nil {
		return err
	}
	if err := w.WriteTable(FileDate, dateHeaders, renderDate(s.Date)); err != nil {
		return err
	}
	return w.WriteTable(FileFact, factHeaders, renderFact(s.Fact))
}

var geographyHeaders = []string{
	"GeographyKey", "Country", "CountryCode", "Region", "IsUK", "IsEU",
	"CurrencyCode", "TimeZone",
}

func renderGeography(rows []domain.GeographyRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			formatInt(r.GeographyKey),
			r.Country,
			r.CountryCode,
			string(r.Region),
			formatBool(r.IsUK),
			formatBool(r.IsEU),
			r.CurrencyCode,
			r.TimeZone,
		})
	}
	return out
}

var customerHeaders = []string{
	"CustomerKey", "CustomerID", "CustomerType", "Country", "FirstPurchase",
	"LastPurchase", "TotalTransactions", "TotalSpent", "IsUK",
}

func renderCustomer(rows []domain.CustomerRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			formatInt(r.CustomerKey),
			r.CustomerID,
			string(r.CustomerType),
			r.Country,
			formatTime(r.FirstPurchase),
			formatTime(r.LastPurchase),
			formatInt(r.TotalTransactions),
			formatFloat(r.TotalSpent),
			formatBool(r.IsUK),
		})
	}
	return out
}

var productHeaders = []string{
	"ProductKey", "StockCode", "ProductName", "AveragePrice",
	"TotalQuantitySold", "FirstSaleDate", "LastSaleDate", "IsGift",
	"IsPostage", "Category",
}

func renderProduct(rows []domain.ProductRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			formatInt(r.ProductKey),
			r.StockCode,
			r.ProductName,
			formatFloat(r.AveragePrice),
			formatInt(r.TotalQuantitySold),
			formatTime(r.FirstSaleDate),
			formatTime(r.LastSaleDate),
			formatBool(r.IsGift),
			formatBool(r.IsPostage),
			string(r.Category),
		})
	}
	return out
}

var dateHeaders = []string{
	"DateKey", "Date", "Year", "Quarter", "Month", "MonthName", "DayOfYear",
	"DayOfMonth", "DayOfWeek", "DayName", "IsWeekend", "IsBusinessDay",
}

func renderDate(rows []domain.DateRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			formatInt(r.DateKey),
			r.Date.Format("2006-01-02"),
			strconv.Itoa(r.Year),
			strconv.Itoa(r.Quarter),
			strconv.Itoa(r.Month),
			r.MonthName,
			strconv.Itoa(r.DayOfYear),
			strconv.Itoa(r.DayOfMonth),
			strconv.Itoa(r.DayOfWeek),
			r.DayName,
			formatBool(r.IsWeekend),
			formatBool(r.IsBusinessDay),
		})
	}
	return out
}

var factHeaders = []string{
	"InvoiceNumber", "CustomerKey", "ProductKey", "DateKey", "GeographyKey",
	"Quantity", "UnitPrice", "TotalValue",
}

func renderFact(rows []domain.FactRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.InvoiceNumber,
			formatInt(r.CustomerKey),
			formatInt(r.ProductKey),
			formatInt(r.DateKey),
			formatInt(r.GeographyKey),
			formatInt(r.Quantity),
			formatFloat(r.UnitPrice),
			formatFloat(r.TotalValue),
		})
	}
	return out
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampFormat)
}
