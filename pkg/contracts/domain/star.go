package domain

import (
	"time"
)

// GuestCustomerKey is the fixed surrogate key of the synthetic guest row in
// the customer dimension. Records without a customer ID always resolve to it.
const GuestCustomerKey int64 = -1

// UnresolvedKey is the reserved sentinel written into a fact row when a
// product, geography, or date lookup finds no dimension row. Hash-derived
// surrogate keys are non-negative and date keys are YYYYMMDD integers, so the
// sentinel can never collide with a real key.
const UnresolvedKey int64 = -1

// Region classifies a country for reporting purposes.
type Region string

const (
	RegionUK            Region = "UK"
	RegionEurope        Region = "Europe"
	RegionInternational Region = "International"
)

// CustomerType distinguishes registered customers from the aggregated guest row.
type CustomerType string

const (
	CustomerTypeRegistered CustomerType = "Registered"
	CustomerTypeGuest      CustomerType = "Guest"
)

// ProductCategory is derived from the stock code.
type ProductCategory string

const (
	CategoryGift    ProductCategory = "Gift"
	CategoryService ProductCategory = "Service"
	CategoryRegular ProductCategory = "Regular"
)

// GeographyRow is one country in the geography dimension.
type GeographyRow struct {
	GeographyKey int64  `json:"geography_key" db:"geography_key"`
	Country      string `json:"country" db:"country"`
	CountryCode  string `json:"country_code" db:"country_code"`
	Region       Region `json:"region" db:"region"`
	IsUK         bool   `json:"is_uk" db:"is_uk"`
	IsEU         bool   `json:"is_eu" db:"is_eu"`
	CurrencyCode string `json:"currency_code" db:"currency_code"`
	TimeZone     string `json:"time_zone" db:"time_zone"`
}

// CustomerRow is one customer in the customer dimension. The guest row
// aggregates every record without a customer ID under GuestCustomerKey.
type CustomerRow struct {
	CustomerKey       int64        `json:"customer_key" db:"customer_key"`
	CustomerID        string       `json:"customer_id" db:"customer_id"`
	CustomerType      CustomerType `json:"customer_type" db:"customer_type"`
	Country           string       `json:"country" db:"country"`
	FirstPurchase     time.Time    `json:"first_purchase" db:"first_purchase"`
	LastPurchase      time.Time    `json:"last_purchase" db:"last_purchase"`
	TotalTransactions int64        `json:"total_transactions" db:"total_transactions"`
	TotalSpent        float64      `json:"total_spent" db:"total_spent"`
	IsUK              bool         `json:"is_uk" db:"is_uk"`
}

// ProductRow is one stock code in the product dimension.
type ProductRow struct {
	ProductKey        int64           `json:"product_key" db:"product_key"`
	StockCode         string          `json:"stock_code" db:"stock_code"`
	ProductName       string          `json:"product_name" db:"product_name"`
	AveragePrice      float64         `json:"average_price" db:"average_price"`
	TotalQuantitySold int64           `json:"total_quantity_sold" db:"total_quantity_sold"`
	FirstSaleDate     time.Time       `json:"first_sale_date" db:"first_sale_date"`
	LastSaleDate      time.Time       `json:"last_sale_date" db:"last_sale_date"`
	IsGift            bool            `json:"is_gift" db:"is_gift"`
	IsPostage         bool            `json:"is_postage" db:"is_postage"`
	Category          ProductCategory `json:"category" db:"category"`
}

// DateRow is one calendar day in the date dimension. The dimension is a
// gap-free daily calendar, independent of which days had sales.
type DateRow struct {
	DateKey       int64     `json:"date_key" db:"date_key"`
	Date          time.Time `json:"date" db:"date"`
	Year          int       `json:"year" db:"year"`
	Quarter       int       `json:"quarter" db:"quarter"`
	Month         int       `json:"month" db:"month"`
	MonthName     string    `json:"month_name" db:"month_name"`
	DayOfYear     int       `json:"day_of_year" db:"day_of_year"`
	DayOfMonth    int       `json:"day_of_month" db:"day_of_month"`
	DayOfWeek     int       `json:"day_of_week" db:"day_of_week"` // Monday=1 .. Sunday=7
	DayName       string    `json:"day_name" db:"day_name"`
	IsWeekend     bool      `json:"is_weekend" db:"is_weekend"`
	IsBusinessDay bool      `json:"is_business_day" db:"is_business_day"`
}
