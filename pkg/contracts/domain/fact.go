package domain

// FactRow is one sales line item with all natural keys replaced by dimension
// surrogate keys. The fact table always has exactly one row per cleaned
// record.
type FactRow struct {
	InvoiceNumber string  `json:"invoice_number" db:"invoice_number"`
	CustomerKey   int64   `json:"customer_key" db:"customer_key"`
	ProductKey    int64   `json:"product_key" db:"product_key"`
	DateKey       int64   `json:"date_key" db:"date_key"`
	GeographyKey  int64   `json:"geography_key" db:"geography_key"`
	Quantity      int64   `json:"quantity" db:"quantity"`
	UnitPrice     float64 `json:"unit_price" db:"unit_price"`
	TotalValue    float64 `json:"total_value" db:"total_value"`
}

// StarSchema bundles the four dimensions and the fact table produced by one
// pipeline run.
type StarSchema struct {
	Geography []GeographyRow `json:"geography"`
	Customer  []CustomerRow  `json:"customer"`
	Product   []ProductRow   `json:"product"`
	Date      []DateRow      `json:"date"`
	Fact      []FactRow      `json:"fact"`
}
