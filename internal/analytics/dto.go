package analytics

import "github.com/shopspring/decimal"

// NameCount pairs a reference-data name with an asset count.
type NameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// NameValue pairs a department name with a summed asset cost.
type NameValue struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// MonthCount counts assets created in one calendar month.
type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int64  `json:"count"`
}

// OverviewDTO is the admin dashboard payload. Everything is computed on
// read; nothing is stored.
type OverviewDTO struct {
	TotalAssets        int64           `json:"total_assets"`
	TotalUsers         int64           `json:"total_users"`
	TotalDepartments   int64           `json:"total_departments"`
	TotalCategories    int64           `json:"total_categories"`
	TotalValue         decimal.Decimal `json:"total_value"`
	AssetsByCategory   []NameCount     `json:"assets_by_category"`
	AssetsByDepartment []NameCount     `json:"assets_by_department"`
	ValueByDepartment  []NameValue     `json:"value_by_department"`
	MonthlyCreations   []MonthCount    `json:"monthly_creations"`
}
