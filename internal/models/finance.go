package models

// Summary holds the net financial position derived from the ledger.
// NetBalance is always TotalIncome - TotalExpenses.
type Summary struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetBalance    float64 `json:"netBalance"`
}

// CategoryTotal is the summed expense amount for one category label.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// MonthlyTotal is the summed amount for one (year, month, type) bucket.
type MonthlyTotal struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Type  string  `json:"type"`
	Total float64 `json:"total"`
}

// SpendingPattern is the summed expense amount for one (category,
// day-of-month) bucket within the trailing one-month window.
type SpendingPattern struct {
	Category string  `json:"category"`
	Day      int     `json:"day"`
	Total    float64 `json:"total"`
}
