package models

// Transaction types. Income increases net balance, expense decreases it.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// ValidType reports whether t is a known transaction/category type.
func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a single dated monetary record in the ledger.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string `json:"id"`

	// UserID is the owning user. All queries are scoped by it.
	UserID string `json:"userId"`

	// Type is "income" or "expense".
	Type string `json:"type"`

	// Amount is the non-negative monetary value.
	Amount float64 `json:"amount"`

	// Category is a free-text label. It references a Category by name,
	// not by ID, and may name a category that no longer exists.
	Category string `json:"category"`

	// Description is an optional note.
	Description string `json:"description"`

	// Date is when the transaction occurred, RFC3339 UTC.
	Date string `json:"date"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}
