package models

// UncategorizedName is the sentinel label assigned to transactions whose
// category was deleted.
const UncategorizedName = "uncategorized"

// Category represents a per-user named label for transactions.
type Category struct {
	// ID is the unique identifier for the category (UUID format).
	ID string `json:"id"`

	// UserID is the owning user.
	UserID string `json:"userId"`

	// Name is the label, stored lowercase. Unique per user.
	Name string `json:"name"`

	// Type is "income" or "expense".
	Type string `json:"type"`

	// CreatedAt is the Unix timestamp when the category was created.
	CreatedAt int64 `json:"createdAt"`
}
