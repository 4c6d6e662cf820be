// Package models defines the core domain entities for finwiser.
//
// Every entity except User carries a UserID and is exclusively owned by
// that user. Owner scoping is the only access-control mechanism in the
// system: every storage query filters by UserID.
//
// Transaction.Category is a denormalized display label, not a foreign
// key. Renaming or deleting a Category cascades over matching
// Transactions by string equality (see storage).
package models
