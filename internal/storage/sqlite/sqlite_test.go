package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/finwiser/finwiser/internal/models"
	"github.com/finwiser/finwiser/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "finwiser-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func createTestUser(t *testing.T, store *SQLiteStore, username, email string) *models.User {
	t.Helper()

	user := models.NewUser(username, email, "$2a$10$fakehashfakehashfakehash")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser generates ID and timestamps", func(t *testing.T) {
		user := createTestUser(t, store, "alice", "alice@example.com")

		if user.ID == "" {
			t.Error("Expected user ID to be generated")
		}
		if user.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		dup := models.NewUser("alice2", "alice@example.com", "hash")
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("Expected error for duplicate email, got nil")
		}
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		dup := models.NewUser("alice", "other@example.com", "hash")
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("Expected error for duplicate username, got nil")
		}
	})

	t.Run("GetUserByEmail retrieves the user", func(t *testing.T) {
		user, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if user == nil || user.Username != "alice" {
			t.Errorf("Expected alice, got %+v", user)
		}
	})

	t.Run("GetUserByEmail returns nil for unknown email", func(t *testing.T) {
		user, err := store.GetUserByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if user != nil {
			t.Errorf("Expected nil, got %+v", user)
		}
	})

	t.Run("UpdateUserProfile changes identity", func(t *testing.T) {
		bob := createTestUser(t, store, "bob", "bob@example.com")

		updated, err := store.UpdateUserProfile(ctx, bob.ID, "robert", "robert@example.com")
		if err != nil {
			t.Fatalf("UpdateUserProfile failed: %v", err)
		}
		if updated.Username != "robert" || updated.Email != "robert@example.com" {
			t.Errorf("Profile not updated: %+v", updated)
		}
	})

	t.Run("UpdateUserPassword for unknown user reports not found", func(t *testing.T) {
		err := store.UpdateUserPassword(ctx, "nonexistent-id", "newhash")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestTransactions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store, "carol", "carol@example.com")

	t.Run("CreateTransaction defaults date and generates ID", func(t *testing.T) {
		txn := &models.Transaction{
			UserID:   user.ID,
			Type:     models.TypeExpense,
			Amount:   50,
			Category: "food",
		}
		if err := store.CreateTransaction(ctx, txn); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
		if txn.ID == "" {
			t.Error("Expected transaction ID to be generated")
		}
		if txn.Date == "" {
			t.Error("Expected date to default to now")
		}
	})

	t.Run("ListTransactions orders newest first", func(t *testing.T) {
		older := &models.Transaction{
			UserID: user.ID, Type: models.TypeIncome, Amount: 1000,
			Category: "salary", Date: "2024-01-01T00:00:00Z",
		}
		if err := store.CreateTransaction(ctx, older); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}

		txns, err := store.ListTransactions(ctx, user.ID)
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if len(txns) != 2 {
			t.Fatalf("Expected 2 transactions, got %d", len(txns))
		}
		if txns[len(txns)-1].ID != older.ID {
			t.Error("Expected the 2024-01-01 transaction to sort last")
		}
	})

	t.Run("UpdateTransaction applies partial update", func(t *testing.T) {
		txns, _ := store.ListTransactions(ctx, user.ID)
		target := txns[0]

		amount := 75.5
		updated, err := store.UpdateTransaction(ctx, user.ID, target.ID, storage.TransactionUpdate{Amount: &amount})
		if err != nil {
			t.Fatalf("UpdateTransaction failed: %v", err)
		}
		if updated.Amount != 75.5 {
			t.Errorf("Amount not updated: got %f", updated.Amount)
		}
		if updated.Category != target.Category {
			t.Errorf("Category should be unchanged, got %s", updated.Category)
		}
	})

	t.Run("UpdateTransaction scoped to owner", func(t *testing.T) {
		other := createTestUser(t, store, "dave", "dave@example.com")
		txns, _ := store.ListTransactions(ctx, user.ID)

		amount := 1.0
		_, err := store.UpdateTransaction(ctx, other.ID, txns[0].ID, storage.TransactionUpdate{Amount: &amount})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for unowned transaction, got %v", err)
		}
	})

	t.Run("DeleteTransaction removes the record", func(t *testing.T) {
		txn := &models.Transaction{UserID: user.ID, Type: models.TypeExpense, Amount: 5, Category: "misc"}
		if err := store.CreateTransaction(ctx, txn); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}

		if err := store.DeleteTransaction(ctx, user.ID, txn.ID); err != nil {
			t.Fatalf("DeleteTransaction failed: %v", err)
		}
		if err := store.DeleteTransaction(ctx, user.ID, txn.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestSummary(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store, "erin", "erin@example.com")

	seed := []models.Transaction{
		{Type: models.TypeExpense, Amount: 50, Category: "food", Date: "2024-01-05T00:00:00Z"},
		{Type: models.TypeIncome, Amount: 1000, Category: "salary", Date: "2024-01-01T00:00:00Z"},
		{Type: models.TypeExpense, Amount: 25.5, Category: "transport", Date: "2024-02-10T00:00:00Z"},
	}
	for i := range seed {
		seed[i].UserID = user.ID
		if err := store.CreateTransaction(ctx, &seed[i]); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
	}

	t.Run("Summary sums by type", func(t *testing.T) {
		summary, err := store.Summary(ctx, user.ID)
		if err != nil {
			t.Fatalf("Summary failed: %v", err)
		}
		if summary.TotalIncome != 1000 {
			t.Errorf("TotalIncome: got %f, want 1000", summary.TotalIncome)
		}
		if summary.TotalExpenses != 75.5 {
			t.Errorf("TotalExpenses: got %f, want 75.5", summary.TotalExpenses)
		}
		if summary.NetBalance != summary.TotalIncome-summary.TotalExpenses {
			t.Errorf("NetBalance invariant violated: %+v", summary)
		}
	})

	t.Run("Summary is zero for empty ledger", func(t *testing.T) {
		empty := createTestUser(t, store, "frank", "frank@example.com")
		summary, err := store.Summary(ctx, empty.ID)
		if err != nil {
			t.Fatalf("Summary failed: %v", err)
		}
		if summary.TotalIncome != 0 || summary.TotalExpenses != 0 || summary.NetBalance != 0 {
			t.Errorf("Expected zero summary, got %+v", summary)
		}
	})

	t.Run("CategoryTotals sorts expenses descending", func(t *testing.T) {
		totals, err := store.CategoryTotals(ctx, user.ID)
		if err != nil {
			t.Fatalf("CategoryTotals failed: %v", err)
		}
		if len(totals) != 2 {
			t.Fatalf("Expected 2 categories, got %d", len(totals))
		}
		if totals[0].Category != "food" || totals[0].Total != 50 {
			t.Errorf("Expected food=50 first, got %+v", totals[0])
		}
	})

	t.Run("MonthlyTotals buckets by year month and type", func(t *testing.T) {
		totals, err := store.MonthlyTotals(ctx, user.ID)
		if err != nil {
			t.Fatalf("MonthlyTotals failed: %v", err)
		}
		// Jan income, Jan expense, Feb expense
		if len(totals) != 3 {
			t.Fatalf("Expected 3 buckets, got %d", len(totals))
		}
		first := totals[0]
		if first.Year != 2024 || first.Month != 1 {
			t.Errorf("Expected January 2024 first, got %+v", first)
		}
	})

	t.Run("SpendingPatterns respects the window", func(t *testing.T) {
		recent := &models.Transaction{
			UserID: user.ID, Type: models.TypeExpense, Amount: 12, Category: "food",
			Date: time.Now().UTC().AddDate(0, 0, -3).Format(time.RFC3339),
		}
		if err := store.CreateTransaction(ctx, recent); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}

		patterns, err := store.SpendingPatterns(ctx, user.ID, time.Now().AddDate(0, -1, 0))
		if err != nil {
			t.Fatalf("SpendingPatterns failed: %v", err)
		}
		if len(patterns) != 1 {
			t.Fatalf("Expected only the recent expense, got %d buckets", len(patterns))
		}
		if patterns[0].Category != "food" || patterns[0].Total != 12 {
			t.Errorf("Unexpected pattern: %+v", patterns[0])
		}
	})
}

func TestCategories(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store, "grace", "grace@example.com")
	other := createTestUser(t, store, "henry", "henry@example.com")

	category := &models.Category{UserID: user.ID, Name: "food", Type: models.TypeExpense}
	if err := store.CreateCategory(ctx, category); err != nil {
		t.Fatalf("CreateCategory failed: %v", err)
	}

	// Ledger entries referencing the category by name, for both users.
	mine := &models.Transaction{UserID: user.ID, Type: models.TypeExpense, Amount: 30, Category: "food"}
	theirs := &models.Transaction{UserID: other.ID, Type: models.TypeExpense, Amount: 40, Category: "food"}
	for _, txn := range []*models.Transaction{mine, theirs} {
		if err := store.CreateTransaction(ctx, txn); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
	}

	t.Run("duplicate name per user is rejected", func(t *testing.T) {
		dup := &models.Category{UserID: user.ID, Name: "food", Type: models.TypeExpense}
		if err := store.CreateCategory(ctx, dup); err == nil {
			t.Error("Expected error for duplicate category name, got nil")
		}
	})

	t.Run("same name is allowed for another user", func(t *testing.T) {
		theirs := &models.Category{UserID: other.ID, Name: "food", Type: models.TypeExpense}
		if err := store.CreateCategory(ctx, theirs); err != nil {
			t.Errorf("CreateCategory failed for second user: %v", err)
		}
	})

	t.Run("RenameCategory cascades to owned transactions only", func(t *testing.T) {
		renamed, err := store.RenameCategory(ctx, user.ID, category.ID, "groceries", models.TypeExpense)
		if err != nil {
			t.Fatalf("RenameCategory failed: %v", err)
		}
		if renamed.Name != "groceries" {
			t.Errorf("Expected name groceries, got %s", renamed.Name)
		}

		myTxns, _ := store.ListTransactions(ctx, user.ID)
		if myTxns[0].Category != "groceries" {
			t.Errorf("Cascade missed owned transaction: %+v", myTxns[0])
		}

		otherTxns, _ := store.ListTransactions(ctx, other.ID)
		if otherTxns[0].Category != "food" {
			t.Errorf("Cascade leaked to another user: %+v", otherTxns[0])
		}
	})

	t.Run("RenameCategory scoped to owner", func(t *testing.T) {
		_, err := store.RenameCategory(ctx, other.ID, category.ID, "stuff", models.TypeExpense)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound for unowned category, got %v", err)
		}
	})

	t.Run("DeleteCategory reassigns transactions to uncategorized", func(t *testing.T) {
		if err := store.DeleteCategory(ctx, user.ID, category.ID); err != nil {
			t.Fatalf("DeleteCategory failed: %v", err)
		}

		myTxns, _ := store.ListTransactions(ctx, user.ID)
		if myTxns[0].Category != models.UncategorizedName {
			t.Errorf("Expected uncategorized, got %s", myTxns[0].Category)
		}

		otherTxns, _ := store.ListTransactions(ctx, other.ID)
		if otherTxns[0].Category != "food" {
			t.Errorf("Delete cascade leaked to another user: %+v", otherTxns[0])
		}
	})

	t.Run("deleting an already-deleted category reports not found", func(t *testing.T) {
		before, _ := store.ListTransactions(ctx, user.ID)

		err := store.DeleteCategory(ctx, user.ID, category.ID)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}

		after, _ := store.ListTransactions(ctx, user.ID)
		for i := range before {
			if before[i].UpdatedAt != after[i].UpdatedAt {
				t.Error("Repeated delete mutated transactions")
			}
		}
	})
}

func TestGoals(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store, "iris", "iris@example.com")

	goal := &models.Goal{
		UserID:       user.ID,
		Name:         "Emergency fund",
		TargetAmount: 500,
		Deadline:     "2025-12-31T00:00:00Z",
	}
	if err := store.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	t.Run("CreateGoal starts ongoing with zero progress", func(t *testing.T) {
		if goal.CurrentAmount != 0 {
			t.Errorf("Expected zero progress, got %f", goal.CurrentAmount)
		}
		if goal.Status != models.GoalOngoing {
			t.Errorf("Expected ongoing, got %s", goal.Status)
		}
	})

	t.Run("AdvanceGoalProgress accumulates", func(t *testing.T) {
		updated, err := store.AdvanceGoalProgress(ctx, user.ID, goal.ID, 200)
		if err != nil {
			t.Fatalf("AdvanceGoalProgress failed: %v", err)
		}
		if updated.CurrentAmount != 200 {
			t.Errorf("Expected 200, got %f", updated.CurrentAmount)
		}
		if updated.Status != models.GoalOngoing {
			t.Errorf("Expected still ongoing, got %s", updated.Status)
		}
	})

	t.Run("crossing the target completes the goal", func(t *testing.T) {
		updated, err := store.AdvanceGoalProgress(ctx, user.ID, goal.ID, 400)
		if err != nil {
			t.Fatalf("AdvanceGoalProgress failed: %v", err)
		}
		if updated.CurrentAmount != 600 {
			t.Errorf("Expected 600 (may exceed target), got %f", updated.CurrentAmount)
		}
		if updated.Status != models.GoalCompleted {
			t.Errorf("Expected completed, got %s", updated.Status)
		}
	})

	t.Run("completion is one-directional under further increments", func(t *testing.T) {
		updated, err := store.AdvanceGoalProgress(ctx, user.ID, goal.ID, 50)
		if err != nil {
			t.Fatalf("AdvanceGoalProgress failed: %v", err)
		}
		if updated.Status != models.GoalCompleted {
			t.Errorf("Expected completed to stick, got %s", updated.Status)
		}
		if updated.CurrentAmount != 650 {
			t.Errorf("Expected 650, got %f", updated.CurrentAmount)
		}
	})

	t.Run("GoalStatsByStatus groups goals", func(t *testing.T) {
		second := &models.Goal{UserID: user.ID, Name: "Vacation", TargetAmount: 1000}
		if err := store.CreateGoal(ctx, second); err != nil {
			t.Fatalf("CreateGoal failed: %v", err)
		}

		stats, err := store.GoalStatsByStatus(ctx, user.ID)
		if err != nil {
			t.Fatalf("GoalStatsByStatus failed: %v", err)
		}
		if stats[models.GoalCompleted].Count != 1 || stats[models.GoalOngoing].Count != 1 {
			t.Errorf("Unexpected stats: %+v", stats)
		}
		if stats[models.GoalCompleted].TotalCurrent != 650 {
			t.Errorf("Expected completed TotalCurrent 650, got %+v", stats[models.GoalCompleted])
		}
	})

	t.Run("UpdateGoal permits direct status overwrite", func(t *testing.T) {
		status := models.GoalOngoing
		updated, err := store.UpdateGoal(ctx, user.ID, goal.ID, storage.GoalUpdate{Status: &status})
		if err != nil {
			t.Fatalf("UpdateGoal failed: %v", err)
		}
		if updated.Status != models.GoalOngoing {
			t.Errorf("Generic update should not force status, got %s", updated.Status)
		}
	})

	t.Run("DeleteGoal scoped to owner", func(t *testing.T) {
		if err := store.DeleteGoal(ctx, "someone-else", goal.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		if err := store.DeleteGoal(ctx, user.ID, goal.ID); err != nil {
			t.Errorf("DeleteGoal failed: %v", err)
		}
	})
}

func TestDocuments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, store, "jack", "jack@example.com")

	doc := &models.Document{
		UserID:     user.ID,
		Title:      "Tax return",
		StorageKey: "users/jack/abc.pdf",
		FileType:   "application/pdf",
		FileSize:   2048,
	}
	if err := store.CreateDocument(ctx, doc); err != nil {
		t.Fatalf("CreateDocument failed: %v", err)
	}

	t.Run("GetDocument scoped to owner", func(t *testing.T) {
		if _, err := store.GetDocument(ctx, "someone-else", doc.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}

		got, err := store.GetDocument(ctx, user.ID, doc.ID)
		if err != nil {
			t.Fatalf("GetDocument failed: %v", err)
		}
		if got.Title != "Tax return" {
			t.Errorf("Unexpected document: %+v", got)
		}
	})

	t.Run("DocumentStats groups by type", func(t *testing.T) {
		second := &models.Document{
			UserID: user.ID, Title: "Receipt", StorageKey: "users/jack/r.png",
			FileType: "image/png", FileSize: 512,
		}
		if err := store.CreateDocument(ctx, second); err != nil {
			t.Fatalf("CreateDocument failed: %v", err)
		}

		stats, err := store.DocumentStats(ctx, user.ID)
		if err != nil {
			t.Fatalf("DocumentStats failed: %v", err)
		}
		if stats.TotalFiles != 2 || stats.TotalSize != 2560 {
			t.Errorf("Unexpected stats: %+v", stats)
		}
		if stats.ByType["application/pdf"].Count != 1 {
			t.Errorf("Unexpected pdf stats: %+v", stats.ByType)
		}
	})

	t.Run("DeleteDocument returns the record for cleanup", func(t *testing.T) {
		deleted, err := store.DeleteDocument(ctx, user.ID, doc.ID)
		if err != nil {
			t.Fatalf("DeleteDocument failed: %v", err)
		}
		if deleted.StorageKey != "users/jack/abc.pdf" {
			t.Errorf("Expected storage key for cleanup, got %s", deleted.StorageKey)
		}

		if _, err := store.DeleteDocument(ctx, user.ID, doc.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}
