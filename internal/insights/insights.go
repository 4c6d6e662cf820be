// Package insights derives advisory output from ledger aggregates.
// Everything here is a pure function of its inputs; nothing is persisted
// or cached.
package insights

import (
	"fmt"

	"github.com/finwiser/finwiser/internal/models"
)

// DefaultExpenseAlertRatio is the expenses/income ratio above which an
// alert is raised.
const DefaultExpenseAlertRatio = 0.9

// Report is the advisory output for one user. The exact wording and set
// of heuristics is not a contract; clients should treat entries as
// opaque display text.
type Report struct {
	Alerts          []string               `json:"alerts"`
	Recommendations []string               `json:"recommendations"`
	SpendingTrends  []models.CategoryTotal `json:"spendingTrends"`
}

// Advisor generates insight reports. A zero ExpenseAlertRatio falls back
// to the default.
type Advisor struct {
	ExpenseAlertRatio float64
}

// Analyze produces a report from the user's summary and expense
// breakdown. The breakdown must be sorted by total descending, as
// returned by the store.
func (a Advisor) Analyze(summary models.Summary, breakdown []models.CategoryTotal) Report {
	ratio := a.ExpenseAlertRatio
	if ratio == 0 {
		ratio = DefaultExpenseAlertRatio
	}

	report := Report{
		Alerts:          []string{},
		Recommendations: []string{},
		SpendingTrends:  breakdown,
	}
	if report.SpendingTrends == nil {
		report.SpendingTrends = []models.CategoryTotal{}
	}

	if summary.TotalExpenses > summary.TotalIncome*ratio {
		report.Alerts = append(report.Alerts, "Your expenses are approaching your income level!")
	}

	if len(breakdown) > 0 {
		report.Recommendations = append(report.Recommendations, fmt.Sprintf(
			"Your highest spending is in %s. Consider setting a budget for this category.",
			breakdown[0].Category,
		))
	}

	return report
}
