// Package reports computes the dashboard summary: per-day expense and
// income totals over a trailing window, all-time totals, and the most
// recent records. Everything is recomputed on each call; there is no
// caching layer.
package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MaxiAdad31/gastos/internal/models"
	"github.com/MaxiAdad31/gastos/internal/storage"
)

// WindowDays is the trailing span, in calendar days, the daily series covers.
const WindowDays = 30

// RecentLimit is how many recent records each listing carries.
const RecentLimit = 5

// DayTotals is one point of the daily series.
type DayTotals struct {
	Date     time.Time
	Expenses decimal.Decimal
	Income   decimal.Decimal
}

// Summary is the full dashboard payload.
type Summary struct {
	TotalExpenses  decimal.Decimal
	TotalIncome    decimal.Decimal
	Series         []DayTotals
	RecentExpenses []models.Expense
	RecentIncome   []models.Income
}

// Aggregator builds dashboard summaries from the ledger repository.
type Aggregator struct {
	db *storage.DB
}

func NewAggregator(db *storage.DB) *Aggregator {
	return &Aggregator{db: db}
}

// DashboardSummary computes the summary as of the given date. The series
// covers [asOf-30d, asOf]; the totals are all-time and unfiltered.
func (a *Aggregator) DashboardSummary(asOf time.Time) (*Summary, error) {
	// Calendar arithmetic, not hours: subtracting absolute hours shifts the
	// bound by a day when the span crosses a DST transition.
	from := asOf.AddDate(0, 0, -WindowDays)

	expenses, err := a.db.ListExpensesBetween(from, asOf)
	if err != nil {
		return nil, fmt.Errorf("list window expenses: %w", err)
	}
	incomes, err := a.db.ListIncomesBetween(from, asOf)
	if err != nil {
		return nil, fmt.Errorf("list window incomes: %w", err)
	}

	byDay := make(map[string]*DayTotals)
	day := func(d time.Time) *DayTotals {
		key := d.Format(models.DateLayout)
		dt, ok := byDay[key]
		if !ok {
			dt = &DayTotals{Date: d, Expenses: decimal.Zero, Income: decimal.Zero}
			byDay[key] = dt
		}
		return dt
	}
	for _, e := range expenses {
		dt := day(e.Date)
		dt.Expenses = dt.Expenses.Add(e.Amount)
	}
	for _, i := range incomes {
		dt := day(i.Date)
		dt.Income = dt.Income.Add(i.Amount)
	}

	series := make([]DayTotals, 0, len(byDay))
	for _, dt := range byDay {
		series = append(series, *dt)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })

	totalExpenses, err := a.db.TotalExpenses()
	if err != nil {
		return nil, fmt.Errorf("total expenses: %w", err)
	}
	totalIncome, err := a.db.TotalIncomes()
	if err != nil {
		return nil, fmt.Errorf("total incomes: %w", err)
	}

	recentExpenses, err := a.db.RecentExpenses(RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent expenses: %w", err)
	}
	recentIncome, err := a.db.RecentIncomes(RecentLimit)
	if err != nil {
		return nil, fmt.Errorf("recent incomes: %w", err)
	}

	return &Summary{
		TotalExpenses:  totalExpenses,
		TotalIncome:    totalIncome,
		Series:         series,
		RecentExpenses: recentExpenses,
		RecentIncome:   recentIncome,
	}, nil
}
