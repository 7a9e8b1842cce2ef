// Package reporting aggregates purchases and sales into windowed financial
// reports and the daily snapshots persisted by the scheduler.
package reporting

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gaysay/backoffice/internal/apperrors"
	"github.com/gaysay/backoffice/internal/domain/models"
)

// Repository is the subset of the store the reporting service reads from.
type Repository interface {
	FindClosedPurchasesBetween(ctx context.Context, start, end time.Time) ([]models.Purchase, error)
	FindClosedSellsBetween(ctx context.Context, start, end time.Time) ([]models.OpenSellsView, error)
}

// SnapshotStore persists scheduler-built snapshots.
type SnapshotStore interface {
	SaveReportSnapshot(ctx context.Context, snapshot models.ReportSnapshot) error
}

// Exporter mirrors snapshots to an external spreadsheet. Optional.
type Exporter interface {
	AppendReportRow(ctx context.Context, snapshot models.ReportSnapshot) error
}

// Service builds windowed financial reports.
type Service struct {
	repo      Repository
	snapshots SnapshotStore
	exporter  Exporter
	logger    *zap.Logger
}

// NewService wires a new reporting service. The exporter may be nil when
// spreadsheet export is not configured.
func NewService(repo Repository, snapshots SnapshotStore, exporter Exporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, snapshots: snapshots, exporter: exporter, logger: logger}
}

// windowDays maps a report filter to how many days the window reaches back.
func windowDays(filter string) (int, bool) {
	switch filter {
	case models.FilterToday:
		return 0, true
	case models.FilterLastWeek:
		return 7, true
	case models.FilterLastMonth:
		return 30, true
	case models.FilterLastYear:
		return 365, true
	}
	return 0, false
}

// Window resolves a filter into its [start, end] range relative to now:
// start of day N days back through end of the current day.
func Window(filter string, now time.Time) (time.Time, time.Time, error) {
	days, ok := windowDays(filter)
	if !ok {
		return time.Time{}, time.Time{}, apperrors.Invalid(
			"invalid or missing 'filter' query parameter. Must be one of: %s, %s, %s, %s",
			models.FilterToday, models.FilterLastWeek, models.FilterLastMonth, models.FilterLastYear)
	}

	start := startOfDay(now.AddDate(0, 0, -days))
	end := endOfDay(now)
	return start, end, nil
}

// BuildReport aggregates closed purchases and closed sells created inside
// the filter's window. Income joins each sell to the menu item's current
// price; a sell whose item no longer resolves contributes nothing.
func (s *Service) BuildReport(ctx context.Context, filter string, now time.Time) (*models.Report, error) {
	start, end, err := Window(filter, now)
	if err != nil {
		return nil, err
	}

	expenses, err := s.repo.FindClosedPurchasesBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var expenseTotal float64
	for i := range expenses {
		expenseTotal += expenses[i].Amount()
	}

	incomes, err := s.repo.FindClosedSellsBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var incomeTotal float64
	for i := range incomes {
		if incomes[i].Item == nil {
			continue
		}
		incomeTotal += float64(incomes[i].TotalFreq) * incomes[i].Item.Price
	}

	return &models.Report{
		Filter:    filter,
		StartDate: start,
		EndDate:   end,
		Data: models.ReportData{
			Expense: models.ExpenseSummary{
				TotalExpenseItems: len(expenses),
				TotalAmount:       expenseTotal,
				Expenses:          expenses,
			},
			Income: models.IncomeSummary{
				TotalIncomeItems: len(incomes),
				TotalAmount:      incomeTotal,
				Incomes:          incomes,
			},
		},
	}, nil
}

// Snapshot builds the current day's report, persists the condensed snapshot
// and mirrors it to the exporter when one is configured.
func (s *Service) Snapshot(ctx context.Context, now time.Time) (*models.ReportSnapshot, error) {
	report, err := s.BuildReport(ctx, models.FilterToday, now)
	if err != nil {
		return nil, err
	}

	snapshot := models.ReportSnapshot{
		Date:         startOfDay(now),
		Window:       report.Filter,
		ExpenseItems: report.Data.Expense.TotalExpenseItems,
		ExpenseTotal: report.Data.Expense.TotalAmount,
		IncomeItems:  report.Data.Income.TotalIncomeItems,
		IncomeTotal:  report.Data.Income.TotalAmount,
		Profit:       report.Data.Income.TotalAmount - report.Data.Expense.TotalAmount,
	}

	if err := s.snapshots.SaveReportSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}

	if s.exporter != nil {
		if err := s.exporter.AppendReportRow(ctx, snapshot); err != nil {
			// Export is best effort; the snapshot is already durable.
			s.logger.Warn("failed to export report snapshot", zap.Error(err))
		}
	}

	s.logger.Info("report snapshot stored",
		zap.Time("date", snapshot.Date),
		zap.Float64("expense_total", snapshot.ExpenseTotal),
		zap.Float64("income_total", snapshot.IncomeTotal),
		zap.Float64("profit", snapshot.Profit))
	return &snapshot, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
