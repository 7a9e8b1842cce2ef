package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gaysay/backoffice/internal/apperrors"
	"github.com/gaysay/backoffice/internal/domain/models"
)

type fakeReportRepo struct {
	purchases []models.Purchase
	sells     []models.OpenSellsView
	gotStart  time.Time
	gotEnd    time.Time
}

func (f *fakeReportRepo) FindClosedPurchasesBetween(_ context.Context, start, end time.Time) ([]models.Purchase, error) {
	f.gotStart, f.gotEnd = start, end
	return f.purchases, nil
}

func (f *fakeReportRepo) FindClosedSellsBetween(_ context.Context, _, _ time.Time) ([]models.OpenSellsView, error) {
	return f.sells, nil
}

type fakeSnapshotStore struct {
	saved []models.ReportSnapshot
	err   error
}

func (f *fakeSnapshotStore) SaveReportSnapshot(_ context.Context, snapshot models.ReportSnapshot) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, snapshot)
	return nil
}

type fakeExporter struct {
	rows []models.ReportSnapshot
	err  error
}

func (f *fakeExporter) AppendReportRow(_ context.Context, snapshot models.ReportSnapshot) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, snapshot)
	return nil
}

func pricedSell(totalFreq int, price float64) models.OpenSellsView {
	return models.OpenSellsView{
		SellsRecord: models.SellsRecord{
			ID:        primitive.NewObjectID(),
			TotalFreq: totalFreq,
			IsClosed:  true,
		},
		Item: &models.MenuItem{ID: primitive.NewObjectID(), Name: "macchiato", Price: price},
	}
}

func TestWindowArithmetic(t *testing.T) {
	now := time.Date(2025, time.March, 15, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		filter    string
		wantStart time.Time
	}{
		{models.FilterToday, time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)},
		{models.FilterLastWeek, time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC)},
		{models.FilterLastMonth, time.Date(2025, time.February, 13, 0, 0, 0, 0, time.UTC)},
		{models.FilterLastYear, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.filter, func(t *testing.T) {
			start, end, err := Window(tc.filter, now)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStart, start)
			assert.Equal(t, 2025, end.Year())
			assert.Equal(t, 23, end.Hour())
			assert.Equal(t, 59, end.Minute())
		})
	}
}

func TestWindowRejectsUnknownFilter(t *testing.T) {
	for _, filter := range []string{"", "yesterday", "today"} {
		_, _, err := Window(filter, time.Now())
		assert.ErrorIs(t, err, apperrors.ErrValidation, "filter %q", filter)
	}
}

func TestBuildReportAggregatesBothSides(t *testing.T) {
	repo := &fakeReportRepo{
		purchases: []models.Purchase{
			{Name: "beans", UnitPrice: 12.5, Quantity: 4, IsClosed: true},
			{Name: "milk", UnitPrice: 2, Quantity: 10, IsClosed: true},
		},
		sells: []models.OpenSellsView{
			pricedSell(10, 3.5),
			pricedSell(4, 2),
		},
	}
	svc := NewService(repo, &fakeSnapshotStore{}, nil, nil)

	report, err := svc.BuildReport(context.Background(), models.FilterLastWeek, time.Now())
	require.NoError(t, err)

	assert.Equal(t, models.FilterLastWeek, report.Filter)
	assert.Equal(t, 2, report.Data.Expense.TotalExpenseItems)
	assert.InDelta(t, 70.0, report.Data.Expense.TotalAmount, 1e-9) // 12.5*4 + 2*10
	assert.Equal(t, 2, report.Data.Income.TotalIncomeItems)
	assert.InDelta(t, 43.0, report.Data.Income.TotalAmount, 1e-9) // 10*3.5 + 4*2
}

func TestBuildReportSkipsSellsWithoutResolvedItem(t *testing.T) {
	orphan := models.OpenSellsView{
		SellsRecord: models.SellsRecord{ID: primitive.NewObjectID(), TotalFreq: 99, IsClosed: true},
	}
	repo := &fakeReportRepo{sells: []models.OpenSellsView{orphan, pricedSell(2, 5)}}
	svc := NewService(repo, &fakeSnapshotStore{}, nil, nil)

	report, err := svc.BuildReport(context.Background(), models.FilterToday, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Data.Income.TotalIncomeItems, "the orphan still counts as an item")
	assert.InDelta(t, 10.0, report.Data.Income.TotalAmount, 1e-9, "but contributes no income")
}

func TestSnapshotPersistsAndExports(t *testing.T) {
	repo := &fakeReportRepo{
		purchases: []models.Purchase{{UnitPrice: 10, Quantity: 1, IsClosed: true}},
		sells:     []models.OpenSellsView{pricedSell(6, 4)},
	}
	snapshots := &fakeSnapshotStore{}
	exporter := &fakeExporter{}
	svc := NewService(repo, snapshots, exporter, nil)

	snapshot, err := svc.Snapshot(context.Background(), time.Date(2025, time.June, 1, 20, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.InDelta(t, 10.0, snapshot.ExpenseTotal, 1e-9)
	assert.InDelta(t, 24.0, snapshot.IncomeTotal, 1e-9)
	assert.InDelta(t, 14.0, snapshot.Profit, 1e-9)
	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), snapshot.Date)

	require.Len(t, snapshots.saved, 1)
	require.Len(t, exporter.rows, 1)
}

func TestSnapshotSurvivesExporterFailure(t *testing.T) {
	repo := &fakeReportRepo{}
	snapshots := &fakeSnapshotStore{}
	svc := NewService(repo, snapshots, &fakeExporter{err: errors.New("sheet gone")}, nil)

	_, err := svc.Snapshot(context.Background(), time.Now())
	require.NoError(t, err, "export is best effort")
	assert.Len(t, snapshots.saved, 1)
}

func TestSnapshotFailsWhenStoreFails(t *testing.T) {
	svc := NewService(&fakeReportRepo{}, &fakeSnapshotStore{err: errors.New("down")}, nil, nil)

	_, err := svc.Snapshot(context.Background(), time.Now())
	assert.Error(t, err)
}
