// Package sheets mirrors daily report snapshots to a Google Sheet so the
// café owner can eyeball finances without touching the dashboard.
package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/gaysay/backoffice/internal/config"
	"github.com/gaysay/backoffice/internal/domain/models"
)

const snapshotDateLayout = "2006-01-02"

// ReportExporter appends report snapshot rows to a spreadsheet using the
// official Google Sheets API.
type ReportExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewReportExporter builds a Sheets-backed exporter from configuration.
func NewReportExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*ReportExporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &ReportExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.SheetRange,
		logger:        logger,
	}, nil
}

// AppendReportRow appends [date, expense total, income total, profit] to the
// configured range.
func (e *ReportExporter) AppendReportRow(ctx context.Context, snapshot models.ReportSnapshot) error {
	row := []interface{}{
		snapshot.Date.Format(snapshotDateLayout),
		snapshot.ExpenseTotal,
		snapshot.IncomeTotal,
		snapshot.Profit,
	}
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, e.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append report row into range %s: %w", e.sheetRange, err)
	}

	e.logger.Debug("report row appended to sheet", zap.String("range", e.sheetRange))
	return nil
}
