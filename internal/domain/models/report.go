package models

import "time"

// Report window filters accepted by the report endpoint. The values double
// as display labels on the dashboard.
const (
	FilterToday     = "Today"
	FilterLastWeek  = "Last 7 days"
	FilterLastMonth = "Last 30 days"
	FilterLastYear  = "Last 365 days"
)

// ExpenseSummary aggregates closed purchases inside the report window.
type ExpenseSummary struct {
	TotalExpenseItems int        `json:"totalExpenseItems"`
	TotalAmount       float64    `json:"totalAmount"`
	Expenses          []Purchase `json:"expenses"`
}

// IncomeSummary aggregates closed sells inside the report window, priced
// against the current menu.
type IncomeSummary struct {
	TotalIncomeItems int             `json:"totalIncomeItems"`
	TotalAmount      float64         `json:"totalAmount"`
	Incomes          []OpenSellsView `json:"incomes"`
}

// Report is the response of the report endpoint.
type Report struct {
	Filter    string     `json:"filter"`
	StartDate time.Time  `json:"startDate"`
	EndDate   time.Time  `json:"endDate"`
	Data      ReportData `json:"data"`
}

// ReportData groups the two sides of the ledger.
type ReportData struct {
	Expense ExpenseSummary `json:"expense"`
	Income  IncomeSummary  `json:"income"`
}

// ReportSnapshot is the condensed daily report persisted by the scheduler.
type ReportSnapshot struct {
	Date         time.Time `bson:"date" json:"date"`
	Window       string    `bson:"window" json:"window"`
	ExpenseItems int       `bson:"expense_items" json:"expense_items"`
	ExpenseTotal float64   `bson:"expense_total" json:"expense_total"`
	IncomeItems  int       `bson:"income_items" json:"income_items"`
	IncomeTotal  float64   `bson:"income_total" json:"income_total"`
	Profit       float64   `bson:"profit" json:"profit"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
