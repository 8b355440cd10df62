package controllers

import (
	"time"

	"expense-api/models"
)

type messageResponse struct {
	Message string `json:"message"`
}

type expenseResponse struct {
	ID          string        `json:"expense_id"`
	Description string        `json:"description"`
	Items       []models.Item `json:"items"`
	TotalPrice  float64       `json:"total_price"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
}

type reportResponse struct {
	ID                 string            `json:"report_id"`
	DateFrom           *string           `json:"date_from"`
	DateTo             *string           `json:"date_to"`
	Expenses           []expenseResponse `json:"expenses"`
	MostExpensiveItems []models.Item     `json:"most_expensive_items"`
	TotalPrice         float64           `json:"total_price"`
	CreatedAt          string            `json:"created_at"`
}

func newExpenseResponse(e models.Expense) expenseResponse {
	items := e.Items
	if items == nil {
		items = []models.Item{}
	}
	return expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Items:       items,
		TotalPrice:  e.TotalPrice,
		CreatedAt:   formatTimestamp(e.CreatedAt),
		UpdatedAt:   formatTimestamp(e.UpdatedAt),
	}
}

func newExpenseResponses(expenses []models.Expense) []expenseResponse {
	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, newExpenseResponse(e))
	}
	return out
}

func newReportResponse(r models.Report) reportResponse {
	items := r.MostExpensiveItems
	if items == nil {
		items = []models.Item{}
	}
	return reportResponse{
		ID:                 r.ID,
		DateFrom:           formatDate(r.DateFrom),
		DateTo:             formatDate(r.DateTo),
		Expenses:           newExpenseResponses(r.Expenses),
		MostExpensiveItems: items,
		TotalPrice:         r.TotalPrice,
		CreatedAt:          formatTimestamp(r.CreatedAt),
	}
}

func formatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Local().Format(DateLayout)
	return &s
}
