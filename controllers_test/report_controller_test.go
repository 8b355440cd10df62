package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportBody struct {
	ReportID           string        `json:"report_id"`
	DateFrom           *string       `json:"date_from"`
	DateTo             *string       `json:"date_to"`
	Expenses           []expenseBody `json:"expenses"`
	MostExpensiveItems []struct {
		Name  string  `json:"item_name"`
		Price float64 `json:"item_price"`
	} `json:"most_expensive_items"`
	TotalPrice float64 `json:"total_price"`
	CreatedAt  string  `json:"created_at"`
}

func createReport(t *testing.T, s *testServer, query string) string {
	t.Helper()
	rr := s.do(t, "POST", expensesPath(userID, "/report/create"+query), nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp map[string]string
	decode(t, rr, &resp)
	assert.Equal(t, "Report successfully created", resp["message"])
	return resp["report_id"]
}

func TestCreateAndGetReport(t *testing.T) {
	s := newTestServer(t)
	createExpense(t, s, "one", item{"item_name": "tv", "item_price": 300.0}, item{"item_name": "cable", "item_price": 5.0})
	createExpense(t, s, "two", item{"item_name": "monitor", "item_price": 300.0, "item_quantity": 2})

	reportID := createReport(t, s, "")

	rr := s.do(t, "GET", expensesPath(userID, "/report?report_id="+reportID), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var report reportBody
	decode(t, rr, &report)

	assert.Equal(t, reportID, report.ReportID)
	assert.Nil(t, report.DateFrom)
	require.NotNil(t, report.DateTo)
	assert.Equal(t, time.Now().Format("2006-01-02"), *report.DateTo, "date_to defaults to today")
	assert.Len(t, report.Expenses, 2)
	assert.Equal(t, 905.0, report.TotalPrice)
	require.Len(t, report.MostExpensiveItems, 2, "ties are all reported")
	assert.Equal(t, "tv", report.MostExpensiveItems[0].Name)
	assert.Equal(t, "monitor", report.MostExpensiveItems[1].Name)

	// The report is a snapshot; later expense changes do not alter it.
	rr = s.do(t, "DELETE", expensesPath(userID, "/expense/delete-all"), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = s.do(t, "GET", expensesPath(userID, "/report?report_id="+reportID), nil)
	decode(t, rr, &report)
	assert.Len(t, report.Expenses, 2)
}

func TestCreateReportWithoutExpenses(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, "POST", expensesPath(userID, "/report/create"), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var resp map[string]string
	decode(t, rr, &resp)
	assert.Equal(t, "No expenses found", resp["detail"])
}

func TestCreateReportDateRange(t *testing.T) {
	s := newTestServer(t)
	createExpense(t, s, "one", item{"item_name": "a", "item_price": 1.0})

	today := time.Now().Format("2006-01-02")
	reportID := createReport(t, s, "?date_from="+today+"&date_to="+today)

	rr := s.do(t, "GET", expensesPath(userID, "/report?report_id="+reportID), nil)
	var report reportBody
	decode(t, rr, &report)
	require.NotNil(t, report.DateFrom)
	assert.Equal(t, today, *report.DateFrom)
	assert.Equal(t, today, *report.DateTo)
}

func TestListAndDeleteReports(t *testing.T) {
	s := newTestServer(t)
	createExpense(t, s, "one", item{"item_name": "a", "item_price": 1.0})
	first := createReport(t, s, "")
	second := createReport(t, s, "")

	rr := s.do(t, "GET", expensesPath(userID, "/reports"), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var ids []string
	decode(t, rr, &ids)
	assert.ElementsMatch(t, []string{first, second}, ids)

	rr = s.do(t, "DELETE", expensesPath(userID, "/report/delete/"+first), nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, "GET", expensesPath(userID, "/report?report_id="+first), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	var resp map[string]string
	decode(t, rr, &resp)
	assert.Equal(t, "Report not found, check if report id is correct", resp["detail"])

	rr = s.do(t, "DELETE", expensesPath(userID, "/report/delete/"+first), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(t, "DELETE", expensesPath(userID, "/report/delete-all"), nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, "GET", expensesPath(userID, "/reports"), nil)
	decode(t, rr, &ids)
	assert.Empty(t, ids)

	rr = s.do(t, "GET", expensesPath(userID, "/report?report_id="+second), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code, "cached copy is invalidated")
}

func TestGetReportRequiresID(t *testing.T) {
	s := newTestServer(t)
	rr := s.do(t, "GET", expensesPath(userID, "/report"), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
