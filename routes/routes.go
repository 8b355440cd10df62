package routes

import (
	"github.com/gorilla/mux"

	"expense-api/controllers"
	"expense-api/middleware"
)

type Controllers struct {
	Expenses   *controllers.ExpenseController
	Reports    *controllers.ReportController
	Statistics *controllers.StatisticsController
}

// SetupRoutes registers the expense, report and statistics APIs. Every
// /{user_id}/expenses route requires a token whose subject is user_id.
func SetupRoutes(c Controllers, verifier middleware.Verifier, service string) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Tracing(service))

	r.HandleFunc("/healthz", controllers.Healthz).Methods("GET")

	stats := r.PathPrefix("/statistics").Subrouter()
	stats.HandleFunc("/log-call", c.Statistics.LogCall).Methods("POST")
	stats.HandleFunc("/last-called-endpoint", c.Statistics.LastCalledEndpoint).Methods("GET")
	stats.HandleFunc("/most-called-endpoint", c.Statistics.MostCalledEndpoint).Methods("GET")
	stats.HandleFunc("/all-calls-statistics", c.Statistics.AllCallsStatistics).Methods("GET")

	exp := r.PathPrefix("/{user_id}/expenses").Subrouter()
	exp.Use(middleware.RequireUser(verifier))
	exp.HandleFunc("/create", c.Expenses.CreateExpense).Methods("POST")
	exp.HandleFunc("/", c.Expenses.GetExpenses).Methods("GET")
	exp.HandleFunc("", c.Expenses.GetExpenses).Methods("GET")
	exp.HandleFunc("/description/update", c.Expenses.UpdateDescription).Methods("PUT")
	exp.HandleFunc("/{expense_id}/item/{item_id}/update", c.Expenses.UpdateItem).Methods("PUT")
	exp.HandleFunc("/expense/delete-all", c.Expenses.DeleteAllExpenses).Methods("DELETE")
	exp.HandleFunc("/expense/delete/{expense_id}", c.Expenses.DeleteExpense).Methods("DELETE")

	exp.HandleFunc("/report/create", c.Reports.CreateReport).Methods("POST")
	exp.HandleFunc("/reports", c.Reports.ListReportIDs).Methods("GET")
	exp.HandleFunc("/report", c.Reports.GetReport).Methods("GET")
	exp.HandleFunc("/report/delete-all", c.Reports.DeleteAllReports).Methods("DELETE")
	exp.HandleFunc("/report/delete/{report_id}", c.Reports.DeleteReport).Methods("DELETE")

	return r
}
