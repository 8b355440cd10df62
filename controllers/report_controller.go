package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"expense-api/services"
)

type ReportController struct {
	reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

type createReportResponse struct {
	Message  string `json:"message"`
	ReportID string `json:"report_id"`
}

func (c *ReportController) CreateReport(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	from, to, err := parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := c.reports.Create(r.Context(), userID, from, to)
	if err != nil {
		writeServiceError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, createReportResponse{
		Message:  "Report successfully created",
		ReportID: id,
	})
}

func (c *ReportController) ListReportIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := c.reports.ListIDs(r.Context(), mux.Vars(r)["user_id"])
	if err != nil {
		writeServiceError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

func (c *ReportController) GetReport(w http.ResponseWriter, r *http.Request) {
	reportID := r.URL.Query().Get("report_id")
	if reportID == "" {
		writeError(w, http.StatusBadRequest, "report_id query parameter is required")
		return
	}
	report, err := c.reports.Get(r.Context(), mux.Vars(r)["user_id"], reportID)
	if err != nil {
		writeServiceError(w, r, err, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, newReportResponse(report))
}

func (c *ReportController) DeleteReport(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	if err := c.reports.Delete(r.Context(), params["user_id"], params["report_id"]); err != nil {
		writeServiceError(w, r, err, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Report deleted successfully"})
}

func (c *ReportController) DeleteAllReports(w http.ResponseWriter, r *http.Request) {
	if err := c.reports.DeleteAll(r.Context(), mux.Vars(r)["user_id"]); err != nil {
		writeServiceError(w, r, err, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "All reports deleted successfully"})
}
