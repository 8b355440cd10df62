package controllers

import (
	"errors"
	"net/http"

	"expense-api/services"
)

type StatisticsController struct {
	stats *services.StatisticsService
}

func NewStatisticsController(stats *services.StatisticsService) *StatisticsController {
	return &StatisticsController{stats: stats}
}

type logCallRequest struct {
	CalledService string `json:"klicanaStoritev"`
}

type logCallResponse struct {
	Message  string `json:"message"`
	Endpoint string `json:"endpoint"`
}

type lastCalledResponse struct {
	Endpoint string `json:"endpoint"`
	Time     string `json:"time"`
}

type endpointCountResponse struct {
	Endpoint  string `json:"endpoint"`
	CallCount int64  `json:"call_count"`
}

type noDataResponse struct {
	Error string `json:"error"`
}

var noData = noDataResponse{Error: "No data"}

// LogCall records a call reported by another service.
func (c *StatisticsController) LogCall(w http.ResponseWriter, r *http.Request) {
	var req logCallRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if _, err := c.stats.RecordCall(r.Context(), req.CalledService); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, logCallResponse{
		Message:  "Call logged successfully",
		Endpoint: req.CalledService,
	})
}

func (c *StatisticsController) LastCalledEndpoint(w http.ResponseWriter, r *http.Request) {
	last, err := c.stats.LastCalled(r.Context())
	if errors.Is(err, services.ErrNoStatistics) {
		writeJSON(w, http.StatusOK, noData)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, lastCalledResponse{
		Endpoint: last.Endpoint,
		Time:     formatTimestamp(last.Time),
	})
}

func (c *StatisticsController) MostCalledEndpoint(w http.ResponseWriter, r *http.Request) {
	most, err := c.stats.MostCalled(r.Context())
	if errors.Is(err, services.ErrNoStatistics) {
		writeJSON(w, http.StatusOK, noData)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, endpointCountResponse{Endpoint: most.Endpoint, CallCount: most.Count})
}

func (c *StatisticsController) AllCallsStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := c.stats.AllStats(r.Context())
	if errors.Is(err, services.ErrNoStatistics) {
		writeJSON(w, http.StatusOK, []noDataResponse{noData})
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out := make([]endpointCountResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, endpointCountResponse{Endpoint: s.Endpoint, CallCount: s.Count})
	}
	writeJSON(w, http.StatusOK, out)
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
