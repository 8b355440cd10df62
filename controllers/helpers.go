package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"expense-api/logger"
	"expense-api/services"
)

const (
	// TimestampLayout is how every timestamp is rendered in responses.
	TimestampLayout = "2006/01/02 15:04:05"
	// DateLayout is used for date_from/date_to, in queries and responses.
	DateLayout = "2006-01-02"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// writeServiceError maps service errors to statuses. notFound is the status
// used for missing documents on this route.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound int) {
	switch {
	case services.IsValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case services.IsNotFoundError(err):
		writeError(w, notFound, err.Error())
	default:
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// parseDateParam reads an optional YYYY-MM-DD query parameter as local midnight.
func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, v, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid %s '%s': expected YYYY-MM-DD", name, v)
	}
	return &t, nil
}

func parseDateRange(r *http.Request) (*time.Time, *time.Time, error) {
	from, err := parseDateParam(r, "date_from")
	if err != nil {
		return nil, nil, err
	}
	to, err := parseDateParam(r, "date_to")
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
