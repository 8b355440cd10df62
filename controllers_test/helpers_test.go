package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"expense-api/auth"
	"expense-api/cache"
	"expense-api/controllers"
	"expense-api/repository/memory"
	"expense-api/routes"
	"expense-api/services"
)

const (
	testSecret = "test-secret"
	userID     = "6f1c2a9e-3b4d-4e5f-8a7b-9c0d1e2f3a4b"
	otherUser  = "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
)

type testServer struct {
	router *mux.Router
	stats  *memory.StatsStore
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	expenses := services.NewExpenseService(memory.NewExpenseStore(), nil)
	reports := services.NewReportService(memory.NewReportStore(), expenses, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute, nil)
	statsStore := memory.NewStatsStore()
	stats := services.NewStatisticsService(statsStore, services.DefaultKeyPrefix, nil)

	verifier := auth.NewTokenVerifier(testSecret)
	router := routes.SetupRoutes(routes.Controllers{
		Expenses:   controllers.NewExpenseController(expenses),
		Reports:    controllers.NewReportController(reports),
		Statistics: controllers.NewStatisticsController(stats),
	}, verifier, "expense-api-test")

	return &testServer{router: router, stats: statsStore, token: signToken(t, userID, auth.TokenTypeAccess)}
}

func signToken(t *testing.T, sub, tokenType string) string {
	t.Helper()
	token, err := auth.NewTokenVerifier(testSecret).Sign(auth.Principal{UserID: sub, Username: "ana"}, tokenType,
		jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))})
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return s.doWithToken(t, method, path, body, s.token)
}

func (s *testServer) doWithToken(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.doRequest(req)
}

func (s *testServer) doRequest(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v), "error unmarshalling response: %s", rr.Body.String())
}

func expensesPath(user, suffix string) string {
	return "/" + user + "/expenses" + suffix
}

type item map[string]interface{}

func createExpense(t *testing.T, s *testServer, description string, items ...item) string {
	t.Helper()
	rr := s.do(t, "POST", expensesPath(userID, "/create"), map[string]interface{}{
		"description": description,
		"items":       items,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp map[string]string
	decode(t, rr, &resp)
	return resp["expense_id"]
}
