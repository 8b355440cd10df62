package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expenseBody struct {
	ExpenseID   string `json:"expense_id"`
	Description string `json:"description"`
	Items       []struct {
		ID       string  `json:"item_id"`
		Name     string  `json:"item_name"`
		Price    float64 `json:"item_price"`
		Quantity int     `json:"item_quantity"`
	} `json:"items"`
	TotalPrice float64 `json:"total_price"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func TestCreateExpense(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, "POST", expensesPath(userID, "/create"), map[string]interface{}{
		"description": "groceries",
		"items": []item{
			{"item_name": "milk", "item_price": 1.5, "item_quantity": 2},
			{"item_name": "bread", "item_price": 2.0},
		},
	})

	assert.Equal(t, http.StatusCreated, rr.Code, "status code not Created")
	var resp map[string]string
	decode(t, rr, &resp)
	assert.Equal(t, "Expense created successfully", resp["message"])
	assert.NotEmpty(t, resp["expense_id"])

	rr = s.do(t, "GET", expensesPath(userID, "/"), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var expenses []expenseBody
	decode(t, rr, &expenses)
	require.Len(t, expenses, 1)
	assert.Equal(t, resp["expense_id"], expenses[0].ExpenseID)
	assert.Equal(t, 5.0, expenses[0].TotalPrice)
	assert.Equal(t, 1, expenses[0].Items[1].Quantity, "missing quantity defaults to 1")
	_, err := time.ParseInLocation("2006/01/02 15:04:05", expenses[0].CreatedAt, time.Local)
	assert.NoError(t, err, "created_at uses the response timestamp layout")
}

func TestCreateExpenseValidation(t *testing.T) {
	tests := []struct {
		name   string
		body   map[string]interface{}
		detail string
	}{
		{
			name:   "empty description",
			body:   map[string]interface{}{"description": "", "items": []item{{"item_name": "a", "item_price": 1}}},
			detail: "Description can not be empty",
		},
		{
			name:   "no items",
			body:   map[string]interface{}{"description": "x", "items": []item{}},
			detail: "Items can not be empty",
		},
		{
			name:   "empty item name",
			body:   map[string]interface{}{"description": "x", "items": []item{{"item_name": "", "item_price": 1}}},
			detail: "Item name can not be empty",
		},
		{
			name:   "zero price",
			body:   map[string]interface{}{"description": "x", "items": []item{{"item_name": "a", "item_price": 0}}},
			detail: "Item price must be greater than 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			rr := s.do(t, "POST", expensesPath(userID, "/create"), tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			var resp map[string]string
			decode(t, rr, &resp)
			assert.Equal(t, tt.detail, resp["detail"])
		})
	}
}

func TestGetExpensesDateFilter(t *testing.T) {
	s := newTestServer(t)
	createExpense(t, s, "today", item{"item_name": "a", "item_price": 1})

	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	rr := s.do(t, "GET", expensesPath(userID, "/?date_from="+today+"&date_to="+today), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var expenses []expenseBody
	decode(t, rr, &expenses)
	assert.Len(t, expenses, 1, "both bounds are inclusive")

	rr = s.do(t, "GET", expensesPath(userID, "/?date_from="+tomorrow), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &expenses)
	assert.Empty(t, expenses)

	rr = s.do(t, "GET", expensesPath(userID, "?date_from=yesterday"), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateItem(t *testing.T) {
	s := newTestServer(t)
	createExpense(t, s, "lunch",
		item{"item_id": "item-a", "item_name": "a", "item_price": 10.0, "item_quantity": 1},
		item{"item_id": "item-b", "item_name": "b", "item_price": 3.5, "item_quantity": 2},
	)
	rr := s.do(t, "GET", expensesPath(userID, "/"), nil)
	var expenses []expenseBody
	decode(t, rr, &expenses)
	require.Len(t, expenses, 1)
	assert.Equal(t, 17.0, expenses[0].TotalPrice)
	expenseID := expenses[0].ExpenseID

	rr = s.do(t, "PUT", expensesPath(userID, "/"+expenseID+"/item/item-b/update"),
		item{"item_name": "b", "item_price": 5.0, "item_quantity": 3})
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp map[string]string
	decode(t, rr, &resp)
	assert.Equal(t, "Item updated successfully", resp["message"])

	rr = s.do(t, "GET", expensesPath(userID, "/"), nil)
	decode(t, rr, &expenses)
	assert.Equal(t, 25.0, expenses[0].TotalPrice)
	assert.Equal(t, "item-b", expenses[0].Items[1].ID)

	rr = s.do(t, "PUT", expensesPath(userID, "/"+expenseID+"/item/missing/update"),
		item{"item_name": "b", "item_price": 5.0})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	decode(t, rr, &resp)
	assert.Equal(t, "Item with id missing not found in expense", resp["detail"])

	rr = s.do(t, "PUT", expensesPath(userID, "/nope/item/item-b/update"),
		item{"item_name": "b", "item_price": 5.0})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	decode(t, rr, &resp)
	assert.Equal(t, "Expense with id nope not found", resp["detail"])
}

func TestUpdateDescription(t *testing.T) {
	s := newTestServer(t)
	expenseID := createExpense(t, s, "old", item{"item_name": "a", "item_price": 2})

	rr := s.do(t, "PUT", expensesPath(userID, "/description/update?expense_id="+expenseID),
		map[string]string{"description": "new"})
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = s.do(t, "GET", expensesPath(userID, "/"), nil)
	var expenses []expenseBody
	decode(t, rr, &expenses)
	assert.Equal(t, "new", expenses[0].Description)

	rr = s.do(t, "PUT", expensesPath(userID, "/description/update"), map[string]string{"description": "x"})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "expense_id is required")

	rr = s.do(t, "PUT", expensesPath(userID, "/description/update?expense_id=missing"), map[string]string{"description": "x"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeleteExpense(t *testing.T) {
	s := newTestServer(t)
	expenseID := createExpense(t, s, "gone", item{"item_name": "a", "item_price": 2})
	createExpense(t, s, "kept", item{"item_name": "b", "item_price": 2})

	rr := s.do(t, "DELETE", expensesPath(userID, "/expense/delete/"+expenseID), nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, "DELETE", expensesPath(userID, "/expense/delete/"+expenseID), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(t, "GET", expensesPath(userID, "/"), nil)
	var expenses []expenseBody
	decode(t, rr, &expenses)
	require.Len(t, expenses, 1)
	assert.Equal(t, "kept", expenses[0].Description)

	rr = s.do(t, "DELETE", expensesPath(userID, "/expense/delete-all"), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = s.do(t, "GET", expensesPath(userID, "/"), nil)
	decode(t, rr, &expenses)
	assert.Empty(t, expenses)
}

func TestExpensesRequireMatchingToken(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		header string
		path   string
		status int
		detail string
	}{
		{"missing header", "", expensesPath(userID, "/"), http.StatusUnauthorized, "Authorization header is missing"},
		{"wrong scheme", "Basic abc", expensesPath(userID, "/"), http.StatusUnauthorized, "Invalid authorization header format. Expected: Bearer <token>"},
		{"garbage token", "Bearer not-a-jwt", expensesPath(userID, "/"), http.StatusUnauthorized, "Invalid or expired token"},
		{"refresh token", "Bearer " + signToken(t, userID, "refresh"), expensesPath(userID, "/"), http.StatusUnauthorized, "Invalid or expired token"},
		{"other user", "Bearer " + s.token, expensesPath(otherUser, "/"), http.StatusForbidden, "Access denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := s.doRequest(req)
			assert.Equal(t, tt.status, rr.Code)
			var resp map[string]string
			decode(t, rr, &resp)
			assert.Equal(t, tt.detail, resp["detail"])
		})
	}
}
