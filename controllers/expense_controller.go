package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"expense-api/models"
	"expense-api/services"
)

type ExpenseController struct {
	expenses *services.ExpenseService
}

func NewExpenseController(expenses *services.ExpenseService) *ExpenseController {
	return &ExpenseController{expenses: expenses}
}

type createExpenseRequest struct {
	Description string        `json:"description"`
	Items       []models.Item `json:"items"`
}

type createExpenseResponse struct {
	Message   string `json:"message"`
	ExpenseID string `json:"expense_id"`
}

type descriptionRequest struct {
	Description string `json:"description"`
}

func (c *ExpenseController) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	id, err := c.expenses.Create(r.Context(), userID, req.Description, req.Items)
	if err != nil {
		writeServiceError(w, r, err, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, createExpenseResponse{
		Message:   "Expense created successfully",
		ExpenseID: id,
	})
}

func (c *ExpenseController) GetExpenses(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	from, to, err := parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	expenses, err := c.expenses.Query(r.Context(), userID, from, to)
	if err != nil {
		writeServiceError(w, r, err, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, newExpenseResponses(expenses))
}

func (c *ExpenseController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	var item models.Item
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	err := c.expenses.UpdateItem(r.Context(), params["user_id"], params["expense_id"], params["item_id"], item)
	if err != nil {
		writeServiceError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Item updated successfully"})
}

func (c *ExpenseController) UpdateDescription(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	expenseID := r.URL.Query().Get("expense_id")
	if expenseID == "" {
		writeError(w, http.StatusBadRequest, "expense_id query parameter is required")
		return
	}
	var req descriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := c.expenses.UpdateDescription(r.Context(), userID, expenseID, req.Description); err != nil {
		writeServiceError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Expense description updated successfully"})
}

func (c *ExpenseController) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	if err := c.expenses.Delete(r.Context(), params["user_id"], params["expense_id"]); err != nil {
		writeServiceError(w, r, err, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Expense deleted successfully"})
}

func (c *ExpenseController) DeleteAllExpenses(w http.ResponseWriter, r *http.Request) {
	if err := c.expenses.DeleteAll(r.Context(), mux.Vars(r)["user_id"]); err != nil {
		writeServiceError(w, r, err, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "All expenses deleted successfully"})
}
