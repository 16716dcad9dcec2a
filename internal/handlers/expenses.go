package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"spendlog/internal/logger"
	"spendlog/internal/models"

	"github.com/go-chi/chi/v5"
)

// ExpenseRow is a single expense prepared for the dashboard template.
type ExpenseRow struct {
	models.Expense
	DateLabel string
}

// DashboardViewModel is the data passed to the dashboard template.
type DashboardViewModel struct {
	Username string
	Total    float64
	Expenses []ExpenseRow
}

// Dashboard lists the current user's expenses and their running total.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	expenses, err := h.db.ListExpensesForUser(user.ID)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to list expenses")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	total, err := h.db.TotalForUser(user.ID)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to total expenses")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	rows := make([]ExpenseRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, ExpenseRow{
			Expense:   e,
			DateLabel: e.Date.Format("Jan 02, 2006"),
		})
	}

	h.render(w, r, "dashboard.html", DashboardViewModel{
		Username: user.Username,
		Total:    total,
		Expenses: rows,
	})
}

// AddExpense creates an expense from the dashboard form. A missing title or
// amount, or an amount that does not parse as a finite number, skips
// creation without surfacing an error; either way the request redirects back
// to the dashboard.
func (h *Handlers) AddExpense(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	amountText := strings.TrimSpace(r.FormValue("amount"))
	category := strings.TrimSpace(r.FormValue("category"))

	if title == "" || amountText == "" {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	amount, err := strconv.ParseFloat(amountText, 64)
	if err != nil || math.IsInf(amount, 0) || math.IsNaN(amount) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	if _, err := h.db.CreateExpense(user.ID, title, amount, category, time.Now()); err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to create expense")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// DeleteExpense deletes the expense if it is owned by the current user and
// always redirects to the dashboard, whether or not a row was removed.
func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err == nil {
		if err := h.db.DeleteExpense(user.ID, id); err != nil {
			logger.FromRequest(r).Err(err).Int64("expense_id", id).Msg("failed to delete expense")
		}
	}

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}
