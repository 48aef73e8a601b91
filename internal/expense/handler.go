package expense

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/moneywatch/moneywatch/internal/auth"
	"github.com/moneywatch/moneywatch/internal/core/period"
	"github.com/moneywatch/moneywatch/internal/transport"
	"github.com/moneywatch/moneywatch/pkg/logger"
)

type ServiceAPI interface {
	ListByPeriod(userID int64, month period.Month) ([]*Expense, error)
	ListRecent(userID int64, limit int) ([]*Expense, error)
	CreateExpense(userID int64, dto CreateExpenseDTO) (*Expense, error)
	UpdateExpense(id, userID int64, dto UpdateExpenseDTO) (*Expense, error)
	SetPaidStatus(id, userID int64, paid bool) (*Expense, error)
	DeleteExpense(id, userID int64) error
}

type GeneratorAPI interface {
	GenerateForPeriod(userID int64, month period.Month) (int, error)
}

type Handler struct {
	*transport.BaseHandler
	Service   ServiceAPI
	Generator GeneratorAPI
}

func NewHandler(service ServiceAPI, generator GeneratorAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
		Generator:   generator,
	}
}

// GetExpenses lists the expenses of one period: GET /expenses/period/{period}
func (h *Handler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	month, err := period.ParseMonth(chi.URLParam(r, "period"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid period, expected YYYY-MM")
		return
	}

	expenses, err := h.Service.ListByPeriod(user.ID, month)
	if err != nil {
		h.Logger.Error("GetExpenses: service error", "error", err, "period", month.String())
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, expenses)
}

// GetRecentExpenses serves the dashboard's recent list: GET /expenses/recent
func (h *Handler) GetRecentExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 5
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 50 {
			limit = l
		}
	}

	expenses, err := h.Service.ListRecent(user.ID, limit)
	if err != nil {
		h.Logger.Error("GetRecentExpenses: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, expenses)
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exp, err := h.Service.CreateExpense(user.ID, dto)
	if err != nil {
		h.Logger.Error("CreateExpense: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, exp)
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.expenseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	var dto UpdateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exp, err := h.Service.UpdateExpense(id, user.ID, dto)
	if err != nil {
		h.Logger.Error("UpdateExpense: service error", "error", err, "expense_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp)
}

// UpdatePaidStatus handles PATCH /expenses/{id}/paid
func (h *Handler) UpdatePaidStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.expenseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	var dto UpdatePaidStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	exp, err := h.Service.SetPaidStatus(id, user.ID, dto.Paid)
	if err != nil {
		h.Logger.Error("UpdatePaidStatus: service error", "error", err, "expense_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, exp)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.expenseID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	if err := h.Service.DeleteExpense(id, user.ID); err != nil {
		h.Logger.Error("DeleteExpense: service error", "error", err, "expense_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GenerateRecurring materializes recurring templates into the period:
// POST /expenses/period/{period}/generate. The client refetches the period after.
func (h *Handler) GenerateRecurring(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	month, err := period.ParseMonth(chi.URLParam(r, "period"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid period, expected YYYY-MM")
		return
	}

	created, err := h.Generator.GenerateForPeriod(user.ID, month)
	if err != nil {
		h.Logger.Error("GenerateRecurring: service error", "error", err, "period", month.String())
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]int{"generated": created})
}

func (h *Handler) expenseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
