package recurring

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/moneywatch/moneywatch/internal/auth"
	"github.com/moneywatch/moneywatch/internal/transport"
	"github.com/moneywatch/moneywatch/pkg/logger"
)

type ServiceAPI interface {
	ListTemplates(userID int64) ([]*RecurringExpense, error)
	CreateTemplate(userID int64, dto CreateRecurringExpenseDTO) (*RecurringExpense, error)
	UpdateTemplate(id, userID int64, dto UpdateRecurringExpenseDTO) (*RecurringExpense, error)
	ToggleActive(id, userID int64) (*RecurringExpense, error)
	DeleteTemplate(id, userID int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) GetRecurringExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	templates, err := h.Service.ListTemplates(user.ID)
	if err != nil {
		h.Logger.Error("GetRecurringExpenses: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, templates)
}

func (h *Handler) CreateRecurringExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateRecurringExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tpl, err := h.Service.CreateTemplate(user.ID, dto)
	if err != nil {
		h.Logger.Error("CreateRecurringExpense: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, tpl)
}

func (h *Handler) UpdateRecurringExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.templateID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid recurring expense ID")
		return
	}

	var dto UpdateRecurringExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tpl, err := h.Service.UpdateTemplate(id, user.ID, dto)
	if err != nil {
		h.Logger.Error("UpdateRecurringExpense: service error", "error", err, "recurring_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tpl)
}

// ToggleRecurringExpenseStatus handles PATCH /recurringExpenses/{id}/toggle
func (h *Handler) ToggleRecurringExpenseStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.templateID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid recurring expense ID")
		return
	}

	tpl, err := h.Service.ToggleActive(id, user.ID)
	if err != nil {
		h.Logger.Error("ToggleRecurringExpenseStatus: service error", "error", err, "recurring_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tpl)
}

func (h *Handler) DeleteRecurringExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.templateID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid recurring expense ID")
		return
	}

	if err := h.Service.DeleteTemplate(id, user.ID); err != nil {
		h.Logger.Error("DeleteRecurringExpense: service error", "error", err, "recurring_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) templateID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
