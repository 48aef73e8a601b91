package salary

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
	ListSalaries(userID int64) ([]*Salary, error)
	CreateSalary(userID int64, dto CreateSalaryDTO) (*Salary, error)
	UpdateSalary(id, userID int64, dto UpdateSalaryDTO) (*Salary, error)
	ActivateSalary(id, userID int64) (*Salary, error)
	DeleteSalary(id, userID int64) error
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

func (h *Handler) GetSalaries(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	salaries, err := h.Service.ListSalaries(user.ID)
	if err != nil {
		h.Logger.Error("GetSalaries: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, salaries)
}

func (h *Handler) CreateSalary(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateSalaryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sal, err := h.Service.CreateSalary(user.ID, dto)
	if err != nil {
		h.Logger.Error("CreateSalary: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, sal)
}

func (h *Handler) UpdateSalary(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.salaryID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid salary ID")
		return
	}

	var dto UpdateSalaryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sal, err := h.Service.UpdateSalary(id, user.ID, dto)
	if err != nil {
		h.Logger.Error("UpdateSalary: service error", "error", err, "salary_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sal)
}

// ActivateSalary handles PATCH /salaries/{id}/activate
func (h *Handler) ActivateSalary(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.salaryID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid salary ID")
		return
	}

	sal, err := h.Service.ActivateSalary(id, user.ID)
	if err != nil {
		h.Logger.Error("ActivateSalary: service error", "error", err, "salary_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sal)
}

func (h *Handler) DeleteSalary(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := h.salaryID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid salary ID")
		return
	}

	if err := h.Service.DeleteSalary(id, user.ID); err != nil {
		h.Logger.Error("DeleteSalary: service error", "error", err, "salary_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) salaryID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
