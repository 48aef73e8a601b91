package report

import (
	"context"
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
	CategoryDistribution(userID int64, month period.Month) ([]CategorySlice, error)
	MonthlyTrend(ctx context.Context, userID int64, year int) []MonthTotal
	YearlyCategoryTotals(ctx context.Context, userID int64, year int) []CategorySlice
	Years(userID int64) []int
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

// GetCategoryDistribution handles GET /reports/distribution/{period}
func (h *Handler) GetCategoryDistribution(w http.ResponseWriter, r *http.Request) {
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

	slices, err := h.Service.CategoryDistribution(user.ID, month)
	if err != nil {
		h.Logger.Error("GetCategoryDistribution: service error", "error", err, "period", month.String())
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, slices)
}

// GetMonthlyTrend handles GET /reports/trend/{year}
func (h *Handler) GetMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	year, err := h.year(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid year")
		return
	}

	trend := h.Service.MonthlyTrend(r.Context(), user.ID, year)
	h.WriteJSON(w, http.StatusOK, trend)
}

// GetYearlyCategoryTotals handles GET /reports/categories/{year}
func (h *Handler) GetYearlyCategoryTotals(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	year, err := h.year(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid year")
		return
	}

	totals := h.Service.YearlyCategoryTotals(r.Context(), user.ID, year)
	h.WriteJSON(w, http.StatusOK, totals)
}

// GetYears handles GET /expenses/years
func (h *Handler) GetYears(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.WriteJSON(w, http.StatusOK, h.Service.Years(user.ID))
}

func (h *Handler) year(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "year"))
}
