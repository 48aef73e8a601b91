package summary

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/moneywatch/moneywatch/internal/auth"
	"github.com/moneywatch/moneywatch/internal/core/period"
	"github.com/moneywatch/moneywatch/internal/transport"
	"github.com/moneywatch/moneywatch/pkg/logger"
)

type ServiceAPI interface {
	GetBreakdown(userID int64, month period.Month) (Breakdown, error)
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

// GetSummary handles GET /summary/{period}
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
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

	breakdown, err := h.Service.GetBreakdown(user.ID, month)
	if err != nil {
		h.Logger.Error("GetSummary: service error", "error", err, "period", month.String())
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, breakdown)
}
