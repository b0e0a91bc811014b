package summary

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/deskboard/internal/fakeapi"
)

// Handler serves the accounting summary computed from the transactions resource.
type Handler struct {
	store *fakeapi.Store
}

func NewHandler(store *fakeapi.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

type summaryResponse struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    summaryResponse `json:"data"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	if f, failing := h.store.TakeFailure("accounting/summary"); failing {
		http.Error(w, f.Message, f.Status)
		return
	}

	revenue, expenses, net := h.store.Summary()

	w.Header().Set("Content-Type", "application/json")

	resp := envelope{
		Success: true,
		Data:    summaryResponse{TotalRevenue: revenue, TotalExpenses: expenses, NetProfit: net},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
