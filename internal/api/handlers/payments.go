package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/staybook/internal/api/httpx"
	"github.com/baharkarakas/staybook/internal/api/validate"
	"github.com/baharkarakas/staybook/internal/services"
)

type PaymentHandler struct {
	svc *services.PaymentService
}

func NewPaymentHandler(svc *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

type initiateReq struct {
	BookingID   string `json:"booking_id" validate:"required"`
	CallbackURL string `json:"callback_url"`
}

// Initiate handles POST /payments/initiate/.
func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	var req initiateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body", nil)
		return
	}
	if err := validate.Struct(req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation", "booking_id is required", err)
		return
	}

	res, err := h.svc.Initiate(r.Context(), req.BookingID, req.CallbackURL)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, res)
}

// Verify handles GET /payments/verify/?tx_ref=.
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	txRef := r.URL.Query().Get("tx_ref")
	if ef := validate.Required("tx_ref", txRef); ef != nil {
		httpx.WriteError(w, http.StatusBadRequest, "validation", "tx_ref required", validate.Errs{*ef})
		return
	}

	res, err := h.svc.Verify(r.Context(), txRef)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetByTxRef(r.Context(), chi.URLParam(r, "txRef"))
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *PaymentHandler) ListForBooking(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ListForBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
