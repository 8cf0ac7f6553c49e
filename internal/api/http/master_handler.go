package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"pawnledger-backend/internal/domain"
)

// actor pulls the caller off the context, writing a 401 when it is missing.
func actor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	a, err := ActorFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return domain.Actor{}, false
	}
	return a, true
}

// Branches

func (h *Handler) CreateBranch(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var b domain.Branch
	if err := decodeJSON(w, r, &b); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Branches.CreateBranch(r.Context(), a, &b); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *Handler) ListBranches(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	branches, err := h.svc.Branches.ListBranches(r.Context(), a)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, branches)
}

func (h *Handler) GetBranch(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	b, err := h.svc.Branches.GetBranch(r.Context(), a, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *Handler) DeleteBranch(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Branches.DeleteBranch(r.Context(), a, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Schemes

func (h *Handler) CreateScheme(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var s domain.Scheme
	if err := decodeJSON(w, r, &s); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Schemes.CreateScheme(r.Context(), a, &s); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, s)
}

func (h *Handler) UpdateScheme(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var s domain.Scheme
	if err := decodeJSON(w, r, &s); err != nil {
		writeError(w, r, err)
		return
	}
	s.ID = id
	if err := h.svc.Schemes.UpdateScheme(r.Context(), a, &s); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) GetScheme(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	s, err := h.svc.Schemes.GetScheme(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) ListSchemes(w http.ResponseWriter, r *http.Request) {
	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("active"))
	schemes, err := h.svc.Schemes.ListSchemes(r.Context(), activeOnly)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schemes)
}

// Gold rates

type setRateRequest struct {
	Rate22k decimal.Decimal `json:"rate_per_gram_22k"`
	Rate24k decimal.Decimal `json:"rate_per_gram_24k"`
	Date    *time.Time      `json:"rate_date,omitempty"`
}

func (h *Handler) SetRate(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var req setRateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	var date time.Time
	if req.Date != nil {
		date = *req.Date
	}
	rate, err := h.svc.Rates.SetRate(r.Context(), a, req.Rate22k, req.Rate24k, date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rate)
}

// CurrentRate returns the most recent rate, optionally as of an RFC3339 "as_of" instant.
func (h *Handler) CurrentRate(w http.ResponseWriter, r *http.Request) {
	var asOf time.Time
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, r, domain.NewValidationError("as_of", "must be an RFC3339 timestamp"))
			return
		}
		asOf = t
	}
	rate, err := h.svc.Rates.CurrentRate(r.Context(), asOf)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rate)
}

func (h *Handler) ListRates(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt32(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var n int32
	if limit != nil {
		n = *limit
	}
	rates, err := h.svc.Rates.ListRates(r.Context(), n)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rates)
}

// Vouchers

func (h *Handler) AddVoucher(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var v domain.Voucher
	if err := decodeJSON(w, r, &v); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Vouchers.AddVoucher(r.Context(), a, &v); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) ListVouchers(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	date, err := queryDate(r, "date", h.loc)
	if err != nil {
		writeError(w, r, err)
		return
	}
	branchID, err := queryInt32(r, "branch_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	vouchers, err := h.svc.Vouchers.ListVouchers(r.Context(), a, date, branchID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, vouchers)
}

func (h *Handler) DeleteVoucher(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Vouchers.DeleteVoucher(r.Context(), a, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Staff

func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var in domain.StaffInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.svc.Staff.CreateStaff(r.Context(), a, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in domain.StaffInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.svc.Staff.UpdateStaff(r.Context(), a, id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	branchID, err := queryInt32(r, "branch_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	users, err := h.svc.Staff.ListStaff(r.Context(), a, branchID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.Staff.DeleteStaff(r.Context(), a, id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
