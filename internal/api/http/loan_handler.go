package http

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"pawnledger-backend/internal/domain"
)

func (h *Handler) IssuePledge(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var req domain.PledgeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	loan, err := h.svc.Pledges.IssuePledge(r.Context(), a, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

// GetLoan accepts either the numeric id or the loan number in the path.
func (h *Handler) GetLoan(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	loan, err := h.svc.Pledges.GetLoan(r.Context(), a, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

// ListLoans filters by ?branch_id=, ?customer_id=, ?status=a,b and ?limit=.
func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var filter domain.LoanFilter
	var err error
	if filter.BranchID, err = queryInt32(r, "branch_id"); err != nil {
		writeError(w, r, err)
		return
	}
	if filter.CustomerID, err = queryInt32(r, "customer_id"); err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := queryInt32(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if limit != nil {
		filter.Limit = *limit
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			filter.Statuses = append(filter.Statuses, domain.LoanStatus(strings.TrimSpace(s)))
		}
	}

	loans, err := h.svc.Pledges.ListLoans(r.Context(), a, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

type paymentResponse struct {
	Payment *domain.Payment `json:"payment"`
	Loan    *domain.Loan    `json:"loan"`
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	var req domain.PaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	payment, loan, err := h.svc.Payments.RecordPayment(r.Context(), a, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, paymentResponse{Payment: payment, Loan: loan})
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	payments, err := h.svc.Payments.ListPayments(r.Context(), a, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *Handler) ListAuctionEligible(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	branchID, err := queryInt32(r, "branch_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	loans, err := h.svc.Lifecycle.ListAuctionEligible(r.Context(), a, branchID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

func (h *Handler) AuctionLoan(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "loanId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req domain.AuctionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	loan, err := h.svc.Lifecycle.AuctionLoan(r.Context(), a, id, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}
