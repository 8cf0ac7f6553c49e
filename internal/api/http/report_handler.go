package http

import (
	"net/http"
	"time"
)

func (h *Handler) DayBook(w http.ResponseWriter, r *http.Request) {
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
	var day time.Time
	if date != nil {
		day = *date
	}
	book, err := h.svc.Reports.DayBook(r.Context(), a, day, branchID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *Handler) FinancialStats(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	branchID, err := queryInt32(r, "branch_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	stats, err := h.svc.Reports.FinancialStats(r.Context(), a, branchID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) BusinessReport(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	report, err := h.svc.Reports.BusinessReport(r.Context(), a)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// DemandReport takes ?days=; zero or missing uses the configured horizon.
func (h *Handler) DemandReport(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	days, err := queryInt32(r, "days")
	if err != nil {
		writeError(w, r, err)
		return
	}
	branchID, err := queryInt32(r, "branch_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var n int
	if days != nil {
		n = int(*days)
	}
	entries, err := h.svc.Reports.DemandReport(r.Context(), a, n, branchID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	branchID, err := queryInt32(r, "branch_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	stats, err := h.svc.Reports.Dashboard(r.Context(), a, branchID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) StaffDashboard(w http.ResponseWriter, r *http.Request) {
	a, ok := actor(w, r)
	if !ok {
		return
	}
	stats, err := h.svc.Reports.StaffDashboard(r.Context(), a)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
