package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"pawnledger-backend/internal/security"
	"pawnledger-backend/internal/service"
)

// Services bundles everything the HTTP surface calls into.
type Services struct {
	Auth      service.AuthService
	Branches  service.BranchService
	Schemes   service.SchemeService
	Rates     service.RateService
	Customers service.CustomerService
	Documents service.DocumentService
	Pledges   service.PledgeService
	Payments  service.PaymentService
	Lifecycle service.LifecycleService
	Vouchers  service.VoucherService
	Staff     service.StaffService
	Reports   service.ReportService
}

// Handler serves the JSON API. Dates in query strings are read in loc.
type Handler struct {
	svc Services
	loc *time.Location
}

func NewHandler(svc Services, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{svc: svc, loc: loc}
}

// NewRouter registers every /api/v1 route behind the auth middleware.
func NewRouter(h *Handler, tokens security.TokenManager) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(NewAuthMiddleware(tokens).Handler)

	api.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	api.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)

	api.HandleFunc("/branches", h.ListBranches).Methods(http.MethodGet)
	api.HandleFunc("/branches", h.CreateBranch).Methods(http.MethodPost)
	api.HandleFunc("/branches/{id}", h.GetBranch).Methods(http.MethodGet)
	api.HandleFunc("/branches/{id}", h.DeleteBranch).Methods(http.MethodDelete)

	api.HandleFunc("/schemes", h.ListSchemes).Methods(http.MethodGet)
	api.HandleFunc("/schemes", h.CreateScheme).Methods(http.MethodPost)
	api.HandleFunc("/schemes/{id}", h.GetScheme).Methods(http.MethodGet)
	api.HandleFunc("/schemes/{id}", h.UpdateScheme).Methods(http.MethodPut)

	api.HandleFunc("/gold-rates", h.ListRates).Methods(http.MethodGet)
	api.HandleFunc("/gold-rates", h.SetRate).Methods(http.MethodPost)
	api.HandleFunc("/gold-rates/current", h.CurrentRate).Methods(http.MethodGet)

	api.HandleFunc("/customers", h.SearchCustomers).Methods(http.MethodGet)
	api.HandleFunc("/customers", h.CreateCustomer).Methods(http.MethodPost)
	api.HandleFunc("/customers/{id}", h.GetCustomer).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}", h.UpdateCustomer).Methods(http.MethodPut)
	api.HandleFunc("/customers/{id}/loans", h.CustomerLoans).Methods(http.MethodGet)

	api.HandleFunc("/documents", h.UploadDocument).Methods(http.MethodPost)
	api.HandleFunc("/documents/{ref:.+}", h.DownloadDocument).Methods(http.MethodGet)
	api.HandleFunc("/documents/{ref:.+}", h.DeleteDocument).Methods(http.MethodDelete)

	api.HandleFunc("/loans", h.ListLoans).Methods(http.MethodGet)
	api.HandleFunc("/loans", h.IssuePledge).Methods(http.MethodPost)
	api.HandleFunc("/loans/{id}", h.GetLoan).Methods(http.MethodGet)
	api.HandleFunc("/loans/{id}/payments", h.ListPayments).Methods(http.MethodGet)
	api.HandleFunc("/payments", h.RecordPayment).Methods(http.MethodPost)
	api.HandleFunc("/auctions", h.ListAuctionEligible).Methods(http.MethodGet)
	api.HandleFunc("/auctions/{loanId}", h.AuctionLoan).Methods(http.MethodPost)

	api.HandleFunc("/vouchers", h.ListVouchers).Methods(http.MethodGet)
	api.HandleFunc("/vouchers", h.AddVoucher).Methods(http.MethodPost)
	api.HandleFunc("/vouchers/{id}", h.DeleteVoucher).Methods(http.MethodDelete)

	api.HandleFunc("/staff", h.ListStaff).Methods(http.MethodGet)
	api.HandleFunc("/staff", h.CreateStaff).Methods(http.MethodPost)
	api.HandleFunc("/staff/{id}", h.UpdateStaff).Methods(http.MethodPut)
	api.HandleFunc("/staff/{id}", h.DeleteStaff).Methods(http.MethodDelete)

	api.HandleFunc("/reports/day-book", h.DayBook).Methods(http.MethodGet)
	api.HandleFunc("/reports/financials", h.FinancialStats).Methods(http.MethodGet)
	api.HandleFunc("/reports/business", h.BusinessReport).Methods(http.MethodGet)
	api.HandleFunc("/reports/demand", h.DemandReport).Methods(http.MethodGet)
	api.HandleFunc("/reports/dashboard", h.Dashboard).Methods(http.MethodGet)
	api.HandleFunc("/reports/staff-dashboard", h.StaffDashboard).Methods(http.MethodGet)

	return router
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
