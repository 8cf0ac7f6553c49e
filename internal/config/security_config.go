// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
	SecurityAdmin                       // Access token with admin role required
)

// EndpointSecurityConfig maps "METHOD /path-template" routes to their required security level.
// Branch scoping for staff is enforced by the services, not here.
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth - Public
	"POST /api/v1/auth/login": SecurityPublic,
	"GET /api/v1/health":      SecurityPublic,

	// Branches
	"GET /api/v1/branches":         SecurityAccess,
	"GET /api/v1/branches/{id}":    SecurityAccess,
	"POST /api/v1/branches":        SecurityAdmin,
	"DELETE /api/v1/branches/{id}": SecurityAdmin,

	// Schemes
	"GET /api/v1/schemes":      SecurityAccess,
	"GET /api/v1/schemes/{id}": SecurityAccess,
	"POST /api/v1/schemes":     SecurityAdmin,
	"PUT /api/v1/schemes/{id}": SecurityAdmin,

	// Gold rates
	"GET /api/v1/gold-rates":         SecurityAccess,
	"GET /api/v1/gold-rates/current": SecurityAccess,
	"POST /api/v1/gold-rates":        SecurityAdmin,

	// Customers
	"GET /api/v1/customers":            SecurityAccess,
	"POST /api/v1/customers":           SecurityAccess,
	"GET /api/v1/customers/{id}":       SecurityAccess,
	"PUT /api/v1/customers/{id}":       SecurityAccess,
	"GET /api/v1/customers/{id}/loans": SecurityAccess,

	// Documents
	"POST /api/v1/documents":            SecurityAccess,
	"GET /api/v1/documents/{ref:.+}":    SecurityAccess,
	"DELETE /api/v1/documents/{ref:.+}": SecurityAdmin,

	// Loans, payments, auctions
	"GET /api/v1/loans":               SecurityAccess,
	"POST /api/v1/loans":              SecurityAccess,
	"GET /api/v1/loans/{id}":          SecurityAccess,
	"GET /api/v1/loans/{id}/payments": SecurityAccess,
	"POST /api/v1/payments":           SecurityAccess,
	"GET /api/v1/auctions":            SecurityAccess,
	"POST /api/v1/auctions/{loanId}":  SecurityAccess,

	// Vouchers
	"GET /api/v1/vouchers":         SecurityAccess,
	"POST /api/v1/vouchers":        SecurityAccess,
	"DELETE /api/v1/vouchers/{id}": SecurityAdmin,

	// Staff - Admin only
	"GET /api/v1/staff":         SecurityAdmin,
	"POST /api/v1/staff":        SecurityAdmin,
	"PUT /api/v1/staff/{id}":    SecurityAdmin,
	"DELETE /api/v1/staff/{id}": SecurityAdmin,

	// Reports
	"GET /api/v1/reports/day-book":        SecurityAccess,
	"GET /api/v1/reports/financials":      SecurityAccess,
	"GET /api/v1/reports/business":        SecurityAdmin,
	"GET /api/v1/reports/demand":          SecurityAccess,
	"GET /api/v1/reports/dashboard":       SecurityAccess,
	"GET /api/v1/reports/staff-dashboard": SecurityAccess,
}

// GetSecurityLevel returns the security level for a given route
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAdmin
}
