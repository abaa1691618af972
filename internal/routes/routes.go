package routes

const (
	// Health
	Health = "/health"

	// Auth & account
	AuthRegister     = "/api/auth/register"
	AuthLogin        = "/api/auth/login"
	AuthVerifyEmail  = "/api/auth/verify-email"
	AuthResendEmail  = "/api/auth/resend-email"
	UpdateUserInfo   = "/api/update-user-info"
	Setting          = "/api/setting"
	Business         = "/api/business"
	RentalNextNumber = "/api/rentals/next-number"

	// Business-scoped resources
	Properties     = "/api/{businessId}/properties"
	Property       = "/api/{businessId}/properties/{propertyId}"
	Tenants        = "/api/{businessId}/tenants"
	Tenant         = "/api/{businessId}/tenants/{tenantId}"
	Rentals        = "/api/{businessId}/rentals"
	RentalsAll     = "/api/{businessId}/rentals/all"
	RentalsExpired = "/api/{businessId}/rentals/expired-rental"
	Rental         = "/api/{businessId}/rentals/{rentalId}"

	// Public trigger for external schedulers
	UpdateRentalStatus = "/api/update-rental-status"
)
