package app

import (
	"crypto/rsa"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/AbdellahHatouchi/property-management/internal/config"
	"github.com/AbdellahHatouchi/property-management/internal/controllers"
	"github.com/AbdellahHatouchi/property-management/internal/routes"
	"github.com/AbdellahHatouchi/property-management/pkg/middleware"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

type Controllers struct {
	Health   *controllers.HealthController
	Auth     *controllers.AuthController
	User     *controllers.UserController
	Business *controllers.BusinessController
	Property *controllers.PropertyController
	Tenant   *controllers.TenantController
	Rental   *controllers.RentalController
	Sweep    *controllers.SweepController
}

func NewRouter(pub *rsa.PublicKey, c Controllers) *mux.Router {
	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, c.Health.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.AuthRegister, c.Auth.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthLogin, c.Auth.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.AuthVerifyEmail, c.Auth.VerifyEmailHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.UpdateRentalStatus, c.Sweep.UpdateRentalStatusHandler).Methods(http.MethodGet)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(pub))

	secured.HandleFunc(routes.AuthResendEmail, c.Auth.ResendEmailHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.UpdateUserInfo, c.User.UpdateInfoHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.Setting, c.User.SettingHandler).Methods(http.MethodPut)

	secured.HandleFunc(routes.Business, c.Business.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Business, c.Business.CreateHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.Properties, c.Property.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Properties, c.Property.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Property, c.Property.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Property, c.Property.UpdateHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.Property, c.Property.DeleteHandler).Methods(http.MethodDelete)

	secured.HandleFunc(routes.Tenants, c.Tenant.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Tenants, c.Tenant.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Tenant, c.Tenant.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Tenant, c.Tenant.UpdateHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.Tenant, c.Tenant.DeleteHandler).Methods(http.MethodDelete)

	// Fixed segments must be registered before {rentalId}.
	secured.HandleFunc(routes.RentalNextNumber, c.Rental.NextNumberHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.RentalsAll, c.Rental.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.RentalsExpired, c.Rental.ListExpiredHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Rentals, c.Rental.ListExpiredHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Rentals, c.Rental.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Rental, c.Rental.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Rental, c.Rental.SettleHandler).Methods(http.MethodPut)
	secured.HandleFunc(routes.Rental, c.Rental.DeleteHandler).Methods(http.MethodDelete)

	return router
}

// WithCORS wraps h with the origin policy for cfg. Localhost origins are
// allowed unless the high-security flag is on.
func WithCORS(cfg *config.Config, h http.Handler) http.Handler {
	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})
	return co.Handler(h)
}
