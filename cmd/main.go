package main

import (
	"context"
	"net/http"

	cron "github.com/robfig/cron/v3"
	twilio "github.com/twilio/twilio-go"

	"github.com/AbdellahHatouchi/property-management/internal/app"
	"github.com/AbdellahHatouchi/property-management/internal/config"
	"github.com/AbdellahHatouchi/property-management/internal/controllers"
	"github.com/AbdellahHatouchi/property-management/internal/services"
	"github.com/AbdellahHatouchi/property-management/pkg/repositories"
	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

func main() {
	utils.InitLogger(config.DefaultAppName)
	cfg := config.LoadConfig()
	defer cfg.Close()
	utils.SetLogLevel(cfg.LogLevel)

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize property-management:", err)
	}
	defer application.Close()

	repos := repositories.NewRepos(application.DB)
	store := repositories.NewStore(application.DB)

	var twClient *twilio.RestClient
	if cfg.LDFlag_ValidatePhoneWithTwilio && cfg.TwilioAccountSID != "" {
		twClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	}
	mailer := services.NewMailer(cfg)

	availability := services.NewAvailabilityService()
	verificationService := services.NewVerificationService(cfg, repos.Users, repos.Tokens, mailer)
	authService := services.NewAuthService(cfg, repos.Users, verificationService)
	userService := services.NewUserService(repos.Users)
	businessService := services.NewBusinessService(repos.Businesses)
	propertyService := services.NewPropertyService(repos, store, availability)
	tenantService := services.NewTenantService(repos, store, availability, twClient)
	rentalService := services.NewRentalService(repos, store, availability)
	sweepService := services.NewExpirySweepService(cfg, store, availability, mailer)

	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedAllTestData(
			context.Background(),
			repos,
			propertyService,
			tenantService,
			rentalService,
		); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed test data")
		} else {
			utils.Logger.Info("Seeded test data successfully")
		}
	}

	router := app.NewRouter(cfg.RSAPublicKey, app.Controllers{
		Health:   controllers.NewHealthController(application.DB),
		Auth:     controllers.NewAuthController(authService, verificationService),
		User:     controllers.NewUserController(userService),
		Business: controllers.NewBusinessController(businessService),
		Property: controllers.NewPropertyController(propertyService),
		Tenant:   controllers.NewTenantController(tenantService),
		Rental:   controllers.NewRentalController(rentalService),
		Sweep:    controllers.NewSweepController(sweepService),
	})

	c := cron.New()
	if cfg.SweepCron != "" {
		_, sweepErr := c.AddFunc(cfg.SweepCron, func() {
			res, e := sweepService.Sweep(context.Background())
			if e != nil {
				utils.Logger.WithError(e).Error("Scheduled expiry sweep failed")
				return
			}
			utils.Logger.Infof(
				"Scheduled expiry sweep: expired=%d released=%d sent=%d failed=%d",
				res.Expired, res.Released, res.Sent, res.Failed,
			)
		})
		if sweepErr != nil {
			utils.Logger.WithError(sweepErr).Fatal("Failed to schedule expiry sweep cron")
		}
	} else {
		utils.Logger.Info("SWEEP_CRON empty; expiry sweep runs only via the HTTP trigger")
	}

	_, cleanupErr := c.AddFunc("@hourly", func() {
		if e := repos.Tokens.CleanupExpired(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Verification token cleanup failed")
		}
	})
	if cleanupErr != nil {
		utils.Logger.WithError(cleanupErr).Fatal("Failed to schedule token cleanup cron")
	}
	c.Start()
	defer c.Stop()

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, app.WithCORS(cfg, router)); err != nil {
		utils.Logger.Fatal("property-management failed to start:", err)
	}
}
