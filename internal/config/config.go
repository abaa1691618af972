package config

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/launchdarkly/go-sdk-common/v3/ldcontext"
	ld "github.com/launchdarkly/go-server-sdk/v7"

	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

type Config struct {
	OrganizationName string
	AppName          string
	AppPort          string
	AppUrl           string
	Env              string
	LogLevel         string

	// Database
	DBUrl         string
	RunMigrations bool

	// External services
	TwilioAccountSID string
	TwilioAuthToken  string
	SendGridAPIKey   string

	// Auth
	RSAPrivateKey  *rsa.PrivateKey
	RSAPublicKey   *rsa.PublicKey
	AccessTokenTTL time.Duration

	// Expiry sweep
	SweepCron               string
	SweepMaxConcurrentSends int

	// LaunchDarkly flags (env fallbacks when no SDK key is configured)
	LDFlag_SendgridFromEmail       string
	LDFlag_SendgridSandboxMode     bool
	LDFlag_SeedDbWithTestData      bool
	LDFlag_CORSHighSecurity        bool
	LDFlag_ValidatePhoneWithTwilio bool
}

const (
	DefaultAppName      = "property-management"
	LDConnectionTimeout = 5 * time.Second
	LDServerContextKind = "service"
)

// envSpec is the raw environment, filled by envconfig.
type envSpec struct {
	AppName  string `envconfig:"APP_NAME" default:"property-management"`
	AppPort  string `envconfig:"APP_PORT" default:"8080"`
	AppUrl   string `envconfig:"APP_URL" default:"http://localhost:3000"`
	Env      string `envconfig:"ENV" default:"dev"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DBUrl         string `envconfig:"DATABASE_URL" required:"true"`
	RunMigrations bool   `envconfig:"RUN_MIGRATIONS" default:"true"`

	RSAPrivateKeyBase64 string        `envconfig:"RSA_PRIVATE_KEY_BASE64"`
	RSAPublicKeyBase64  string        `envconfig:"RSA_PUBLIC_KEY_BASE64"`
	AccessTokenTTL      time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"24h"`

	SendGridAPIKey   string `envconfig:"SENDGRID_API_KEY"`
	TwilioAccountSID string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `envconfig:"TWILIO_AUTH_TOKEN"`

	SweepCron               string `envconfig:"SWEEP_CRON" default:"@daily"`
	SweepMaxConcurrentSends int    `envconfig:"SWEEP_MAX_CONCURRENT_SENDS" default:"8"`

	LDSDKKey     string `envconfig:"LD_SDK_KEY"`
	LDContextKey string `envconfig:"LD_CONTEXT_KEY" default:"property-management"`

	SendgridFromEmail       string `envconfig:"SENDGRID_FROM_EMAIL" default:"no-reply@rent-master.ma"`
	SendgridSandboxMode     bool   `envconfig:"SENDGRID_SANDBOX_MODE" default:"false"`
	SeedDbWithTestData      bool   `envconfig:"SEED_DB_WITH_TEST_DATA" default:"false"`
	CORSHighSecurity        bool   `envconfig:"CORS_HIGH_SECURITY" default:"false"`
	ValidatePhoneWithTwilio bool   `envconfig:"VALIDATE_PHONE_WITH_TWILIO" default:"false"`
}

// LoadConfig reads .env (if present), the process environment and the
// LaunchDarkly flags. Any unrecoverable problem is fatal.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		utils.Logger.WithError(err).Warn("No .env file loaded, using process environment only")
	}

	var spec envSpec
	if err := envconfig.Process("", &spec); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to read environment")
	}

	cfg, err := fromSpec(spec)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Invalid configuration")
	}

	if spec.LDSDKKey != "" {
		if err := cfg.loadFlags(spec.LDSDKKey, spec.LDContextKey); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to load LaunchDarkly flags")
		}
	} else {
		utils.Logger.Info("LD_SDK_KEY not set, using environment defaults for feature flags")
	}

	utils.Logger.Infof("Loaded config for app: %s (env=%s)", cfg.AppName, cfg.Env)
	return cfg
}

func fromSpec(spec envSpec) (*Config, error) {
	cfg := &Config{
		OrganizationName:               utils.OrganizationName,
		AppName:                        spec.AppName,
		AppPort:                        spec.AppPort,
		AppUrl:                         spec.AppUrl,
		Env:                            spec.Env,
		LogLevel:                       spec.LogLevel,
		DBUrl:                          spec.DBUrl,
		RunMigrations:                  spec.RunMigrations,
		TwilioAccountSID:               spec.TwilioAccountSID,
		TwilioAuthToken:                spec.TwilioAuthToken,
		SendGridAPIKey:                 spec.SendGridAPIKey,
		AccessTokenTTL:                 spec.AccessTokenTTL,
		SweepCron:                      strings.TrimSpace(spec.SweepCron),
		SweepMaxConcurrentSends:        spec.SweepMaxConcurrentSends,
		LDFlag_SendgridFromEmail:       spec.SendgridFromEmail,
		LDFlag_SendgridSandboxMode:     spec.SendgridSandboxMode,
		LDFlag_SeedDbWithTestData:      spec.SeedDbWithTestData,
		LDFlag_CORSHighSecurity:        spec.CORSHighSecurity,
		LDFlag_ValidatePhoneWithTwilio: spec.ValidatePhoneWithTwilio,
	}
	if cfg.SweepMaxConcurrentSends <= 0 {
		cfg.SweepMaxConcurrentSends = 1
	}

	priv, pub, err := parseKeys(spec.RSAPrivateKeyBase64, spec.RSAPublicKeyBase64)
	if err != nil {
		return nil, err
	}
	if priv == nil {
		if spec.Env != "dev" {
			return nil, errors.New("RSA_PRIVATE_KEY_BASE64 / RSA_PUBLIC_KEY_BASE64 are required outside dev")
		}
		utils.Logger.Warn("No RSA keys configured, generating an ephemeral dev key pair")
		priv, err = rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			return nil, fmt.Errorf("generate dev key: %w", err)
		}
		pub = &priv.PublicKey
	}
	cfg.RSAPrivateKey = priv
	cfg.RSAPublicKey = pub

	return cfg, nil
}

func parseKeys(privB64, pubB64 string) (*rsa.PrivateKey, *rsa.PublicKey, error) {
	if privB64 == "" && pubB64 == "" {
		return nil, nil, nil
	}
	if privB64 == "" || pubB64 == "" {
		return nil, nil, errors.New("both RSA_PRIVATE_KEY_BASE64 and RSA_PUBLIC_KEY_BASE64 must be set")
	}

	privPEM, err := base64.StdEncoding.DecodeString(privB64)
	if err != nil {
		return nil, nil, fmt.Errorf("decode private key: %w", err)
	}
	privKey, err := jwt.ParseRSAPrivateKeyFromPEM(privPEM)
	if err != nil {
		return nil, nil, fmt.Errorf("parse private key: %w", err)
	}

	pubPEM, err := base64.StdEncoding.DecodeString(pubB64)
	if err != nil {
		return nil, nil, fmt.Errorf("decode public key: %w", err)
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		return nil, nil, fmt.Errorf("parse public key: %w", err)
	}
	return privKey, pubKey, nil
}

func (c *Config) loadFlags(sdkKey, contextKey string) error {
	ldClient, err := ld.MakeClient(sdkKey, LDConnectionTimeout)
	if err != nil {
		return fmt.Errorf("create LaunchDarkly client: %w", err)
	}
	defer ldClient.Close()
	if !ldClient.Initialized() {
		return errors.New("LaunchDarkly client failed to initialize")
	}

	ctx := ldcontext.NewWithKind(ldcontext.Kind(LDServerContextKind), contextKey)

	sgFrom, err := ldClient.StringVariation("sendgrid_from_email", ctx, c.LDFlag_SendgridFromEmail)
	if err != nil {
		return fmt.Errorf("sendgrid_from_email: %w", err)
	}
	if sgFrom != "" {
		c.LDFlag_SendgridFromEmail = sgFrom
	}

	if c.LDFlag_SendgridSandboxMode, err = ldClient.BoolVariation("sendgrid_sandbox_mode", ctx, c.LDFlag_SendgridSandboxMode); err != nil {
		return fmt.Errorf("sendgrid_sandbox_mode: %w", err)
	}
	if c.LDFlag_SeedDbWithTestData, err = ldClient.BoolVariation("seed_db_with_test_data", ctx, c.LDFlag_SeedDbWithTestData); err != nil {
		return fmt.Errorf("seed_db_with_test_data: %w", err)
	}
	if c.LDFlag_CORSHighSecurity, err = ldClient.BoolVariation("cors_high_security", ctx, c.LDFlag_CORSHighSecurity); err != nil {
		return fmt.Errorf("cors_high_security: %w", err)
	}
	if c.LDFlag_ValidatePhoneWithTwilio, err = ldClient.BoolVariation("validate_phone_with_twilio", ctx, c.LDFlag_ValidatePhoneWithTwilio); err != nil {
		return fmt.Errorf("validate_phone_with_twilio: %w", err)
	}

	utils.Logger.Debugf(
		"flags: sendgrid_from_email=%s sendgrid_sandbox_mode=%t seed_db_with_test_data=%t cors_high_security=%t validate_phone_with_twilio=%t",
		c.LDFlag_SendgridFromEmail, c.LDFlag_SendgridSandboxMode, c.LDFlag_SeedDbWithTestData,
		c.LDFlag_CORSHighSecurity, c.LDFlag_ValidatePhoneWithTwilio,
	)
	return nil
}

func (c *Config) Close() {}
