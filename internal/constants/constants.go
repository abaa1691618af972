package constants

import "time"

// Rental numbering
const (
	RentalNumberPrefix = "RNTL_"
	RentalNumberBase   = 4000
)

// Email verification
const (
	OTPLength = 6
	OTPTTL    = 15 * time.Minute
)

// Pagination
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Notifications
const (
	ExpiredRentalSubject     = "Expired Rental Property Notification"
	VerificationEmailSubject = "Verification Email"
	DatePaidPlaceholder      = "-----"
	FallbackRecipientName    = "Valued Customer"
)

const (
	// CINPattern is the Moroccan national identity card format required of
	// non-tourist tenants.
	CINPattern = `^[A-Za-z]{2}\d{1,8}$`

	MinNameLength     = 3
	MinPasswordLength = 6
)
