package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AbdellahHatouchi/property-management/internal/constants"
	internal_utils "github.com/AbdellahHatouchi/property-management/internal/utils"
	"github.com/AbdellahHatouchi/property-management/pkg/models"
)

// RentalNotice is the view of an expired rental rendered into emails.
type RentalNotice struct {
	ID           uuid.UUID
	BusinessID   uuid.UUID
	RentalNumber string
	Unit         string
	Settled      bool
	DatePaid     string
	StartDate    string
	EndDate      string
	TotalAmount  string
}

func NewRentalNotice(r *models.Rental) RentalNotice {
	datePaid := constants.DatePaidPlaceholder
	if r.Settled && r.DatePaid != nil {
		datePaid = internal_utils.FormatLongDate(*r.DatePaid)
	}
	return RentalNotice{
		ID:           r.ID,
		BusinessID:   r.BusinessID,
		RentalNumber: r.RentalNumber,
		Unit:         r.Unit,
		Settled:      r.Settled,
		DatePaid:     datePaid,
		StartDate:    internal_utils.FormatLongDate(r.StartDate),
		EndDate:      internal_utils.FormatLongDate(r.EndDate),
		TotalAmount:  internal_utils.FormatMAD(r.TotalAmount),
	}
}

func (n RentalNotice) paymentStatus() string {
	if n.Settled {
		return "Paid"
	}
	return "Unpaid"
}

// Message renders the notice for one recipient.
func (n RentalNotice) Message(orgName, toName, toEmail string) EmailMessage {
	if toName == "" {
		toName = constants.FallbackRecipientName
	}
	plain := fmt.Sprintf(
		"Dear %s, rental %s (unit %s, %s to %s) has expired. Total: %s. Status: %s. Date paid: %s.",
		toName, n.RentalNumber, n.Unit, n.StartDate, n.EndDate, n.TotalAmount, n.paymentStatus(), n.DatePaid,
	)
	html := fmt.Sprintf(
		expiredRentalEmailHTML,
		constants.ExpiredRentalSubject,
		toName,
		n.RentalNumber,
		n.Unit,
		n.StartDate,
		n.EndDate,
		n.TotalAmount,
		n.paymentStatus(),
		n.DatePaid,
		n.ID,
		n.BusinessID,
		time.Now().Year(),
		orgName,
	)
	return EmailMessage{
		ToName:    toName,
		ToEmail:   toEmail,
		Subject:   constants.ExpiredRentalSubject,
		PlainText: plain,
		HTML:      html,
	}
}

// expiredRentalMessages builds the tenant and owner copies.
func expiredRentalMessages(orgName string, r *models.ExpiredRental) []EmailMessage {
	notice := NewRentalNotice(&r.Rental)
	return []EmailMessage{
		notice.Message(orgName, r.TenantName, r.TenantEmail),
		notice.Message(orgName, r.OwnerName, r.OwnerEmail),
	}
}

func verificationMessage(orgName, email, otp string) EmailMessage {
	minutes := int(constants.OTPTTL / time.Minute)
	return EmailMessage{
		ToEmail:   email,
		Subject:   constants.VerificationEmailSubject,
		PlainText: fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", otp, minutes),
		HTML:      fmt.Sprintf(verificationEmailHTML, constants.VerificationEmailSubject, minutes, otp, time.Now().Year(), orgName),
	}
}

