package utils

import (
	"context"
	"fmt"
	"net/mail"
	"regexp"

	twilio "github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	lookupsv2 "github.com/twilio/twilio-go/rest/lookups/v2"
)

var e164Regex = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

// IsE164 reports basic E.164 compliance.
func IsE164(number string) bool { return e164Regex.MatchString(number) }

// IsValidEmailSyntax does RFC-5322-ish syntax only (no DNS).
func IsValidEmailSyntax(e string) bool {
	_, err := mail.ParseAddress(e)
	return err == nil
}

// ValidatePhoneNumber runs a Twilio Lookups v2 fetch when a client is given.
// Numbers that are not E.164 are passed through untouched: tenants often
// carry local Moroccan formats that Lookups cannot resolve.
func ValidatePhoneNumber(ctx context.Context, number string, tw *twilio.RestClient) (bool, error) {
	if tw == nil || !IsE164(number) {
		return true, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := tw.LookupsV2.FetchPhoneNumber(number, &lookupsv2.FetchPhoneNumberParams{})
	if err == nil {
		return true, nil
	}
	if restErr, ok := err.(*twilioclient.TwilioRestError); ok {
		if restErr.Status == 404 {
			return false, nil
		}
		return false, fmt.Errorf("twilio lookup failed: %d %s", restErr.Status, restErr.Error())
	}
	return false, err
}
