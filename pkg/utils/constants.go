package utils

const (
	OrganizationName                      = "Rent Master"
	SupportEmail                          = "rent-master.support@gmail.com"
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"
)
