package ratecard

import (
	"fmt"
	"strconv"
	"time"

	"github.com/adspaceng/ratecard-wallet/internal/pkpass"
)

// RelevantDateLayout is ISO 8601 with a numeric UTC offset (never "Z")
const RelevantDateLayout = "2006-01-02T15:04:05-07:00"

// barcode message encoding required by Wallet for QR codes
const barcodeMessageEncoding = "iso-8859-1"

// fixed field text
const (
	contactValue      = "Scan QR Code"
	instructionsValue = "Scan the QR code to view detailed pricing and contact information."
)

// Issuer holds the values that are the same on every pass
type Issuer struct {
	Description        string
	OrganizationName   string
	PassTypeIdentifier string
	TeamIdentifier     string
	BackgroundColor    string
	ForegroundColor    string
	WebServiceURL      string

	// ProfileURLBase is prefixed to the username to form the barcode message
	ProfileURLBase string
}

// SerialNumber returns the serial number of a pass issued to profileID at issuedAt
func SerialNumber(profileID string, issuedAt time.Time) string {
	return fmt.Sprintf("ratecard-%s-%s", profileID, strconv.FormatInt(issuedAt.Unix(), 10))
}

// PassFilename returns the download filename of a pass issued to profileID at issuedAt
func PassFilename(profileID string, issuedAt time.Time) string {
	return SerialNumber(profileID, issuedAt) + ".pkpass"
}

// BuildDescriptor creates the pass.json descriptor for a validated request.
func BuildDescriptor(req PassRequest, issuer Issuer, issuedAt time.Time, authToken string) *pkpass.Pass {
	username := req.Profile.UsernameOrDefault()

	return &pkpass.Pass{
		Description:         issuer.Description,
		FormatVersion:       pkpass.FormatVersion,
		OrganizationName:    issuer.OrganizationName,
		PassTypeIdentifier:  issuer.PassTypeIdentifier,
		SerialNumber:        SerialNumber(req.ProfileID, issuedAt),
		TeamIdentifier:      issuer.TeamIdentifier,
		WebServiceURL:       issuer.WebServiceURL,
		AuthenticationToken: authToken,
		RelevantDate:        issuedAt.Format(RelevantDateLayout),
		BackgroundColor:     issuer.BackgroundColor,
		ForegroundColor:     issuer.ForegroundColor,
		Barcode: &pkpass.Barcode{
			Format:          pkpass.BarcodeFormatQR,
			Message:         issuer.ProfileURLBase + username,
			MessageEncoding: barcodeMessageEncoding,
		},
		Generic: &pkpass.Fields{
			PrimaryFields: []pkpass.Field{
				{Key: "name", Label: "Professional", Value: req.Profile.NameOr(req.Name)},
			},
			SecondaryFields: []pkpass.Field{
				{Key: "industry", Label: "Industry", Value: req.Profile.IndustryOrDefault()},
				{Key: "username", Label: "Username", Value: "@" + username},
			},
			AuxiliaryFields: []pkpass.Field{
				{Key: "contact", Label: "Contact", Value: contactValue},
			},
			BackFields: []pkpass.Field{
				{Key: "bio", Label: "About", Value: req.Profile.BioOrDefault()},
				{Key: "instructions", Label: "Instructions", Value: instructionsValue},
			},
		},
	}
}
