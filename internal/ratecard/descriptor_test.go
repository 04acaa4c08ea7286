package ratecard

import (
	"testing"
	"time"

	"github.com/adspaceng/ratecard-wallet/internal/pkpass"
)

var testIssuer = Issuer{
	Description:        "Professional Rate Card",
	OrganizationName:   "RateCard",
	PassTypeIdentifier: "pass.com.adspaceng.ratecardapp",
	TeamIdentifier:     "Q3YGQ4925G",
	BackgroundColor:    "rgb(24, 76, 116)",
	ForegroundColor:    "rgb(255, 255, 255)",
	WebServiceURL:      "https://ratecard.app",
	ProfileURLBase:     "https://ratecard.app/u/",
}

var testIssuedAt = time.Unix(1700000000, 0).UTC()

const testToken = "0123456789abcdef0123456789abcdef"

func TestBuildDescriptor(t *testing.T) {
	req := ParseRequest([]byte(`{"profileId":"p1","email":"a@b.c","name":"Ada","profile":{"username":"ada","industry":"Engineering","bio":"Engines."}}`))

	p := BuildDescriptor(req, testIssuer, testIssuedAt, testToken)

	if err := p.Validate(); err != nil {
		t.Fatalf("descriptor is not valid: %v", err)
	}

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"description", p.Description, "Professional Rate Card"},
		{"organizationName", p.OrganizationName, "RateCard"},
		{"passTypeIdentifier", p.PassTypeIdentifier, "pass.com.adspaceng.ratecardapp"},
		{"teamIdentifier", p.TeamIdentifier, "Q3YGQ4925G"},
		{"serialNumber", p.SerialNumber, "ratecard-p1-1700000000"},
		{"webServiceURL", p.WebServiceURL, "https://ratecard.app"},
		{"authenticationToken", p.AuthenticationToken, testToken},
		{"relevantDate", p.RelevantDate, "2023-11-14T22:13:20+00:00"},
		{"backgroundColor", p.BackgroundColor, "rgb(24, 76, 116)"},
		{"foregroundColor", p.ForegroundColor, "rgb(255, 255, 255)"},
		{"barcode format", p.Barcode.Format, pkpass.BarcodeFormatQR},
		{"barcode message", p.Barcode.Message, "https://ratecard.app/u/ada"},
		{"barcode encoding", p.Barcode.MessageEncoding, "iso-8859-1"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}

	if p.FormatVersion != 1 {
		t.Errorf("formatVersion = %d, want 1", p.FormatVersion)
	}

	assertFields(t, "primaryFields", p.Generic.PrimaryFields, []pkpass.Field{
		{Key: "name", Label: "Professional", Value: "Ada"},
	})
	assertFields(t, "secondaryFields", p.Generic.SecondaryFields, []pkpass.Field{
		{Key: "industry", Label: "Industry", Value: "Engineering"},
		{Key: "username", Label: "Username", Value: "@ada"},
	})
	assertFields(t, "auxiliaryFields", p.Generic.AuxiliaryFields, []pkpass.Field{
		{Key: "contact", Label: "Contact", Value: "Scan QR Code"},
	})
	assertFields(t, "backFields", p.Generic.BackFields, []pkpass.Field{
		{Key: "bio", Label: "About", Value: "Engines."},
		{Key: "instructions", Label: "Instructions", Value: "Scan the QR code to view detailed pricing and contact information."},
	})
}

func TestBuildDescriptor_Defaults(t *testing.T) {
	req := ParseRequest([]byte(`{"profileId":"p1","email":"a@b.c","name":"Ada"}`))

	p := BuildDescriptor(req, testIssuer, testIssuedAt, testToken)

	if p.Barcode.Message != "https://ratecard.app/u/demo" {
		t.Errorf("barcode message = %q", p.Barcode.Message)
	}
	assertFields(t, "primaryFields", p.Generic.PrimaryFields, []pkpass.Field{
		{Key: "name", Label: "Professional", Value: "Ada"},
	})
	assertFields(t, "secondaryFields", p.Generic.SecondaryFields, []pkpass.Field{
		{Key: "industry", Label: "Industry", Value: "Professional Services"},
		{Key: "username", Label: "Username", Value: "@demo"},
	})
	if p.Generic.BackFields[0].Value != DefaultBio {
		t.Errorf("bio = %q, want default", p.Generic.BackFields[0].Value)
	}
}

func TestBuildDescriptor_ProfileName(t *testing.T) {
	req := ParseRequest([]byte(`{"profileId":"p1","email":"a@b.c","name":"Ada","profile":{"name":"Countess of Lovelace"}}`))

	p := BuildDescriptor(req, testIssuer, testIssuedAt, testToken)

	if got := p.Generic.PrimaryFields[0].Value; got != "Countess of Lovelace" {
		t.Errorf("primary name = %q", got)
	}
}

func TestRelevantDate_Offset(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"utc", time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), "2024-03-01T09:30:00+00:00"},
		{"positive offset", time.Date(2024, 3, 1, 9, 30, 0, 0, time.FixedZone("WAT", 3600)), "2024-03-01T09:30:00+01:00"},
		{"negative offset", time.Date(2024, 3, 1, 9, 30, 0, 0, time.FixedZone("EST", -5*3600)), "2024-03-01T09:30:00-05:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.at.Format(RelevantDateLayout); got != tt.want {
				t.Errorf("relevantDate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPassFilename(t *testing.T) {
	if got := PassFilename("p1", testIssuedAt); got != "ratecard-p1-1700000000.pkpass" {
		t.Errorf("PassFilename() = %q", got)
	}
}

func assertFields(t *testing.T, group string, got, want []pkpass.Field) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s has %d fields, want %d", group, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s[%d] = %+v, want %+v", group, i, got[i], want[i])
		}
	}
}
