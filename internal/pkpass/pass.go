package pkpass

import (
	"fmt"
	"regexp"
)

const (
	// FormatVersion is the only pass.json format version defined by Apple
	FormatVersion = 1

	BarcodeFormatQR      = "PKBarcodeFormatQR"
	BarcodeFormatPDF417  = "PKBarcodeFormatPDF417"
	BarcodeFormatAztec   = "PKBarcodeFormatAztec"
	BarcodeFormatCode128 = "PKBarcodeFormatCode128"

	// MinAuthenticationTokenLength is the shortest authenticationToken accepted by Wallet
	MinAuthenticationTokenLength = 16
)

var colorPattern = regexp.MustCompile(`^rgb\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*\)$`)

// Pass is the pass.json descriptor.
// Only the generic pass style is supported.
type Pass struct {
	Description         string   `json:"description"`
	FormatVersion       int      `json:"formatVersion"`
	OrganizationName    string   `json:"organizationName"`
	PassTypeIdentifier  string   `json:"passTypeIdentifier"`
	SerialNumber        string   `json:"serialNumber"`
	TeamIdentifier      string   `json:"teamIdentifier"`
	WebServiceURL       string   `json:"webServiceURL,omitempty"`
	AuthenticationToken string   `json:"authenticationToken,omitempty"`
	RelevantDate        string   `json:"relevantDate,omitempty"`
	BackgroundColor     string   `json:"backgroundColor,omitempty"`
	ForegroundColor     string   `json:"foregroundColor,omitempty"`
	LabelColor          string   `json:"labelColor,omitempty"`
	LogoText            string   `json:"logoText,omitempty"`
	Barcode             *Barcode `json:"barcode,omitempty"`
	Generic             *Fields  `json:"generic,omitempty"`
}

// Barcode is the pass barcode dictionary
type Barcode struct {
	Format          string `json:"format"`
	Message         string `json:"message"`
	MessageEncoding string `json:"messageEncoding"`
	AltText         string `json:"altText,omitempty"`
}

// Fields holds the field groups of a pass style
type Fields struct {
	HeaderFields    []Field `json:"headerFields,omitempty"`
	PrimaryFields   []Field `json:"primaryFields"`
	SecondaryFields []Field `json:"secondaryFields"`
	AuxiliaryFields []Field `json:"auxiliaryFields"`
	BackFields      []Field `json:"backFields"`
}

// Field is a single key/label/value entry displayed on the pass
type Field struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
}

// Validate checks the fields Wallet requires before a pass can be signed.
func (p *Pass) Validate() error {
	if p == nil {
		return NewValidationError("pass descriptor is required")
	}

	required := []struct {
		name  string
		value string
	}{
		{"description", p.Description},
		{"organizationName", p.OrganizationName},
		{"passTypeIdentifier", p.PassTypeIdentifier},
		{"serialNumber", p.SerialNumber},
		{"teamIdentifier", p.TeamIdentifier},
	}
	for _, r := range required {
		if r.value == "" {
			return NewValidationError(fmt.Sprintf("pass %s is required", r.name))
		}
	}

	if p.FormatVersion != FormatVersion {
		return NewValidationError(fmt.Sprintf("unsupported formatVersion %d", p.FormatVersion))
	}

	if p.AuthenticationToken != "" && len(p.AuthenticationToken) < MinAuthenticationTokenLength {
		return NewValidationError(fmt.Sprintf("authenticationToken must be at least %d characters", MinAuthenticationTokenLength))
	}

	if p.AuthenticationToken != "" && p.WebServiceURL == "" {
		return NewValidationError("authenticationToken requires webServiceURL")
	}

	for name, c := range map[string]string{
		"backgroundColor": p.BackgroundColor,
		"foregroundColor": p.ForegroundColor,
		"labelColor":      p.LabelColor,
	} {
		if c != "" && !colorPattern.MatchString(c) {
			return NewValidationError(fmt.Sprintf("%s %q is not an rgb() triple", name, c))
		}
	}

	if p.Barcode != nil {
		switch p.Barcode.Format {
		case BarcodeFormatQR, BarcodeFormatPDF417, BarcodeFormatAztec, BarcodeFormatCode128:
		default:
			return NewValidationError(fmt.Sprintf("unsupported barcode format %q", p.Barcode.Format))
		}
		if p.Barcode.Message == "" || p.Barcode.MessageEncoding == "" {
			return NewValidationError("barcode message and messageEncoding are required")
		}
	}

	return nil
}
