package ratecard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMissingFields is returned when profileId, email or name is missing
var ErrMissingFields = errors.New("missing required fields")

var validate = validator.New(validator.WithRequiredStructEnabled())

// PassRequest is a validated pass generation request
type PassRequest struct {
	ProfileID string `validate:"required"`

	// Email is required but not otherwise used or checked
	Email string `validate:"required"`

	Name    string `validate:"required"`
	Profile ProfileOverrides
}

// ParseRequest decodes a request body.
//
// Parsing never fails: a body that is not a JSON object is treated as an empty object, so that
// it is reported by Validate as missing fields. Field values are taken from JSON strings and
// numbers (numbers keep their literal text); null, booleans, arrays and objects are ignored.
func ParseRequest(body []byte) PassRequest {
	fields := decodeObject(body)

	return PassRequest{
		ProfileID: stringValue(fields["profileId"]),
		Email:     stringValue(fields["email"]),
		Name:      stringValue(fields["name"]),
		Profile:   parseProfile(fields["profile"]),
	}
}

// Validate checks the required fields are present.
// The returned error wraps ErrMissingFields.
func (r PassRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", ErrMissingFields, err)
	}

	missing := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		missing = append(missing, jsonFieldNames[fe.Field()])
	}
	return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
}

var jsonFieldNames = map[string]string{
	"ProfileID": "profileId",
	"Email":     "email",
	"Name":      "name",
}

// decodeObject returns the members of a JSON object, or nil if body is anything else
func decodeObject(body []byte) map[string]any {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil
	}

	// trailing data makes the whole body malformed
	if _, err := dec.Token(); err != io.EOF {
		return nil
	}

	return fields
}

// stringValue returns the text of a JSON string or number and "" for anything else
func stringValue(v any) string {
	s, _ := optionalString(v)
	return s
}

// optionalString returns the text of a JSON string or number. ok is false for absent, null and non-scalar values.
func optionalString(v any) (s string, ok bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	default:
		return "", false
	}
}
