package ratecard

import (
	"errors"
	"strings"
	"testing"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantProfileID string
		wantEmail     string
		wantName      string
	}{
		{"all fields", `{"profileId":"p1","email":"a@b.c","name":"Ada"}`, "p1", "a@b.c", "Ada"},
		{"numeric profile id", `{"profileId":12345,"email":"a@b.c","name":"Ada"}`, "12345", "a@b.c", "Ada"},
		{"number keeps literal text", `{"profileId":1.50,"email":"a@b.c","name":"Ada"}`, "1.50", "a@b.c", "Ada"},
		{"null fields", `{"profileId":null,"email":null,"name":null}`, "", "", ""},
		{"boolean and object fields", `{"profileId":true,"email":{},"name":["Ada"]}`, "", "", ""},
		{"malformed json", `{"profileId":"p1",`, "", "", ""},
		{"json array", `[{"profileId":"p1"}]`, "", "", ""},
		{"json null", `null`, "", "", ""},
		{"trailing data", `{"profileId":"p1","email":"a@b.c","name":"Ada"} {}`, "", "", ""},
		{"empty body", ``, "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ParseRequest([]byte(tt.body))

			if req.ProfileID != tt.wantProfileID {
				t.Errorf("ProfileID = %q, want %q", req.ProfileID, tt.wantProfileID)
			}
			if req.Email != tt.wantEmail {
				t.Errorf("Email = %q, want %q", req.Email, tt.wantEmail)
			}
			if req.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", req.Name, tt.wantName)
			}
		})
	}
}

func TestParseRequest_Profile(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantUsername string
		wantIndustry string
		wantBio      string
		wantName     string
	}{
		{
			name:         "no profile",
			body:         `{"name":"Ada"}`,
			wantUsername: DefaultUsername,
			wantIndustry: DefaultIndustry,
			wantBio:      DefaultBio,
			wantName:     "Ada",
		},
		{
			name:         "profile values",
			body:         `{"name":"Ada","profile":{"username":"ada","industry":"Engineering","bio":"Engines.","name":"Ada L."}}`,
			wantUsername: "ada",
			wantIndustry: "Engineering",
			wantBio:      "Engines.",
			wantName:     "Ada L.",
		},
		{
			name:         "null values use defaults",
			body:         `{"name":"Ada","profile":{"username":null,"industry":null,"bio":null,"name":null}}`,
			wantUsername: DefaultUsername,
			wantIndustry: DefaultIndustry,
			wantBio:      DefaultBio,
			wantName:     "Ada",
		},
		{
			name:         "empty strings are kept",
			body:         `{"name":"Ada","profile":{"username":"","industry":"","bio":"","name":""}}`,
			wantUsername: "",
			wantIndustry: "",
			wantBio:      "",
			wantName:     "",
		},
		{
			name:         "profile is not an object",
			body:         `{"name":"Ada","profile":"ada"}`,
			wantUsername: DefaultUsername,
			wantIndustry: DefaultIndustry,
			wantBio:      DefaultBio,
			wantName:     "Ada",
		},
		{
			name:         "numeric username",
			body:         `{"name":"Ada","profile":{"username":42}}`,
			wantUsername: "42",
			wantIndustry: DefaultIndustry,
			wantBio:      DefaultBio,
			wantName:     "Ada",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ParseRequest([]byte(tt.body))
			p := req.Profile

			if got := p.UsernameOrDefault(); got != tt.wantUsername {
				t.Errorf("username = %q, want %q", got, tt.wantUsername)
			}
			if got := p.IndustryOrDefault(); got != tt.wantIndustry {
				t.Errorf("industry = %q, want %q", got, tt.wantIndustry)
			}
			if got := p.BioOrDefault(); got != tt.wantBio {
				t.Errorf("bio = %q, want %q", got, tt.wantBio)
			}
			if got := p.NameOr(req.Name); got != tt.wantName {
				t.Errorf("name = %q, want %q", got, tt.wantName)
			}
		})
	}
}

func TestPassRequest_Validate(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantErr     bool
		wantMissing []string
	}{
		{"valid", `{"profileId":"p1","email":"a@b.c","name":"Ada"}`, false, nil},
		{"email is not format checked", `{"profileId":"p1","email":"not-an-email","name":"Ada"}`, false, nil},
		// "0" and 0 are values, not empty
		{"zero string profile id", `{"profileId":"0","email":"a@b.c","name":"Ada"}`, false, nil},
		{"zero number profile id", `{"profileId":0,"email":"a@b.c","name":"Ada"}`, false, nil},
		{"zero string name", `{"profileId":"p1","email":"a@b.c","name":"0"}`, false, nil},
		{"whitespace is a value", `{"profileId":" ","email":"a@b.c","name":"Ada"}`, false, nil},
		{"missing email", `{"profileId":"p1","name":"Ada"}`, true, []string{"email"}},
		{"empty name", `{"profileId":"p1","email":"a@b.c","name":""}`, true, []string{"name"}},
		{"empty object", `{}`, true, []string{"profileId", "email", "name"}},
		{"malformed json", `not json`, true, []string{"profileId", "email", "name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ParseRequest([]byte(tt.body)).Validate()

			if !tt.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if !errors.Is(err, ErrMissingFields) {
				t.Fatalf("expected ErrMissingFields, got %v", err)
			}
			for _, field := range tt.wantMissing {
				if !strings.Contains(err.Error(), field) {
					t.Errorf("error %q does not name missing field %s", err, field)
				}
			}
		})
	}
}
