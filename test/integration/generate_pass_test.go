//go:build integration

package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/adspaceng/ratecard-wallet/internal/pkpass"
)

func postGeneratePass(t *testing.T, testEnv *testEnv, body string) (*http.Response, []byte) {
	t.Helper()

	resp, err := http.Post(testEnv.baseURL+"/generate-pass", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("failed to call generate-pass: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return resp, respBody
}

func TestGeneratePass(t *testing.T) {
	testEnv := startInProcessServer(t, nil)
	defer testEnv.shutdown()

	tests := []struct {
		name            string
		body            string
		wantBarcode     string
		wantPrimaryName string
		wantIndustry    string
	}{
		{
			name:            "full profile",
			body:            `{"profileId":"p-100","email":"ada@example.com","name":"Ada Lovelace","profile":{"username":"ada","name":"Ada L.","industry":"Engineering","bio":"Engines."}}`,
			wantBarcode:     "https://ratecard.app/u/ada",
			wantPrimaryName: "Ada L.",
			wantIndustry:    "Engineering",
		},
		{
			name:            "defaults",
			body:            `{"profileId":"p-101","email":"grace@example.com","name":"Grace Hopper"}`,
			wantBarcode:     "https://ratecard.app/u/demo",
			wantPrimaryName: "Grace Hopper",
			wantIndustry:    "Professional Services",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postGeneratePass(t, testEnv, tt.body)

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected status 200, got %d. Response: %s", resp.StatusCode, string(body))
			}
			if ct := resp.Header.Get("Content-Type"); ct != "application/vnd.apple.pkpass" {
				t.Errorf("expected Content-Type application/vnd.apple.pkpass, got %s", ct)
			}
			if cd := resp.Header.Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment; filename=") {
				t.Errorf("unexpected Content-Disposition %q", cd)
			}

			pool, err := pkpass.LoadCertPool(testEnv.cfg.WWDRCertPath)
			if err != nil {
				t.Fatalf("failed to load trust chain: %v", err)
			}
			archive, err := pkpass.VerifyArchive(body, pool)
			if err != nil {
				t.Fatalf("archive did not verify: %v", err)
			}

			p := archive.Pass
			if p.Generic == nil {
				t.Fatal("pass has no generic fields")
			}
			if p.Barcode == nil || p.Barcode.Message != tt.wantBarcode {
				t.Errorf("expected barcode %s, got %+v", tt.wantBarcode, p.Barcode)
			}
			if len(p.Generic.PrimaryFields) != 1 || p.Generic.PrimaryFields[0].Value != tt.wantPrimaryName {
				t.Errorf("expected primary name %s, got %+v", tt.wantPrimaryName, p.Generic.PrimaryFields)
			}
			if !fieldHasValue(p.Generic.SecondaryFields, tt.wantIndustry) {
				t.Errorf("expected industry %s in secondary fields, got %+v", tt.wantIndustry, p.Generic.SecondaryFields)
			}
		})
	}
}

func fieldHasValue(fields []pkpass.Field, value string) bool {
	for _, f := range fields {
		if f.Value == value {
			return true
		}
	}
	return false
}

func TestGeneratePass_MissingFields(t *testing.T) {
	testEnv := startInProcessServer(t, nil)
	defer testEnv.shutdown()

	for _, body := range []string{`{}`, `{"profileId":"p1","email":"a@b.c"}`, `not json`} {
		resp, respBody := postGeneratePass(t, testEnv, body)

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %s: expected status 400, got %d", body, resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("body %s: expected Content-Type application/json, got %s", body, ct)
		}
		if string(respBody) != `{"error":"Missing required fields"}` {
			t.Errorf("body %s: unexpected response %s", body, string(respBody))
		}
	}
}

func TestGeneratePass_WrongPassword(t *testing.T) {
	testEnv := startInProcessServer(t, map[string]string{
		"SIGNING_KEY_PASSWORD": "not-the-password",
		"EXPOSE_ERROR_TRACE":   "false",
	})
	defer testEnv.shutdown()

	resp, body := postGeneratePass(t, testEnv, `{"profileId":"p1","email":"a@b.c","name":"Ada"}`)

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var errResp map[string]any
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if errResp["error"] != "Failed to generate pass" {
		t.Errorf("unexpected error %v", errResp["error"])
	}
	details, _ := errResp["details"].(string)
	if !strings.Contains(details, "incorrect signing key password") {
		t.Errorf("unexpected details %q", details)
	}
	if _, ok := errResp["trace"]; ok {
		t.Error("trace included although EXPOSE_ERROR_TRACE=false")
	}
}

func TestGeneratePass_RequestTooLarge(t *testing.T) {
	testEnv := startInProcessServer(t, map[string]string{"MAX_REQUEST_SIZE": "100"})
	defer testEnv.shutdown()

	body := `{"profileId":"p1","email":"a@b.c","name":"` + strings.Repeat("a", 200) + `"}`
	resp, _ := postGeneratePass(t, testEnv, body)

	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("expected status 413, got %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Max-Request-Size") != "100" {
		t.Errorf("unexpected X-Max-Request-Size %q", resp.Header.Get("X-Max-Request-Size"))
	}
}
