package pkpass

import (
	"testing"
)

func TestCalculateSHA1Hex(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{"abc", "a9993e364706816aba3e25717850c26c9cd0d89d"},
	}
	for _, tt := range tests {
		if got := CalculateSHA1Hex([]byte(tt.input)); got != tt.want {
			t.Errorf("CalculateSHA1Hex(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestNewManifest(t *testing.T) {
	files := []File{
		{Name: "pass.json", Data: []byte(`{"a":1}`)},
		{Name: "icon.png", Data: []byte("abc")},
	}

	m, err := NewManifest(files)
	if err != nil {
		t.Fatalf("NewManifest() error: %v", err)
	}
	if m["icon.png"] != "a9993e364706816aba3e25717850c26c9cd0d89d" {
		t.Errorf("icon.png hash = %s", m["icon.png"])
	}

	data, err := m.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"icon.png":"a9993e364706816aba3e25717850c26c9cd0d89d","pass.json":"` + CalculateSHA1Hex([]byte(`{"a":1}`)) + `"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	_, err = NewManifest(append(files, File{Name: "icon.png", Data: []byte("x")}))
	assertErrorCode(t, err, ErrCodeAsset)
}

func TestManifest_Verify(t *testing.T) {
	m := Manifest{
		"pass.json": CalculateSHA1Hex([]byte("pass")),
		"icon.png":  CalculateSHA1Hex([]byte("icon")),
	}

	tests := []struct {
		name    string
		files   map[string][]byte
		wantErr bool
	}{
		{"matching", map[string][]byte{"pass.json": []byte("pass"), "icon.png": []byte("icon")}, false},
		{"modified file", map[string][]byte{"pass.json": []byte("PASS"), "icon.png": []byte("icon")}, true},
		{"unlisted file", map[string][]byte{"pass.json": []byte("pass"), "icon.png": []byte("icon"), "logo.png": []byte("logo")}, true},
		{"missing file", map[string][]byte{"pass.json": []byte("pass")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Verify(tt.files)
			if tt.wantErr {
				assertErrorCode(t, err, ErrCodeSigning)
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestEncodePass_Canonical(t *testing.T) {
	data, err := EncodePass(&Pass{
		Description:   "a <b> & c",
		FormatVersion: 1,
	})
	if err != nil {
		t.Fatalf("EncodePass() error: %v", err)
	}

	// keys sorted, no HTML escaping
	want := `{"description":"a <b> & c","formatVersion":1,"organizationName":"","passTypeIdentifier":"","serialNumber":"","teamIdentifier":""}`
	if string(data) != want {
		t.Errorf("EncodePass() = %s, want %s", data, want)
	}
}
