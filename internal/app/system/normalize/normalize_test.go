package normalize

import (
	"encoding/json"
	"testing"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user@example.com", "user@example.com"},
		{"USER@EXAMPLE.COM", "user@example.com"},
		{"  User@Example.Com  ", "user@example.com"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Email(tt.input)
			if got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Wong Siu Ming", "Wong Siu Ming"},
		{"  Wong Siu Ming  ", "Wong Siu Ming"},
		{"", ""},
		{"UPPERCASE NAME", "UPPERCASE NAME"}, // Name preserves case
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Name(tt.input)
			if got != tt.want {
				t.Errorf("Name(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRole(t *testing.T) {
	if got := Role("  CSR "); got != "csr" {
		t.Errorf("Role = %q, want %q", got, "csr")
	}
}

func TestCategoryRef_StringForm(t *testing.T) {
	var ref CategoryRef
	if err := json.Unmarshal([]byte(`"shopping"`), &ref); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got := ref.Key(); got != "shopping" {
		t.Errorf("Key() = %q, want %q", got, "shopping")
	}
}

func TestCategoryRef_ObjectForm(t *testing.T) {
	var ref CategoryRef
	payload := `{"id": "medical", "name": "Medical Support"}`
	if err := json.Unmarshal([]byte(payload), &ref); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got := ref.Key(); got != "medical" {
		t.Errorf("Key() = %q, want %q", got, "medical")
	}
}

func TestCategoryRef_ObjectFormNameOnly(t *testing.T) {
	var ref CategoryRef
	if err := json.Unmarshal([]byte(`{"name": "transportation"}`), &ref); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got := ref.Key(); got != "transportation" {
		t.Errorf("Key() = %q, want %q", got, "transportation")
	}
}

func TestCategoryRef_Empty(t *testing.T) {
	var ref CategoryRef
	if got := ref.Key(); got != "" {
		t.Errorf("Key() on zero ref = %q, want empty", got)
	}
}

func TestCategoryRef_UnknownShape(t *testing.T) {
	var ref CategoryRef
	if err := json.Unmarshal([]byte(`42`), &ref); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got := ref.Key(); got != "" {
		t.Errorf("Key() = %q, want empty", got)
	}
}
