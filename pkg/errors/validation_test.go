package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "fan.svg", false},
		{"nested", "assets/fan.svg", false},
		{"absolute", "/usr/share/icons/fan.svg", false},
		{"absolute with dots", "/tmp/../tmp/fan.svg", false},

		{"empty", "", true},
		{"traversal", "../secret.svg", true},
		{"null byte", "fan\x00.svg", true},
		{"newline", "fan\n.svg", true},
		{"too long", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v", tt.input, GetCode(err))
			}
		})
	}
}

func TestValidateBackendName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"svg", false},
		{"graphviz", false},
		{"gpu-aa", false},
		{"", true},
		{"SVG", true},
		{"1svg", true},
		{"svg js", true},
	}
	for _, tt := range tests {
		err := ValidateBackendName(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateBackendName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateCount(t *testing.T) {
	if err := ValidateCount(0, 10); err != nil {
		t.Errorf("zero count should be valid: %v", err)
	}
	if err := ValidateCount(10, 10); err != nil {
		t.Errorf("count at limit should be valid: %v", err)
	}
	if err := ValidateCount(5, 0); err != nil {
		t.Errorf("zero limit means unlimited: %v", err)
	}
	if err := ValidateCount(-1, 10); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("negative count: got %v", err)
	}
	if err := ValidateCount(11, 10); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("count over limit: got %v", err)
	}
}
