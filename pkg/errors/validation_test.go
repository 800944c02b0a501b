package errors

import (
	"strings"
	"testing"
)

func TestValidateBoardCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"valid", "a1b2c3d4", false},
		{"with hyphen", "my-board", false},
		{"empty", "", true},
		{"uppercase", "ABC123", true},
		{"path traversal", "../etc", true},
		{"slash", "a/b", true},
		{"too long", strings.Repeat("a", 65), true},
		{"space", "a b", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBoardCode(tt.code)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBoardCode(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("error should carry INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestValidateBoardPath(t *testing.T) {
	if err := ValidateBoardPath("boards/mine.board"); err != nil {
		t.Errorf("normal path rejected: %v", err)
	}
	if err := ValidateBoardPath("-"); err != nil {
		t.Errorf("stdin marker rejected: %v", err)
	}
	if err := ValidateBoardPath(""); err == nil {
		t.Error("empty path accepted")
	}
	if err := ValidateBoardPath("bad\x00path"); err == nil {
		t.Error("null byte accepted")
	}
}

func TestValidateBaseURL(t *testing.T) {
	if err := ValidateBaseURL("https://tiles.example.com"); err != nil {
		t.Errorf("https rejected: %v", err)
	}
	if err := ValidateBaseURL("http://localhost:8420"); err != nil {
		t.Errorf("http rejected: %v", err)
	}
	if err := ValidateBaseURL("ftp://example.com"); err == nil {
		t.Error("ftp accepted")
	}
	if err := ValidateBaseURL(""); err == nil {
		t.Error("empty URL accepted")
	}
}
