package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"camel case component", "stylizedContentBox", nil},
		{"name with hyphen", "my-box", nil},
		{"empty", "", ErrInvalidAssetName},
		{"path separator", "components/box", ErrInvalidAssetName},
		{"backslash", `components\box`, ErrInvalidAssetName},
		{"traversal", "..", ErrInvalidAssetName},
		{"extension", "box.html", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAssetName_RejectsNonASCII(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"boîte", "info box", "tab\x00s", "box~"} {
		if err := ValidateAssetName(name); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("ValidateAssetName(%q) error = %v, want ErrInvalidAssetName", name, err)
		}
	}
}
