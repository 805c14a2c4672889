package errors

import "testing"

func TestValidateHrefRoot(t *testing.T) {
	tests := []struct {
		root    string
		wantErr bool
	}{
		{"/", false},
		{"/api/", false},
		{"https://cdn.example.com/docs/", false},
		{"", true},
		{"/api docs/", true},
		{"/api\x00/", true},
	}
	for _, tt := range tests {
		err := ValidateHrefRoot(tt.root)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateHrefRoot(%q) error = %v, wantErr %v", tt.root, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidConfig) {
			t.Errorf("ValidateHrefRoot(%q) code = %v", tt.root, GetCode(err))
		}
	}
}

func TestValidateVersion(t *testing.T) {
	tests := []struct {
		version string
		wantErr bool
	}{
		{"", false},
		{"2.0", false},
		{"v1.2.3-beta.1", false},
		{".", true},
		{"..", true},
		{"1/2", true},
		{`1\2`, true},
		{"1 2", true},
	}
	for _, tt := range tests {
		if err := ValidateVersion(tt.version); (err != nil) != tt.wantErr {
			t.Errorf("ValidateVersion(%q) error = %v, wantErr %v", tt.version, err, tt.wantErr)
		}
	}
}
