package errors

import "testing"

func TestValidateGroupName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "n_exc", false},
		{"valid with digits", "wta_layer1", false},
		{"valid underscored", "test_WTA_s_inp_exc", false},
		{"empty", "", true},
		{"path traversal", "../escape", true},
		{"path separator", "a/b", true},
		{"backslash", "a\\b", true},
		{"null byte", "a\x00b", true},
		{"control char", "a\nb", true},
		{"too long", string(make([]byte, 300)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGroupName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGroupName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidGroup) {
				t.Errorf("ValidateGroupName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidGroup)
			}
		})
	}
}

func TestValidateOutputFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "orca_net.json", false},
		{"valid no extension", "orca_net", false},
		{"empty", "", true},
		{"path separator", "out/orca_net.json", true},
		{"hidden file", ".orca_net", true},
		{"control char", "orca\tnet", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
