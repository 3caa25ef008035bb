package errors

import (
	"strings"
	"testing"
)

func TestValidateCommitHash(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"full sha1", "0a1b2c3d4e5f60718293a4b5c6d7e8f901234567", false},
		{"abbreviated", "0a1b2c3", false},
		{"uppercase", "0A1B2C3D", false},

		{"empty", "", true},
		{"too short", "0a1b2c", true},
		{"not hex", "zzzzzzzz", true},
		{"path traversal", "../0a1b2c3", true},
		{"with extension", "0a1b2c3.json", true},
		{"newline", "0a1b2c3\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCommitHash(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCommitHash(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidRecord) {
				t.Errorf("ValidateCommitHash(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidRecord)
			}
		})
	}
}

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"group", "org.apache.maven", false},
		{"artifact", "maven-core", false},
		{"underscore", "my_artifact", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"slash", "org/apache", true},
		{"backslash", "org\\apache", true},
		{"dot dot", "org..apache", true},
		{"space", "org apache", true},
		{"null byte", "org\x00apache", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative dir", "../jsons", false},
		{"absolute", "/data/benchmark", false},
		{"with spaces", "my dir/records", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "dir\x00name", true},
		{"control char", "dir\x01name", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://api.github.com", false},
		{"http with port", "http://127.0.0.1:8080", false},
		{"with path", "https://repo1.maven.org/maven2", false},

		{"empty", "", true},
		{"ftp scheme", "ftp://example.com", true},
		{"file scheme", "file:///etc/passwd", true},
		{"no scheme", "api.github.com", true},
		{"no host", "https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
