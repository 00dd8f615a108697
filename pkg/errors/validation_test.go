package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "paris", false},
		{"valid with dash", "saint-etienne", false},
		{"valid unicode", "besançon", false},
		{"valid with space", "le mans", false},
		{"long", strings.Repeat("a", 300), false},
		{"tab", "foo\tbar", false},
		{"null byte", "foo\x00bar", false},

		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidNodeID) {
				t.Errorf("ValidateNodeID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidNodeID)
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
		{"https", "https://example.com/graph.json", false},
		{"http", "http://localhost:8080/graph.json", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com/graph.json", true},
		{"no scheme", "example.com/graph.json", true},
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

func TestValidateSource(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative file", "data/graph.json", false},
		{"absolute file", "/srv/waypoint/graph.json", false},
		{"https url", "https://example.com/graph.json", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"control char", "data/\x01graph.json", true},
		{"file scheme", "file:///etc/passwd", true},
		{"ftp scheme", "ftp://example.com/graph.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSource(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSource(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://example.com/g.json", true},
		{"http://example.com/g.json", true},
		{"data/graph.json", false},
		{"httpdata/graph.json", false},
	}

	for _, tt := range tests {
		if got := IsRemote(tt.input); got != tt.want {
			t.Errorf("IsRemote(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
