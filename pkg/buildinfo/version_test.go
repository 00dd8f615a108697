package buildinfo

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v1.2.3"
	if got := UserAgent(); got != "waypoint/v1.2.3" {
		t.Errorf("UserAgent() = %q, want %q", got, "waypoint/v1.2.3")
	}
}

func TestTemplate(t *testing.T) {
	got := Template()
	for _, want := range []string{"{{.Name}} version", "commit: " + Commit, "built: " + Date} {
		if !strings.Contains(got, want) {
			t.Errorf("Template() = %q, missing %q", got, want)
		}
	}
}
