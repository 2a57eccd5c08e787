package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	got := String()
	for _, want := range []string{"version: " + Version, "commit: " + Commit, "built: " + Date} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}

func TestUserAgent(t *testing.T) {
	if got, want := UserAgent(), "pastebin-go/"+Version; got != want {
		t.Errorf("UserAgent() = %q, want %q", got, want)
	}
}
