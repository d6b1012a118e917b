package bio

import (
	"strings"
	"testing"
)

func TestCanSetBio(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantAllowed bool
		wantReason  string
	}{
		{name: "empty", text: "", wantAllowed: true},
		{name: "short", text: "hello there", wantAllowed: true},
		{name: "exactly the limit", text: strings.Repeat("a", 250), wantAllowed: true},
		{name: "one over", text: strings.Repeat("a", 251), wantAllowed: false, wantReason: "bio is 251 characters, the limit is 250"},
		{name: "multibyte counted as characters", text: strings.Repeat("é", 250), wantAllowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanSetBio(tt.text)

			if result.Allowed != tt.wantAllowed {
				t.Errorf("CanSetBio() Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if result.Reason != tt.wantReason {
				t.Errorf("CanSetBio() Reason = %q, want %q", result.Reason, tt.wantReason)
			}

			err := result.Error()
			if tt.wantAllowed && err != nil {
				t.Errorf("Error() should return nil when allowed, got %v", err)
			}
			if !tt.wantAllowed && err == nil {
				t.Error("Error() should return error when not allowed")
			}
		})
	}
}

func TestRender(t *testing.T) {
	if got := Render("hi"); got != "```hi```" {
		t.Errorf("Render() = %q", got)
	}
}
