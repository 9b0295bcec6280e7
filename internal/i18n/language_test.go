package i18n

import "testing"

func TestToggleRoundTrip(t *testing.T) {
	for _, start := range All {
		if got := start.Toggle().Toggle(); got != start {
			t.Errorf("toggle(toggle(%s)) = %s", start, got)
		}
		if start.Toggle() == start {
			t.Errorf("toggle(%s) did not change language", start)
		}
	}
}

func TestDefaultIsSpanish(t *testing.T) {
	if Default != Spanish {
		t.Fatalf("Default = %s, want es", Default)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"es", Spanish},
		{"en", English},
		{" EN ", English},
		{"fr", Spanish},
		{"", Spanish},
	}
	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestMessagesCoverBothLanguages(t *testing.T) {
	for msg := range messages[Spanish] {
		if _, ok := messages[English][msg]; !ok {
			t.Errorf("message %q missing in en", msg)
		}
	}
	if got := T(English, MsgNotFound); got != "Section not found. Please select a topic from the menu." {
		t.Errorf("unexpected en placeholder %q", got)
	}
	if got := T(Language("xx"), MsgNext); got != "Siguiente" {
		t.Errorf("fallback = %q, want Siguiente", got)
	}
	if got := T(Spanish, Message("nope")); got != "nope" {
		t.Errorf("unknown message = %q", got)
	}
}
