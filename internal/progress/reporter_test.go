package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Task: "Exporting site", Out: &buf}
	r.Start(2)
	r.Update(1, "es/1.1")
	r.Update(2, "es/1.2")
	r.Finish()

	out := buf.String()
	for _, want := range []string{"Exporting site: starting, 2 items", "[1/2] es/1.1", "[2/2] es/1.2", "Exporting site: complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter("x").(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}

func TestNewReporterTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	if _, ok := NewReporter("x").(*TerminalReporter); !ok {
		t.Error("expected TerminalReporter outside CI")
	}
}
