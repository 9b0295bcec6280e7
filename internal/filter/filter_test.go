package filter

import "testing"

func TestMatch(t *testing.T) {
	tests := []struct {
		name string
		set  Set
		path string
		want bool
	}{
		{"empty set keeps everything", Set{}, "part-1/1/1.1", true},
		{"part glob", Set{Include: []string{"part-3/**"}}, "part-3/9/9.2", true},
		{"part glob misses", Set{Include: []string{"part-3/**"}}, "part-1/1/1.1", false},
		{"bare id glob", Set{Include: []string{"9.*"}}, "part-3/9/9.5", true},
		{"exclude wins", Set{Include: []string{"part-3/**"}, Exclude: []string{"**/9.*"}}, "part-3/9/9.1", false},
		{"exclude only", Set{Exclude: []string{"part-5/**"}}, "part-1/2/2.0", true},
		{"blank pattern ignored", Set{Include: []string{" "}}, "part-1/1/1.1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.Match(tt.path); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestPartIDsMatchDirectly(t *testing.T) {
	if !MatchesAny("part-2", []string{"part-*"}) {
		t.Error("part-* should match part-2")
	}
	if MatchesAny("part-2", []string{"part-1"}) {
		t.Error("part-1 should not match part-2")
	}
}

func TestValid(t *testing.T) {
	if _, ok := Valid([]string{"part-*", "**/9.*"}); !ok {
		t.Error("expected valid patterns")
	}
	if bad, ok := Valid([]string{"part-[", "ok"}); ok || bad != "part-[" {
		t.Errorf("Valid = %q, %v", bad, ok)
	}
}

func TestPath(t *testing.T) {
	if got := Path("part-1", "2", "2.1"); got != "part-1/2/2.1" {
		t.Errorf("Path = %q", got)
	}
}
