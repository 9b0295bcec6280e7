package content

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ziadkadry99/splatdocs/internal/i18n"
)

// Validate checks the structural invariants of a tree: every id is present
// and ids are unique among parts, sections and subsections respectively.
// All problems are reported together.
func Validate(t *Tree) error {
	var errs []error
	parts := map[string]bool{}
	sections := map[string]bool{}
	subs := map[string]bool{}

	seen := func(kind string, set map[string]bool, id, where string) {
		if id == "" {
			errs = append(errs, fmt.Errorf("%s: empty %s id", where, kind))
			return
		}
		if set[id] {
			errs = append(errs, fmt.Errorf("%s: duplicate %s id %q", where, kind, id))
			return
		}
		set[id] = true
	}

	for pi, p := range t.Parts {
		seen("part", parts, p.ID, fmt.Sprintf("%s part[%d]", t.Lang, pi))
		for si, s := range p.Sections {
			seen("section", sections, s.ID, fmt.Sprintf("%s %s section[%d]", t.Lang, p.ID, si))
			for bi, sub := range s.Subsections {
				seen("subsection", subs, sub.ID, fmt.Sprintf("%s %s/%s subsection[%d]", t.Lang, p.ID, s.ID, bi))
				for _, k := range sub.Body.Widgets() {
					if !k.Valid() {
						errs = append(errs, fmt.Errorf("%s subsection %s: unknown widget %q", t.Lang, sub.ID, k))
					}
				}
			}
		}
	}
	return errors.Join(errs...)
}

// Parity lists the subsection ids present in only one of two trees.
type Parity struct {
	Left         string   `json:"left"`
	Right        string   `json:"right"`
	MissingLeft  []string `json:"missing_left"`
	MissingRight []string `json:"missing_right"`
}

// OK reports whether both trees expose the same subsection ids.
func (p Parity) OK() bool { return len(p.MissingLeft) == 0 && len(p.MissingRight) == 0 }

func (p Parity) String() string {
	if p.OK() {
		return fmt.Sprintf("%s and %s share every subsection id", p.Left, p.Right)
	}
	return fmt.Sprintf("missing in %s: %v; missing in %s: %v", p.Left, p.MissingLeft, p.Right, p.MissingRight)
}

// CompareParity compares the subsection id sets of two trees. Structural
// differences above the subsection level (how sections are grouped into
// parts) are allowed.
func CompareParity(left, right *Tree) Parity {
	l := idSet(left)
	r := idSet(right)
	p := Parity{Left: string(left.Lang), Right: string(right.Lang)}
	for id := range r {
		if !l[id] {
			p.MissingLeft = append(p.MissingLeft, id)
		}
	}
	for id := range l {
		if !r[id] {
			p.MissingRight = append(p.MissingRight, id)
		}
	}
	sort.Strings(p.MissingLeft)
	sort.Strings(p.MissingRight)
	return p
}

func idSet(t *Tree) map[string]bool {
	set := map[string]bool{}
	for _, e := range Flatten(t) {
		set[e.ID] = true
	}
	return set
}

// CheckCatalog validates every tree in c and compares the Spanish and
// English subsection ids. The report has one line per language followed by
// the parity summary; ok is false when anything is wrong.
func CheckCatalog(c *Catalog) (report string, ok bool) {
	var sb strings.Builder
	ok = true
	for _, lang := range c.Languages() {
		t := c.Tree(lang)
		if err := Validate(t); err != nil {
			ok = false
			fmt.Fprintf(&sb, "%s: invalid tree:\n%v\n", lang, err)
			continue
		}
		fmt.Fprintf(&sb, "%s: %d parts, %d subsections\n", lang, len(t.Parts), len(Flatten(t)))
	}

	p := CompareParity(c.Tree(i18n.Spanish), c.Tree(i18n.English))
	if !p.OK() {
		ok = false
	}
	sb.WriteString(p.String())
	sb.WriteString("\n")
	return sb.String(), ok
}
