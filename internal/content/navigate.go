package content

// NotFound is returned by ResolveCurrent when no subsection matches. It is a
// renderable state, not an error.
const NotFound = -1

// Entry is a subsection in document order together with its owners.
type Entry struct {
	Subsection
	PartID    string `json:"part_id"`
	SectionID string `json:"section_id"`
}

// Flatten returns every subsection of the tree in document order: parts,
// then sections, then subsections, each in slice order.
func Flatten(t *Tree) []Entry {
	if t == nil {
		return nil
	}
	var flat []Entry
	for _, p := range t.Parts {
		for _, s := range p.Sections {
			for _, sub := range s.Subsections {
				flat = append(flat, Entry{Subsection: sub, PartID: p.ID, SectionID: s.ID})
			}
		}
	}
	return flat
}

// ResolveCurrent returns the index of the first entry with the given id, or
// NotFound.
func ResolveCurrent(flat []Entry, id string) int {
	for i := range flat {
		if flat[i].ID == id {
			return i
		}
	}
	return NotFound
}

// Neighbors returns the entries before and after index i. Either is nil at
// the ends of the sequence; there is no wraparound. An out of range index
// yields no neighbors.
func Neighbors(flat []Entry, i int) (prev, next *Entry) {
	if i < 0 || i >= len(flat) {
		return nil, nil
	}
	if i > 0 {
		prev = &flat[i-1]
	}
	if i < len(flat)-1 {
		next = &flat[i+1]
	}
	return prev, next
}

// Part looks up a part by id.
func (t *Tree) Part(id string) (*Part, bool) {
	for i := range t.Parts {
		if t.Parts[i].ID == id {
			return &t.Parts[i], true
		}
	}
	return nil, false
}

// Section looks up a section by id along with its owning part.
func (t *Tree) Section(id string) (*Section, *Part, bool) {
	for i := range t.Parts {
		p := &t.Parts[i]
		for j := range p.Sections {
			if p.Sections[j].ID == id {
				return &p.Sections[j], p, true
			}
		}
	}
	return nil, nil, false
}

// First returns the first subsection id of the tree, or "" when empty.
func (t *Tree) First() string {
	for _, p := range t.Parts {
		for _, s := range p.Sections {
			if len(s.Subsections) > 0 {
				return s.Subsections[0].ID
			}
		}
	}
	return ""
}

// FirstSubsection returns the id of the section's first subsection.
func (s *Section) FirstSubsection() (string, bool) {
	if len(s.Subsections) == 0 {
		return "", false
	}
	return s.Subsections[0].ID, true
}

// PartIDs lists part ids in order.
func (t *Tree) PartIDs() []string {
	ids := make([]string, 0, len(t.Parts))
	for _, p := range t.Parts {
		ids = append(ids, p.ID)
	}
	return ids
}
