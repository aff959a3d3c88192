package types

import "encoding/json"

// Section is one named grouping within a layout. EntryIDs is the ordered
// placement of entries inside the section.
type Section struct {
	SectionID string   `json:"section_id"`
	EntryIDs  []string `json:"entry_ids"`
}

// Layout is the ordered placement data for one variant: the section
// sequence, and the entry sequence within each section. Both orders are
// semantically meaningful and must survive persistence exactly.
//
// All mutating operations validate before committing: on error the layout
// is unchanged. An entry id appears at most once across the whole layout.
type Layout struct {
	VariantID string    `json:"variant_id"`
	Sections  []Section `json:"sections"`
}

// NewLayout seeds a layout from a variant's declared section order, with
// empty entry lists. This is the implicit layout a variant gets the first
// time it is selected.
func NewLayout(variantID string, sectionIDs []string) *Layout {
	sections := make([]Section, 0, len(sectionIDs))
	for _, id := range sectionIDs {
		sections = append(sections, Section{SectionID: id, EntryIDs: []string{}})
	}
	return &Layout{VariantID: variantID, Sections: sections}
}

// sectionIndex returns the position of the named section, or -1.
func (l *Layout) sectionIndex(sectionID string) int {
	for i := range l.Sections {
		if l.Sections[i].SectionID == sectionID {
			return i
		}
	}
	return -1
}

// Find returns the section id and intra-section index holding entryID.
// The boolean is false when the entry is not placed anywhere.
func (l *Layout) Find(entryID string) (string, int, bool) {
	for i := range l.Sections {
		for j, id := range l.Sections[i].EntryIDs {
			if id == entryID {
				return l.Sections[i].SectionID, j, true
			}
		}
	}
	return "", 0, false
}

// Place inserts entryID into the named section at index, removing it from
// any section it previously occupied. The index is clamped to
// [0, len(section)]. Placing an entry at its current exact position is a
// no-op. Returns ErrUnknownSection if the target section does not exist.
func (l *Layout) Place(entryID, sectionID string, index int) error {
	si := l.sectionIndex(sectionID)
	if si < 0 {
		return ErrUnknownSection
	}

	if curSection, curIndex, ok := l.Find(entryID); ok {
		if curSection == sectionID && curIndex == index {
			return nil
		}
		l.RemoveEntry(entryID)
	}

	ids := l.Sections[si].EntryIDs
	if index < 0 {
		index = 0
	}
	if index > len(ids) {
		index = len(ids)
	}
	ids = append(ids, "")
	copy(ids[index+1:], ids[index:])
	ids[index] = entryID
	l.Sections[si].EntryIDs = ids
	return nil
}

// MoveWithinSection moves the entry at from to position to inside one
// section. Returns ErrUnknownSection for an unrecognized section and
// ErrIndexOutOfRange when either index is outside the section's current
// length.
func (l *Layout) MoveWithinSection(sectionID string, from, to int) error {
	si := l.sectionIndex(sectionID)
	if si < 0 {
		return ErrUnknownSection
	}
	ids := l.Sections[si].EntryIDs
	if from < 0 || from >= len(ids) || to < 0 || to >= len(ids) {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}
	id := ids[from]
	ids = append(ids[:from], ids[from+1:]...)
	ids = append(ids, "")
	copy(ids[to+1:], ids[to:])
	ids[to] = id
	l.Sections[si].EntryIDs = ids
	return nil
}

// ReorderSections moves the section at from to position to. Returns
// ErrIndexOutOfRange when either index is outside the section sequence.
func (l *Layout) ReorderSections(from, to int) error {
	if from < 0 || from >= len(l.Sections) || to < 0 || to >= len(l.Sections) {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}
	sec := l.Sections[from]
	l.Sections = append(l.Sections[:from], l.Sections[from+1:]...)
	l.Sections = append(l.Sections, Section{})
	copy(l.Sections[to+1:], l.Sections[to:])
	l.Sections[to] = sec
	return nil
}

// AddSection appends a new empty section. Returns ErrDuplicateSection if
// the id is already present.
func (l *Layout) AddSection(sectionID string) error {
	if l.sectionIndex(sectionID) >= 0 {
		return ErrDuplicateSection
	}
	l.Sections = append(l.Sections, Section{SectionID: sectionID, EntryIDs: []string{}})
	return nil
}

// RemoveSection removes the named section, discarding its entry ordering.
// The entries themselves are only unplaced, never deleted. Returns
// ErrUnknownSection if the id is not present.
func (l *Layout) RemoveSection(sectionID string) error {
	si := l.sectionIndex(sectionID)
	if si < 0 {
		return ErrUnknownSection
	}
	l.Sections = append(l.Sections[:si], l.Sections[si+1:]...)
	return nil
}

// RemoveEntry removes the entry from wherever it is placed. Removing an
// unplaced entry is a no-op.
func (l *Layout) RemoveEntry(entryID string) {
	for i := range l.Sections {
		ids := l.Sections[i].EntryIDs
		for j, id := range ids {
			if id == entryID {
				l.Sections[i].EntryIDs = append(ids[:j], ids[j+1:]...)
				return
			}
		}
	}
}

// Snapshot returns a deep copy of the layout, safe to hand to persistence
// or export while the original keeps mutating.
func (l *Layout) Snapshot() *Layout {
	out := &Layout{VariantID: l.VariantID, Sections: make([]Section, len(l.Sections))}
	for i, s := range l.Sections {
		ids := make([]string, len(s.EntryIDs))
		copy(ids, s.EntryIDs)
		out.Sections[i] = Section{SectionID: s.SectionID, EntryIDs: ids}
	}
	return out
}

// Empty reports whether no entry is placed anywhere in the layout.
func (l *Layout) Empty() bool {
	for i := range l.Sections {
		if len(l.Sections[i].EntryIDs) > 0 {
			return false
		}
	}
	return true
}

// Canonical returns a deterministic byte encoding of the layout's section
// order and entry order, used for structural change detection.
func (l *Layout) Canonical() []byte {
	b, err := json.Marshal(l)
	if err != nil {
		// Layout contains only strings and slices; Marshal cannot fail.
		panic(err)
	}
	return b
}

// Equal reports structural equality on the canonical representation.
func (l *Layout) Equal(other *Layout) bool {
	if other == nil {
		return false
	}
	return string(l.Canonical()) == string(other.Canonical())
}
