// Package export turns a stored variant into deliverable bundles. A
// render works from a resolved snapshot, so the same stored state always
// produces the same bytes. Output never embeds wall-clock time.
package export

import (
	"fmt"

	"github.com/seewee/seewee/internal/schema"
	"github.com/seewee/seewee/pkg/types"
)

// Source provides the stored state a render reads. *sqlite.Store
// satisfies it.
type Source interface {
	GetVariant(id string) (*types.Variant, error)
	LoadLayout(variantID string) (*types.Layout, error)
	ListEntries(category types.Category) ([]*types.Entry, error)
	GetProfile() (*types.Profile, error)
}

// Section is one resolved document section with its entries in render
// order.
type Section struct {
	ID    string
	Title string
	Items []*types.Entry
}

// Document is the resolved snapshot all renderers consume.
type Document struct {
	VariantID string
	Variant   *types.Variant
	Profile   *types.Profile
	Sections  []Section
	Warnings  []string
}

// sectionCategories maps a section id to the entry categories that
// auto-group into it. Sections not listed here collect entries whose
// category matches the section id.
var sectionCategories = map[string][]types.Category{
	"experience":     {types.CategoryExperience},
	"education":      {types.CategoryEducation},
	"projects":       {types.CategoryProject},
	"publications":   {types.CategoryPublication},
	"awards":         {types.CategoryAward},
	"volunteering":   {types.CategoryVolunteering},
	"skills":         {types.CategorySkill},
	"certifications": {types.CategoryCertification},
	"languages":      {types.CategoryLanguage},
	"talks":          {types.CategoryTalk},
	"references":     {types.CategoryReference},
}

func sectionAccepts(sectionID string, category types.Category) bool {
	if cats, ok := sectionCategories[sectionID]; ok {
		for _, c := range cats {
			if c == category {
				return true
			}
		}
		return false
	}
	return string(category) == sectionID
}

// Resolve builds the document for a variant. When the variant has a
// manual layout the stored ordering is used verbatim; entry references
// that no longer resolve are skipped with one warning each and the
// stored layout is left untouched. An empty layout falls back to
// auto-grouping entries by category, filtered by the variant's tag
// rules.
func Resolve(src Source, variantID string) (*Document, error) {
	variant, err := src.GetVariant(variantID)
	if err != nil {
		return nil, err
	}
	layout, err := src.LoadLayout(variantID)
	if err != nil {
		return nil, err
	}
	entries, err := src.ListEntries("")
	if err != nil {
		return nil, err
	}
	profile, err := src.GetProfile()
	if err != nil {
		return nil, err
	}

	doc := &Document{
		VariantID: variantID,
		Variant:   variant,
		Profile:   profile,
	}

	if layout.Empty() {
		doc.Sections = autoGroup(layout, entries, variant.Rules)
		return doc, nil
	}

	byID := make(map[string]*types.Entry, len(entries))
	for _, e := range entries {
		byID[e.EntryID] = e
	}

	for _, ls := range layout.Sections {
		section := Section{
			ID:    ls.SectionID,
			Title: schema.SectionTitle(ls.SectionID),
		}
		for _, id := range ls.EntryIDs {
			entry, ok := byID[id]
			if !ok {
				doc.Warnings = append(doc.Warnings,
					fmt.Sprintf("entry %s in section %q no longer exists; skipped", id, ls.SectionID))
				continue
			}
			section.Items = append(section.Items, entry)
		}
		doc.Sections = append(doc.Sections, section)
	}
	return doc, nil
}

// autoGroup places each rule-matching entry into the first section that
// accepts its category, preserving the store's listing order.
func autoGroup(layout *types.Layout, entries []*types.Entry, rules types.Rules) []Section {
	sectionIDs := make([]string, len(layout.Sections))
	for i, s := range layout.Sections {
		sectionIDs[i] = s.SectionID
	}
	if len(sectionIDs) == 0 {
		sectionIDs = []string{
			"experience", "education", "projects", "publications", "awards",
			"volunteering", "skills", "certifications", "languages", "talks",
			"references",
		}
	}

	bySection := make(map[string][]*types.Entry)
	for _, e := range entries {
		if !rules.Matches(e.Tags) {
			continue
		}
		for _, sid := range sectionIDs {
			if sectionAccepts(sid, e.Category) {
				bySection[sid] = append(bySection[sid], e)
				break
			}
		}
	}

	sections := make([]Section, 0, len(sectionIDs))
	for _, sid := range sectionIDs {
		sections = append(sections, Section{
			ID:    sid,
			Title: schema.SectionTitle(sid),
			Items: bySection[sid],
		})
	}
	return sections
}
