// Package schema declares, for each entry category, the recognized fields,
// their value kinds, and which fields feed the derived title and subtitle.
// The registry is a pure lookup table: no mutable state, safe for
// concurrent reads.
package schema

import (
	"github.com/seewee/seewee/pkg/types"
)

// DisplayRole marks a field's contribution to the derived display label.
type DisplayRole string

// Display roles.
const (
	RoleNone     DisplayRole = ""
	RoleTitle    DisplayRole = "title"
	RoleSubtitle DisplayRole = "subtitle"
)

// FieldSpec describes one recognized field of an entry category.
type FieldSpec struct {
	Name     string
	Label    string
	Kind     types.ValueKind
	Required bool
	Role     DisplayRole
}

// registry maps each category to its field specs, in display order.
// Field sets mirror the canonical entry document shape.
var registry = map[types.Category][]FieldSpec{
	types.CategoryExperience: {
		{Name: "role", Label: "Role", Kind: types.KindShortText, Role: RoleTitle},
		{Name: "company", Label: "Company", Kind: types.KindShortText, Role: RoleSubtitle},
		{Name: "location", Label: "Location", Kind: types.KindShortText},
		{Name: "start_date", Label: "Start Date", Kind: types.KindDate},
		{Name: "end_date", Label: "End Date", Kind: types.KindDate},
		{Name: "lead", Label: "Lead", Kind: types.KindShortText},
		{Name: "highlights", Label: "Highlights", Kind: types.KindTextList},
	},
	types.CategoryEducation: {
		{Name: "school", Label: "School", Kind: types.KindShortText, Role: RoleSubtitle},
		{Name: "degree", Label: "Degree", Kind: types.KindShortText, Role: RoleTitle},
		{Name: "location", Label: "Location", Kind: types.KindShortText},
		{Name: "start_date", Label: "Start Date", Kind: types.KindDate},
		{Name: "end_date", Label: "End Date", Kind: types.KindDate},
		{Name: "gpa", Label: "GPA", Kind: types.KindShortText},
		{Name: "honors", Label: "Honors", Kind: types.KindShortText},
		{Name: "highlights", Label: "Highlights", Kind: types.KindTextList},
	},
	types.CategoryProject: {
		{Name: "name", Label: "Name", Kind: types.KindShortText, Role: RoleTitle},
		{Name: "organization", Label: "Organization", Kind: types.KindShortText, Role: RoleSubtitle},
		{Name: "link", Label: "Link", Kind: types.KindShortText},
		{Name: "tech_stack", Label: "Tech Stack", Kind: types.KindTextList},
		{Name: "start_date", Label: "Start Date", Kind: types.KindDate},
		{Name: "end_date", Label: "End Date", Kind: types.KindDate},
		{Name: "highlights", Label: "Highlights", Kind: types.KindTextList},
	},
	types.CategoryPublication: {
		{Name: "title", Label: "Title", Kind: types.KindShortText, Role: RoleTitle},
		{Name: "authors", Label: "Authors", Kind: types.KindShortText},
		{Name: "venue", Label: "Venue", Kind: types.KindShortText, Role: RoleSubtitle},
		{Name: "year", Label: "Year", Kind: types.KindDate},
		{Name: "doi", Label: "DOI", Kind: types.KindShortText},
		{Name: "link", Label: "Link", Kind: types.KindShortText},
		{Name: "highlights", Label: "Highlights", Kind: types.KindTextList},
	},
	types.CategorySkill: {
		{Name: "category", Label: "Category", Kind: types.KindShortText, Role: RoleTitle},
		{Name: "skill_list", Label: "Skills", Kind: types.KindTextList},
		{Name: "name", Label: "Name", Kind: types.KindShortText, Role: RoleTitle},
		{Name: "level", Label: "Level", Kind: types.KindShortText},
	},
	types.CategoryAward: {
		{Name: "title", Label: "Title", Kind: types.KindShortText, Role: RoleTitle},
		{Name: "issuer", Label: "Issuer", Kind: types.KindShortText, Role: RoleSubtitle},
		{Name: "date", Label: "Date", Kind: types.KindDate},
		{Name: "description", Label: "Description", Kind: types.KindLongText},
		{Name: "highlights", Label: "Highlights", Kind: types.KindTextList},
	},
	types.CategoryVolunteering: {
		{Name: "role", Label: "Role", Kind: types.KindShortText, Role: RoleTitle},
		{Name: "organization", Label: "Organization", Kind: types.KindShortText, Role: RoleSubtitle},
		{Name: "location", Label: "Location", Kind: types.KindShortText},
		{Name: "start_date", Label: "Start Date", Kind: types.KindDate},
		{Name: "end_date", Label: "End Date", Kind: types.KindDate},
		{Name: "link", Label: "Link", Kind: types.KindShortText},
		{Name: "highlights", Label: "Highlights", Kind: types.KindTextList},
	},
	types.CategoryCertification: {
		{Name: "name", Label: "Name", Kind: types.KindShortText, Role: RoleTitle},
		{Name: "issuer", Label: "Issuer", Kind: types.KindShortText, Role: RoleSubtitle},
		{Name: "date", Label: "Date", Kind: types.KindDate},
		{Name: "expiry", Label: "Expiry", Kind: types.KindDate},
		{Name: "credential_id", Label: "Credential ID", Kind: types.KindShortText},
		{Name: "link", Label: "Link", Kind: types.KindShortText},
	},
	types.CategoryTalk: {
		{Name: "title", Label: "Title", Kind: types.KindShortText, Role: RoleTitle},
		{Name: "event", Label: "Event", Kind: types.KindShortText, Role: RoleSubtitle},
		{Name: "location", Label: "Location", Kind: types.KindShortText},
		{Name: "date", Label: "Date", Kind: types.KindDate},
		{Name: "link", Label: "Link", Kind: types.KindShortText},
		{Name: "highlights", Label: "Highlights", Kind: types.KindTextList},
	},
	types.CategoryLanguage: {
		{Name: "name", Label: "Name", Kind: types.KindShortText, Role: RoleTitle},
		{Name: "proficiency", Label: "Proficiency", Kind: types.KindShortText},
	},
	types.CategoryReference: {
		{Name: "name", Label: "Name", Kind: types.KindShortText, Role: RoleTitle},
		{Name: "title", Label: "Title", Kind: types.KindShortText},
		{Name: "organization", Label: "Organization", Kind: types.KindShortText, Role: RoleSubtitle},
		{Name: "email", Label: "Email", Kind: types.KindShortText},
		{Name: "phone", Label: "Phone", Kind: types.KindShortText},
		{Name: "relationship", Label: "Relationship", Kind: types.KindShortText},
	},
}

// Describe returns the field specs for a category, in display order.
// Returns types.ErrUnknownCategory for an unrecognized category.
func Describe(category types.Category) ([]FieldSpec, error) {
	specs, ok := registry[category]
	if !ok {
		return nil, types.ErrUnknownCategory
	}
	out := make([]FieldSpec, len(specs))
	copy(out, specs)
	return out, nil
}

// Lookup returns the spec for one field of a category. The boolean is
// false when either the category or the field is unrecognized.
func Lookup(category types.Category, fieldName string) (FieldSpec, bool) {
	for _, spec := range registry[category] {
		if spec.Name == fieldName {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// DefaultFields returns a zero-valued field map for a category, one entry
// per declared spec. Returns types.ErrUnknownCategory for an unrecognized
// category.
func DefaultFields(category types.Category) (map[string]types.FieldValue, error) {
	specs, ok := registry[category]
	if !ok {
		return nil, types.ErrUnknownCategory
	}
	fields := make(map[string]types.FieldValue, len(specs))
	for _, spec := range specs {
		fields[spec.Name] = types.FieldValue{Kind: spec.Kind}
	}
	return fields, nil
}

// Retag rewrites the Kind of each field value to its declared kind. JSON
// decoding can only distinguish string from list; this restores the
// long-text and date tags. Fields not declared for the category keep
// their inferred kind.
func Retag(category types.Category, fields map[string]types.FieldValue) {
	for name, value := range fields {
		spec, ok := Lookup(category, name)
		if !ok || spec.Kind == value.Kind {
			continue
		}
		// A list cannot be retagged as text or vice versa.
		if (spec.Kind == types.KindTextList) != (value.Kind == types.KindTextList) {
			continue
		}
		value.Kind = spec.Kind
		fields[name] = value
	}
}
