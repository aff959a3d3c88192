package types

import (
	"sort"
	"time"
)

// Category identifies the kind of career-history record an entry holds.
type Category string

// Recognized entry categories.
const (
	CategoryExperience    Category = "experience"
	CategoryEducation     Category = "education"
	CategoryProject       Category = "project"
	CategoryPublication   Category = "publication"
	CategorySkill         Category = "skill"
	CategoryAward         Category = "award"
	CategoryVolunteering  Category = "volunteering"
	CategoryCertification Category = "certification"
	CategoryTalk          Category = "talk"
	CategoryLanguage      Category = "language"
	CategoryReference     Category = "reference"
)

// validCategories is the set of recognized category values.
var validCategories = map[Category]bool{
	CategoryExperience:    true,
	CategoryEducation:     true,
	CategoryProject:       true,
	CategoryPublication:   true,
	CategorySkill:         true,
	CategoryAward:         true,
	CategoryVolunteering:  true,
	CategoryCertification: true,
	CategoryTalk:          true,
	CategoryLanguage:      true,
	CategoryReference:     true,
}

// categoryOrder fixes the enumeration order for Categories().
var categoryOrder = []Category{
	CategoryExperience,
	CategoryEducation,
	CategoryProject,
	CategoryPublication,
	CategorySkill,
	CategoryAward,
	CategoryVolunteering,
	CategoryCertification,
	CategoryTalk,
	CategoryLanguage,
	CategoryReference,
}

// Valid reports whether c is a recognized category.
func (c Category) Valid() bool {
	return validCategories[c]
}

// Categories returns all recognized categories in their canonical order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Entry is one atomic career-history record. Identity is immutable after
// creation; Fields and Tags are mutable.
type Entry struct {
	EntryID   string                // UUID v7, generated on creation.
	Category  Category              // One of the recognized categories.
	Fields    map[string]FieldValue // Values keyed by field name; shape set by the schema registry.
	Tags      []string              // Sorted, duplicate-free tag set.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Field returns the named field value, or a zero value when unset.
func (e *Entry) Field(name string) FieldValue {
	if e.Fields == nil {
		return FieldValue{}
	}
	return e.Fields[name]
}

// SetField sets the named field value.
func (e *Entry) SetField(name string, v FieldValue) {
	if e.Fields == nil {
		e.Fields = make(map[string]FieldValue)
	}
	e.Fields[name] = v
	e.UpdatedAt = time.Now().UTC()
}

// HasTag reports whether the entry carries the given tag.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTag adds a tag, keeping the tag set sorted and duplicate-free.
// Adding an existing tag is a no-op.
func (e *Entry) AddTag(tag string) {
	if tag == "" || e.HasTag(tag) {
		return
	}
	e.Tags = append(e.Tags, tag)
	sort.Strings(e.Tags)
	e.UpdatedAt = time.Now().UTC()
}

// RemoveTag removes a tag. Removing an absent tag is a no-op.
func (e *Entry) RemoveTag(tag string) {
	for i, t := range e.Tags {
		if t == tag {
			e.Tags = append(e.Tags[:i], e.Tags[i+1:]...)
			e.UpdatedAt = time.Now().UTC()
			return
		}
	}
}
