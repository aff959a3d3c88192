package types

import (
	"encoding/json"
	"strings"
)

// ValueKind discriminates the shapes an entry field value can take.
type ValueKind string

// Recognized field value kinds.
const (
	KindShortText ValueKind = "short_text"
	KindLongText  ValueKind = "long_text"
	KindDate      ValueKind = "date"
	KindTextList  ValueKind = "text_list"
)

// FieldValue is a tagged union over the recognized value kinds. Text holds
// the value for the three text-like kinds; List holds it for KindTextList.
type FieldValue struct {
	Kind ValueKind
	Text string
	List []string
}

// Text returns a short-text field value.
func Text(s string) FieldValue {
	return FieldValue{Kind: KindShortText, Text: s}
}

// LongText returns a long-text field value.
func LongText(s string) FieldValue {
	return FieldValue{Kind: KindLongText, Text: s}
}

// Date returns a date field value. Dates are kept as user-supplied strings
// (e.g. "March 2024", "Present"); no calendar parsing is applied.
func Date(s string) FieldValue {
	return FieldValue{Kind: KindDate, Text: s}
}

// TextList returns a list-of-short-text field value.
func TextList(items ...string) FieldValue {
	return FieldValue{Kind: KindTextList, List: items}
}

// IsZero reports whether the value carries no content.
func (v FieldValue) IsZero() bool {
	if v.Kind == KindTextList {
		return len(v.List) == 0
	}
	return v.Text == ""
}

// AsString returns the textual form of the value. List values are joined
// with ", " so every kind has a printable representation.
func (v FieldValue) AsString() string {
	if v.Kind == KindTextList {
		return strings.Join(v.List, ", ")
	}
	return v.Text
}

// AsList returns the list form of the value. Text-like kinds yield a
// single-element list, or an empty list when blank.
func (v FieldValue) AsList() []string {
	if v.Kind == KindTextList {
		return v.List
	}
	if v.Text == "" {
		return nil
	}
	return []string{v.Text}
}

// MarshalJSON encodes text-like kinds as JSON strings and list values as
// JSON arrays, matching the stored entry document shape.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	if v.Kind == KindTextList {
		list := v.List
		if list == nil {
			list = []string{}
		}
		return json.Marshal(list)
	}
	return json.Marshal(v.Text)
}

// UnmarshalJSON decodes a JSON string into a short-text value and a JSON
// array into a text-list value. The store re-tags values with their
// declared kind after decoding; this only distinguishes string from list.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = FieldValue{Kind: KindShortText, Text: s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*v = FieldValue{Kind: KindTextList, List: list}
	return nil
}
