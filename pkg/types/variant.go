package types

import "time"

// Rules is the opaque per-variant configuration bag. It is persisted
// verbatim; only the include/exclude tag filters are interpreted here.
type Rules map[string]any

// Rule keys interpreted by the auto-grouping fallback.
const (
	RuleIncludeTags = "include_tags"
	RuleExcludeTags = "exclude_tags"
)

// tagList reads a []string-valued rule, tolerating the []any shape that
// JSON decoding produces.
func (r Rules) tagList(key string) []string {
	switch v := r[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Matches reports whether an entry with the given tags passes the
// variant's tag filters: at least one include tag when any are set, and
// none of the exclude tags.
func (r Rules) Matches(tags []string) bool {
	include := r.tagList(RuleIncludeTags)
	exclude := r.tagList(RuleExcludeTags)

	tagSet := make(map[string]bool, len(tags))
	for _, t := range tags {
		tagSet[t] = true
	}

	if len(include) > 0 {
		hit := false
		for _, t := range include {
			if tagSet[t] {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	for _, t := range exclude {
		if tagSet[t] {
			return false
		}
	}
	return true
}

// Variant is a named, ordered selection of entries destined for one
// exported document. SectionIDs is the declared section order; the
// per-section entry placement lives in the variant's Layout.
type Variant struct {
	VariantID  string
	Name       string
	Rules      Rules
	SectionIDs []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
