package schema

import (
	"strings"

	"github.com/seewee/seewee/pkg/types"
)

// Fallback chains for the derived display labels. Candidates are tried in
// priority order; the first populated field wins.
var (
	titleCandidates    = []string{"role", "title", "name", "degree", "category"}
	subtitleCandidates = []string{"company", "organization", "school", "issuer", "venue", "event"}
)

// Title derives a human display title for an entry: the first populated
// title-role field, falling back to the category name itself.
func Title(e *types.Entry) string {
	for _, name := range titleCandidates {
		if v := e.Field(name); !v.IsZero() {
			return v.AsString()
		}
	}
	return string(e.Category)
}

// Subtitle derives a human display subtitle for an entry: the first
// populated organization-like field, defaulting to the empty string.
func Subtitle(e *types.Entry) string {
	for _, name := range subtitleCandidates {
		if v := e.Field(name); !v.IsZero() {
			return v.AsString()
		}
	}
	return ""
}

// DateRange builds a display date span from an entry's date fields:
// "start - end", "start - Present" for open ranges, or the single
// date/year field when no range is set.
func DateRange(e *types.Entry) string {
	start := e.Field("start_date").AsString()
	end := e.Field("end_date").AsString()
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start + " - Present"
	case end != "":
		return end
	}
	for _, name := range []string{"date", "year", "expiry"} {
		if v := e.Field(name); !v.IsZero() {
			return v.AsString()
		}
	}
	return ""
}

// sectionTitles maps well-known section ids to their display headings.
var sectionTitles = map[string]string{
	"experience":     "Professional Experience",
	"education":      "Education",
	"projects":       "Projects",
	"publications":   "Selected Publications",
	"awards":         "Key Achievements & Awards",
	"volunteering":   "Volunteering & Open Source Contributions",
	"skills":         "Technical Skills",
	"teaching":       "Teaching Experience",
	"certifications": "Certifications",
	"languages":      "Languages",
	"talks":          "Talks & Presentations",
	"interests":      "Interests",
	"references":     "References",
}

// SectionTitle returns the display heading for a section id. Unknown ids
// are title-cased with underscores turned into spaces.
func SectionTitle(sectionID string) string {
	if title, ok := sectionTitles[sectionID]; ok {
		return title
	}
	words := strings.Split(strings.ReplaceAll(sectionID, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
