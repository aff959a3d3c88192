package export

import (
	"strings"

	"github.com/seewee/seewee/internal/schema"
	"github.com/seewee/seewee/pkg/types"
)

// itemView is the renderer-agnostic shape of one entry: the display
// fallback chains applied once, shared across all output formats.
type itemView struct {
	EntryID  string
	Category string
	Title    string
	Subtitle string
	Dates    string
	Bullets  []string
	Body     string
	Tags     []string
}

func viewOf(e *types.Entry) itemView {
	v := itemView{
		EntryID:  e.EntryID,
		Category: string(e.Category),
		Title:    schema.Title(e),
		Subtitle: schema.Subtitle(e),
		Dates:    schema.DateRange(e),
		Bullets:  bulletsOf(e),
		Tags:     e.Tags,
	}
	if v.Body = e.Field("description").AsString(); v.Body == "" {
		v.Body = e.Field("summary").AsString()
	}
	return v
}

// bulletsOf collects the entry's list content: highlights first, then
// skill or tech lists for entries that carry those instead.
func bulletsOf(e *types.Entry) []string {
	for _, name := range []string{"highlights", "skill_list", "tech_stack"} {
		items := e.Field(name).AsList()
		var out []string
		for _, it := range items {
			if strings.TrimSpace(it) != "" {
				out = append(out, it)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// sectionView is one section with its items reduced to views. Sections
// with no items are dropped before rendering.
type sectionView struct {
	ID    string
	Title string
	Items []itemView
}

func sectionViews(doc *Document) []sectionView {
	var out []sectionView
	for _, s := range doc.Sections {
		if len(s.Items) == 0 {
			continue
		}
		sv := sectionView{ID: s.ID, Title: s.Title}
		for _, e := range s.Items {
			sv.Items = append(sv.Items, viewOf(e))
		}
		out = append(out, sv)
	}
	return out
}
