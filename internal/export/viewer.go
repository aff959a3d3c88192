package export

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
)

// viewerDoc is the JSON payload embedded in the viewer page. Struct
// fields keep the encoding order fixed.
type viewerDoc struct {
	VariantID string          `json:"variant_id"`
	FullName  string          `json:"full_name"`
	Contact   []string        `json:"contact"`
	Summary   string          `json:"summary"`
	Sections  []viewerSection `json:"sections"`
}

type viewerSection struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Items []viewerItem `json:"items"`
}

type viewerItem struct {
	EntryID  string   `json:"entry_id"`
	Category string   `json:"category"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Dates    string   `json:"dates"`
	Body     string   `json:"body"`
	Bullets  []string `json:"bullets"`
	Tags     []string `json:"tags"`
}

const viewerPage = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      font-family: Georgia, 'Times New Roman', serif;
      margin: 0;
      background: #fafafa;
      color: #1a1a1a;
      line-height: 1.6;
    }
    .container {
      max-width: 850px;
      margin: 0 auto;
      padding: 40px 32px;
      background: #fff;
      min-height: 100vh;
      box-shadow: 0 0 40px rgba(0,0,0,0.08);
    }
    header {
      text-align: center;
      margin-bottom: 32px;
      padding-bottom: 24px;
      border-bottom: 2px solid #1a1a1a;
    }
    h1 { margin: 0; font-size: 28px; font-weight: 700; }
    .contact { margin-top: 12px; font-size: 14px; color: #444; }
    .summary { font-size: 15px; color: #333; margin-bottom: 8px; }
    section { margin: 28px 0; }
    h2 {
      font-size: 16px;
      font-weight: 700;
      text-transform: uppercase;
      letter-spacing: 1.5px;
      border-bottom: 1px solid #ddd;
      padding-bottom: 8px;
      margin: 0 0 16px 0;
    }
    .entry { margin: 16px 0; }
    .entry-header {
      display: flex;
      justify-content: space-between;
      align-items: baseline;
      flex-wrap: wrap;
      gap: 8px;
    }
    .entry-title { font-weight: 700; font-size: 15px; }
    .entry-date { font-size: 13px; color: #666; font-style: italic; white-space: nowrap; }
    .entry-subtitle { font-size: 14px; color: #444; margin-bottom: 6px; }
    .entry-body { font-size: 14px; color: #333; }
    ul { margin: 8px 0 0 0; padding-left: 20px; }
    li { margin: 4px 0; font-size: 14px; }
  </style>
</head>
<body>
  <div class="container">
    <header>
      <h1 id="name"></h1>
      <div class="contact" id="contact"></div>
    </header>
    <main id="root"></main>
  </div>
  <script>
    window.SEEWEE_DOC = {{.DocJSON}};
  </script>
  <script src="./app.js"></script>
</body>
</html>
`

const viewerScript = `function renderItem(item) {
  const div = document.createElement("div");
  div.className = "entry";

  const header = document.createElement("div");
  header.className = "entry-header";
  const title = document.createElement("span");
  title.className = "entry-title";
  title.textContent = item.title || item.category;
  header.appendChild(title);
  if (item.dates) {
    const date = document.createElement("span");
    date.className = "entry-date";
    date.textContent = item.dates;
    header.appendChild(date);
  }
  div.appendChild(header);

  if (item.subtitle) {
    const sub = document.createElement("div");
    sub.className = "entry-subtitle";
    sub.textContent = item.subtitle;
    div.appendChild(sub);
  }

  if (item.body) {
    const body = document.createElement("div");
    body.className = "entry-body";
    body.textContent = item.body;
    div.appendChild(body);
  }

  if (item.bullets && item.bullets.length) {
    const ul = document.createElement("ul");
    item.bullets.forEach(function (b) {
      const li = document.createElement("li");
      li.textContent = b;
      ul.appendChild(li);
    });
    div.appendChild(ul);
  }
  return div;
}

function render() {
  const doc = window.SEEWEE_DOC;
  document.getElementById("name").textContent = doc.full_name || "Curriculum Vitae";
  document.getElementById("contact").textContent = (doc.contact || []).join("  |  ");

  const root = document.getElementById("root");
  root.innerHTML = "";

  if (doc.summary) {
    const p = document.createElement("div");
    p.className = "summary";
    p.textContent = doc.summary;
    root.appendChild(p);
  }

  (doc.sections || []).forEach(function (s) {
    if (!s.items || s.items.length === 0) return;
    const section = document.createElement("section");
    const h2 = document.createElement("h2");
    h2.textContent = s.title;
    section.appendChild(h2);
    s.items.forEach(function (item) {
      section.appendChild(renderItem(item));
    });
    root.appendChild(section);
  });
}

render();
`

var viewerTmpl = template.Must(template.New("viewer").Parse(viewerPage))

// RenderViewer renders the self-contained static viewer: an index.html
// carrying the document as JSON plus the script that draws it. No
// network access is needed to open the result.
func RenderViewer(doc *Document) (map[string][]byte, error) {
	vd := viewerDoc{
		VariantID: doc.VariantID,
		FullName:  doc.Profile.Personal.FullName,
		Summary:   doc.Profile.Content.Summary,
	}
	for _, part := range []string{
		doc.Profile.Links.Email,
		doc.Profile.Links.Phone,
		doc.Profile.Links.GitHub,
		doc.Profile.Links.LinkedIn,
		doc.Profile.Links.Website,
	} {
		if part != "" {
			vd.Contact = append(vd.Contact, part)
		}
	}
	for _, s := range sectionViews(doc) {
		vs := viewerSection{ID: s.ID, Title: s.Title}
		for _, it := range s.Items {
			vs.Items = append(vs.Items, viewerItem{
				EntryID:  it.EntryID,
				Category: it.Category,
				Title:    it.Title,
				Subtitle: it.Subtitle,
				Dates:    it.Dates,
				Body:     it.Body,
				Bullets:  it.Bullets,
				Tags:     it.Tags,
			})
		}
		vd.Sections = append(vd.Sections, vs)
	}

	docJSON, err := json.Marshal(vd)
	if err != nil {
		return nil, fmt.Errorf("encoding viewer document: %w", err)
	}

	var page strings.Builder
	err = viewerTmpl.Execute(&page, struct {
		Title   string
		DocJSON template.JS
	}{
		Title:   pageTitle(vd.FullName),
		DocJSON: template.JS(docJSON),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering viewer page: %w", err)
	}

	return map[string][]byte{
		"index.html": []byte(page.String()),
		"app.js":     []byte(viewerScript),
	}, nil
}

func pageTitle(fullName string) string {
	if fullName == "" {
		return "Curriculum Vitae"
	}
	return fullName
}
