package export

import (
	"fmt"
	"strings"
	"text/template"
)

// texEscape escapes the characters LaTeX treats specially in running
// text.
func texEscape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\textbackslash{}`)
		case '&', '%', '$', '#', '_', '{', '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '~':
			b.WriteString(`\textasciitilde{}`)
		case '^':
			b.WriteString(`\textasciicircum{}`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

const texTemplate = `\documentclass[11pt,a4paper]{article}
\usepackage[margin=2cm]{geometry}
\usepackage{enumitem}
\usepackage[hidelinks]{hyperref}
\setlist[itemize]{leftmargin=*,nosep}
\pagestyle{empty}

\newcommand{\cvsection}[1]{\section*{\uppercase{#1}}\hrule\vspace{0.5em}}

\begin{document}

\begin{center}
{\LARGE\bfseries {{esc .FullName}}}\\[0.4em]
{{- if .ContactLine}}
{\small {{esc .ContactLine}}}
{{- end}}
\end{center}
{{- if .Summary}}

\noindent {{esc .Summary}}
{{- end}}
{{- range .Sections}}

\cvsection{ {{- esc .Title -}} }
{{- range .Items}}

\noindent\textbf{ {{- esc .Title -}} }{{if .Dates}} \hfill {{esc .Dates}}{{end}}\\
{{- if .Subtitle}}
\textit{ {{- esc .Subtitle -}} }\\
{{- end}}
{{- if .Body}}
{{esc .Body}}
{{- end}}
{{- if .Bullets}}
\begin{itemize}
{{- range .Bullets}}
  \item {{esc .}}
{{- end}}
\end{itemize}
{{- end}}
{{- end}}
{{- end}}

\end{document}
`

var texTmpl = template.Must(template.New("cv").Funcs(template.FuncMap{
	"esc": texEscape,
}).Parse(texTemplate))

type texContext struct {
	FullName    string
	ContactLine string
	Summary     string
	Sections    []sectionView
}

// RenderLaTeX renders the document to a standalone .tex source. The
// output is a pure function of the resolved document.
func RenderLaTeX(doc *Document) ([]byte, error) {
	ctx := texContext{
		FullName: doc.Profile.Personal.FullName,
		Summary:  doc.Profile.Content.Summary,
		Sections: sectionViews(doc),
	}
	if ctx.FullName == "" {
		ctx.FullName = "Your Name"
	}

	var contact []string
	for _, part := range []string{
		doc.Profile.Links.Email,
		doc.Profile.Links.Phone,
		doc.Profile.Links.GitHub,
		doc.Profile.Links.LinkedIn,
		doc.Profile.Links.Website,
	} {
		if part != "" {
			contact = append(contact, part)
		}
	}
	ctx.ContactLine = strings.Join(contact, "  |  ")

	var buf strings.Builder
	if err := texTmpl.Execute(&buf, ctx); err != nil {
		return nil, fmt.Errorf("rendering tex: %w", err)
	}
	return []byte(buf.String()), nil
}
