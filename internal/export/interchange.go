package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
)

// interchangeRow is one flattened entry for the manual-entry bundle.
type interchangeRow struct {
	EntryType   string `json:"entry_type"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
}

var interchangeHeader = []string{
	"entry_type", "title", "company", "location", "start_date", "end_date", "description", "tags",
}

const interchangeReadme = `Seewee interchange export (manual)

Suggested flow:
1) Open your target profile editor
2) For each row in experience.csv:
   - Copy title/company/location/dates
   - Paste the bullet list into Description
3) Optional: keep copy_blocks.txt open for quick copy/paste

Notes:
- This is NOT automated form-filling.
- Field names are best-effort based on your entry fields.
`

// RenderInterchange renders the copy-paste bundle: a flat CSV, plain
// text copy blocks, the same rows as JSON, and a README describing the
// manual flow.
func RenderInterchange(doc *Document) (map[string][]byte, error) {
	var rows []interchangeRow
	var blocks []string

	for _, s := range doc.Sections {
		for _, e := range s.Items {
			v := viewOf(e)
			row := interchangeRow{
				EntryType:   v.Category,
				Title:       v.Title,
				Company:     v.Subtitle,
				Location:    e.Field("location").AsString(),
				StartDate:   e.Field("start_date").AsString(),
				EndDate:     e.Field("end_date").AsString(),
				Description: bulletLines(v.Bullets),
				Tags:        strings.Join(e.Tags, ","),
			}
			rows = append(rows, row)

			header := row.Title
			if row.Company != "" {
				header += " - " + row.Company
			}
			blocks = append(blocks, header)
			if row.Location != "" {
				blocks = append(blocks, "Location: "+row.Location)
			}
			if row.StartDate != "" || row.EndDate != "" {
				blocks = append(blocks, strings.TrimSpace(fmt.Sprintf("Dates: %s - %s", row.StartDate, row.EndDate)))
			}
			if row.Description != "" {
				blocks = append(blocks, row.Description)
			}
			blocks = append(blocks, "")
		}
	}

	var csvBuf bytes.Buffer
	w := csv.NewWriter(&csvBuf)
	if err := w.Write(interchangeHeader); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range rows {
		rec := []string{r.EntryType, r.Title, r.Company, r.Location, r.StartDate, r.EndDate, r.Description, r.Tags}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	mapping, err := json.MarshalIndent(struct {
		VariantID string           `json:"variant_id"`
		Rows      []interchangeRow `json:"rows"`
	}{doc.VariantID, rows}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding mapping: %w", err)
	}

	return map[string][]byte{
		"experience.csv":  csvBuf.Bytes(),
		"copy_blocks.txt": []byte(strings.TrimSpace(strings.Join(blocks, "\n")) + "\n"),
		"mapping.json":    append(mapping, '\n'),
		"README.txt":      []byte(interchangeReadme),
	}, nil
}

func bulletLines(bullets []string) string {
	var b strings.Builder
	for i, bl := range bullets {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(bl)
	}
	return b.String()
}
