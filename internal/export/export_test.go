package export

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seewee/seewee/pkg/types"
)

type fakeSource struct {
	variant *types.Variant
	layout  *types.Layout
	entries []*types.Entry
	profile *types.Profile
}

func (f *fakeSource) GetVariant(id string) (*types.Variant, error) {
	if f.variant == nil || f.variant.VariantID != id {
		return nil, types.ErrNotFound
	}
	return f.variant, nil
}

func (f *fakeSource) LoadLayout(variantID string) (*types.Layout, error) {
	return f.layout, nil
}

func (f *fakeSource) ListEntries(category types.Category) ([]*types.Entry, error) {
	return f.entries, nil
}

func (f *fakeSource) GetProfile() (*types.Profile, error) {
	if f.profile != nil {
		return f.profile, nil
	}
	return &types.Profile{}, nil
}

func entry(id string, category types.Category, fields map[string]types.FieldValue, tags ...string) *types.Entry {
	return &types.Entry{EntryID: id, Category: category, Fields: fields, Tags: tags}
}

func testSource() *fakeSource {
	layout := types.NewLayout("v1", []string{"experience", "education"})
	layout.Sections[0].EntryIDs = []string{"e2", "e1"}
	layout.Sections[1].EntryIDs = []string{"e3"}

	return &fakeSource{
		variant: &types.Variant{VariantID: "v1", Name: "main", SectionIDs: []string{"experience", "education"}},
		layout:  layout,
		entries: []*types.Entry{
			entry("e1", types.CategoryExperience, map[string]types.FieldValue{
				"role":       types.Text("Engineer"),
				"company":    types.Text("Initech"),
				"start_date": types.Date("2019-01"),
				"end_date":   types.Date("2021-06"),
				"highlights": types.TextList("Built the pipeline", "Cut costs by 40%"),
			}, "tech"),
			entry("e2", types.CategoryExperience, map[string]types.FieldValue{
				"role":    types.Text("Manager"),
				"company": types.Text("Globex & Sons"),
			}, "management"),
			entry("e3", types.CategoryEducation, map[string]types.FieldValue{
				"degree": types.Text("BSc Computer Science"),
				"school": types.Text("State University"),
			}),
		},
		profile: &types.Profile{
			Personal: types.Personal{FullName: "Ada Lovelace"},
			Links:    types.Links{Email: "ada@example.com"},
			Content:  types.Content{Summary: "Engineer with 100% uptime"},
		},
	}
}

func TestResolveManualLayoutOrder(t *testing.T) {
	doc, err := Resolve(testSource(), "v1")
	require.NoError(t, err)

	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "experience", doc.Sections[0].ID)
	assert.Equal(t, "Professional Experience", doc.Sections[0].Title)

	var ids []string
	for _, e := range doc.Sections[0].Items {
		ids = append(ids, e.EntryID)
	}
	assert.Equal(t, []string{"e2", "e1"}, ids, "stored ordering must be used verbatim")
	assert.Empty(t, doc.Warnings)
}

func TestResolveSkipsDanglingReferences(t *testing.T) {
	src := testSource()
	src.layout.Sections[0].EntryIDs = []string{"e2", "gone-1", "e1", "gone-2"}

	doc, err := Resolve(src, "v1")
	require.NoError(t, err)

	require.Len(t, doc.Sections[0].Items, 2)
	require.Len(t, doc.Warnings, 2, "one warning per dangling reference")
	assert.Contains(t, doc.Warnings[0], "gone-1")
	assert.Contains(t, doc.Warnings[1], "gone-2")

	// Resolution never mutates the stored layout.
	assert.Equal(t, []string{"e2", "gone-1", "e1", "gone-2"}, src.layout.Sections[0].EntryIDs)
}

func TestResolveAutoGroupFallback(t *testing.T) {
	src := testSource()
	src.layout = types.NewLayout("v1", []string{"experience", "education"})
	src.variant.Rules = types.Rules{types.RuleExcludeTags: []string{"management"}}

	doc, err := Resolve(src, "v1")
	require.NoError(t, err)

	require.Len(t, doc.Sections, 2)
	require.Len(t, doc.Sections[0].Items, 1, "excluded tag must filter e2")
	assert.Equal(t, "e1", doc.Sections[0].Items[0].EntryID)
	require.Len(t, doc.Sections[1].Items, 1)
	assert.Equal(t, "e3", doc.Sections[1].Items[0].EntryID)
}

func TestResolveUnknownVariant(t *testing.T) {
	_, err := Resolve(testSource(), "nope")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestTexEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"AT&T 100% $5 #1", `AT\&T 100\% \$5 \#1`},
		{"snake_case {brace}", `snake\_case \{brace\}`},
		{`back\slash`, `back\textbackslash{}slash`},
		{"~ and ^", `\textasciitilde{} and \textasciicircum{}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, texEscape(tt.in), "input %q", tt.in)
	}
}

func TestRenderLaTeX(t *testing.T) {
	doc, err := Resolve(testSource(), "v1")
	require.NoError(t, err)

	tex, err := RenderLaTeX(doc)
	require.NoError(t, err)

	s := string(tex)
	assert.Contains(t, s, `\documentclass`)
	assert.Contains(t, s, "Ada Lovelace")
	assert.Contains(t, s, `Globex \& Sons`, "field text must be escaped")
	assert.Contains(t, s, `Cut costs by 40\%`)
	assert.Contains(t, s, "Professional Experience")
	assert.NotContains(t, s, "2026", "output must not embed wall-clock time")

	again, err := RenderLaTeX(doc)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(tex, again), "same snapshot must render identical bytes")
}

func TestRenderViewer(t *testing.T) {
	doc, err := Resolve(testSource(), "v1")
	require.NoError(t, err)

	files, err := RenderViewer(doc)
	require.NoError(t, err)
	require.Contains(t, files, "index.html")
	require.Contains(t, files, "app.js")

	html := string(files["index.html"])
	assert.Contains(t, html, "Ada Lovelace")
	assert.Contains(t, html, "window.SEEWEE_DOC")
	assert.Contains(t, html, `"variant_id":"v1"`)

	again, err := RenderViewer(doc)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(files["index.html"], again["index.html"]))
}

func TestRenderInterchange(t *testing.T) {
	doc, err := Resolve(testSource(), "v1")
	require.NoError(t, err)

	files, err := RenderInterchange(doc)
	require.NoError(t, err)
	for _, name := range []string{"experience.csv", "copy_blocks.txt", "mapping.json", "README.txt"} {
		require.Contains(t, files, name)
	}

	csvText := string(files["experience.csv"])
	lines := strings.Split(strings.TrimSpace(csvText), "\n")
	assert.Equal(t, "entry_type,title,company,location,start_date,end_date,description,tags", lines[0])
	assert.Equal(t, 4, len(lines), "header plus one row per placed entry")
	assert.Contains(t, csvText, "Engineer")

	blocks := string(files["copy_blocks.txt"])
	assert.Contains(t, blocks, "Manager - Globex & Sons")
	assert.Contains(t, blocks, "Dates: 2019-01 - 2021-06")
	assert.Contains(t, blocks, "- Built the pipeline")

	mapping := string(files["mapping.json"])
	assert.Contains(t, mapping, `"variant_id": "v1"`)
	assert.NotContains(t, mapping, "generated_at")
}

func TestBuildBundleDeterministic(t *testing.T) {
	src := testSource()
	ctx := context.Background()

	for _, format := range []Format{FormatTypesetSource, FormatViewer, FormatInterchange} {
		first, err := BuildBundle(ctx, src, "v1", format)
		require.NoError(t, err, "format %s", format)
		second, err := BuildBundle(ctx, src, "v1", format)
		require.NoError(t, err, "format %s", format)

		assert.Equal(t, first.Hash, second.Hash, "format %s", format)

		var zip1, zip2 bytes.Buffer
		require.NoError(t, first.WriteZip(&zip1))
		require.NoError(t, second.WriteZip(&zip2))
		assert.True(t, bytes.Equal(zip1.Bytes(), zip2.Bytes()),
			"format %s must produce identical archives", format)
	}
}

func TestBuildBundleManifestLast(t *testing.T) {
	b, err := BuildBundle(context.Background(), testSource(), "v1", FormatTypesetSource)
	require.NoError(t, err)

	require.NotEmpty(t, b.Files)
	last := b.Files[len(b.Files)-1]
	assert.Equal(t, "manifest.json", last.Name)
	assert.Contains(t, string(last.Data), b.Hash)
}

func TestBuildBundleCarriesWarnings(t *testing.T) {
	src := testSource()
	src.layout.Sections[0].EntryIDs = append(src.layout.Sections[0].EntryIDs, "gone")

	b, err := BuildBundle(context.Background(), src, "v1", FormatInterchange)
	require.NoError(t, err)
	require.Len(t, b.Warnings, 1)
	assert.Contains(t, b.Warnings[0], "gone")
}

func TestBuildBundleUnknownFormat(t *testing.T) {
	_, err := BuildBundle(context.Background(), testSource(), "v1", Format("carrier-pigeon"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export format")
}

func bundleFileNames(b *Bundle) []string {
	names := make([]string, 0, len(b.Files))
	for _, f := range b.Files {
		names = append(names, f.Name)
	}
	return names
}

func TestBuildBundleCompileFailureKeepsSource(t *testing.T) {
	orig := latexmkArgs
	latexmkArgs = []string{"sh", "-c", "echo engine error >&2; exit 1"}
	defer func() { latexmkArgs = orig }()

	b, err := BuildBundle(context.Background(), testSource(), "v1", FormatTypesetCompiled)
	require.Error(t, err)

	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Stderr, "engine error")

	require.NotNil(t, b, "failed compilation must still yield a source bundle")
	names := bundleFileNames(b)
	assert.Contains(t, names, "main.tex")
	assert.Contains(t, names, "manifest.json")
	assert.NotContains(t, names, "main.pdf", "compiled document must be withheld")
	assert.NotEmpty(t, b.Hash)
}

func TestBuildBundleCompileTimeoutKeepsSource(t *testing.T) {
	orig := latexmkArgs
	latexmkArgs = []string{"sleep", "30"}
	defer func() { latexmkArgs = orig }()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	b, err := BuildBundle(ctx, testSource(), "v1", FormatTypesetCompiled)
	require.Error(t, err)

	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.ErrorIs(t, cerr.Err, context.DeadlineExceeded)

	require.NotNil(t, b)
	names := bundleFileNames(b)
	assert.Contains(t, names, "main.tex")
	assert.NotContains(t, names, "main.pdf")
}

func TestCompilePDFTimeout(t *testing.T) {
	orig := latexmkArgs
	latexmkArgs = []string{"sleep", "30"}
	defer func() { latexmkArgs = orig }()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := CompilePDF(ctx, []byte("\\documentclass{article}"))
	require.Error(t, err)

	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.ErrorIs(t, cerr.Err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second, "hung engine must be killed promptly")
}

func TestCompilePDFMissingBinary(t *testing.T) {
	orig := latexmkArgs
	latexmkArgs = []string{"seewee-no-such-binary"}
	defer func() { latexmkArgs = orig }()

	_, err := CompilePDF(context.Background(), []byte("x"))
	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
}

func TestCompileErrorOutputTail(t *testing.T) {
	orig := latexmkArgs
	latexmkArgs = []string{"sh", "-c", "echo engine output; echo engine error >&2; exit 1"}
	defer func() { latexmkArgs = orig }()

	_, err := CompilePDF(context.Background(), []byte("x"))
	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Stdout, "engine output")
	assert.Contains(t, cerr.Stderr, "engine error")
	assert.False(t, errors.Is(cerr.Err, context.DeadlineExceeded))
}
