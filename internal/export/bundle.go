package export

import (
	"archive/zip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

// Format selects the export renderer.
type Format string

const (
	FormatTypesetSource   Format = "typeset-source"
	FormatTypesetCompiled Format = "typeset-compiled"
	FormatViewer          Format = "static-viewer"
	FormatInterchange     Format = "interchange"
)

// Formats returns the supported export formats.
func Formats() []Format {
	return []Format{FormatTypesetSource, FormatTypesetCompiled, FormatViewer, FormatInterchange}
}

// File is one named member of a bundle.
type File struct {
	Name string
	Data []byte
}

// Bundle is a finished export: the rendered files plus a manifest, with
// a content hash over everything. Two bundles built from the same
// stored snapshot hash identically.
type Bundle struct {
	VariantID string
	Format    Format
	Files     []File
	Hash      string
	Warnings  []string
}

type manifest struct {
	VariantID string         `json:"variant_id"`
	Format    string         `json:"format"`
	Files     []manifestFile `json:"files"`
	Hash      string         `json:"hash"`
}

type manifestFile struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// BuildBundle resolves the variant and renders it in the requested
// format. Compilation runs under ctx; the pure renderers ignore it.
//
// When typesetting fails or times out, the returned error wraps a
// *CompileError and the bundle is still returned with the source but
// without the compiled document. Callers that get a non-nil bundle
// alongside a non-nil error hold a usable degraded export.
func BuildBundle(ctx context.Context, src Source, variantID string, format Format) (*Bundle, error) {
	doc, err := Resolve(src, variantID)
	if err != nil {
		return nil, err
	}

	var files map[string][]byte
	var compileErr error
	switch format {
	case FormatTypesetSource:
		tex, err := RenderLaTeX(doc)
		if err != nil {
			return nil, err
		}
		files = map[string][]byte{"main.tex": tex}
	case FormatTypesetCompiled:
		tex, err := RenderLaTeX(doc)
		if err != nil {
			return nil, err
		}
		files = map[string][]byte{"main.tex": tex}
		pdf, err := CompilePDF(ctx, tex)
		switch {
		case err == nil:
			files["main.pdf"] = pdf
		case errors.As(err, new(*CompileError)):
			// The engine failed; withhold the pdf, keep the source.
			compileErr = err
		default:
			return nil, err
		}
	case FormatViewer:
		files, err = RenderViewer(doc)
		if err != nil {
			return nil, err
		}
	case FormatInterchange:
		files, err = RenderInterchange(doc)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}

	b := &Bundle{
		VariantID: variantID,
		Format:    format,
		Warnings:  doc.Warnings,
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.Files = append(b.Files, File{Name: name, Data: files[name]})
	}
	b.Hash = contentHash(b.Files)

	man := manifest{
		VariantID: variantID,
		Format:    string(format),
		Hash:      b.Hash,
	}
	for _, f := range b.Files {
		man.Files = append(man.Files, manifestFile{Name: f.Name, Size: len(f.Data)})
	}
	manJSON, err := json.MarshalIndent(man, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	b.Files = append(b.Files, File{Name: "manifest.json", Data: append(manJSON, '\n')})

	return b, compileErr
}

// contentHash digests file names and contents in order, with length
// prefixes so boundaries cannot collide.
func contentHash(files []File) string {
	h := sha256.New()
	for _, f := range files {
		fmt.Fprintf(h, "%d:%s", len(f.Name), f.Name)
		fmt.Fprintf(h, "%d:", len(f.Data))
		h.Write(f.Data)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// WriteZip writes the bundle as a zip archive. Member order is fixed
// and headers carry no timestamps, so the same bundle always produces
// the same archive bytes.
func (b *Bundle) WriteZip(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, f := range b.Files {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:   f.Name,
			Method: zip.Deflate,
		})
		if err != nil {
			return fmt.Errorf("creating zip member %s: %w", f.Name, err)
		}
		if _, err := fw.Write(f.Data); err != nil {
			return fmt.Errorf("writing zip member %s: %w", f.Name, err)
		}
	}
	return zw.Close()
}
