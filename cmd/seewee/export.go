package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seewee/seewee/internal/export"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export <variant-id>",
	Short: "Export a variant as a bundle",
	Long: `Export resolves a variant into a document and renders it in the chosen
format. The bundle is written as a zip archive, or as loose files when
--out names a directory that already exists.

Formats:
  typeset-source    LaTeX source (main.tex)
  typeset-compiled  compiled PDF plus the LaTeX source (needs latexmk)
  static-viewer     self-contained HTML viewer (index.html, app.js)
  interchange       CSV, copy blocks, and field mapping for manual entry

The same stored data always produces byte-identical bundles; the
manifest's hash can be compared across machines.

Examples:
  seewee export 0192f3a1 --format typeset-source --out cv.zip
  seewee export 0192f3a1 --format interchange --out linkedin.zip`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := export.Format(exportFormat)
		known := false
		for _, f := range export.Formats() {
			if f == format {
				known = true
				break
			}
		}
		if !known {
			names := make([]string, 0, len(export.Formats()))
			for _, f := range export.Formats() {
				names = append(names, string(f))
			}
			return fmt.Errorf("unknown format %q (choose one of: %s)",
				exportFormat, strings.Join(names, ", "))
		}

		store, err := attachStore()
		if err != nil {
			return err
		}
		defer store.Detach()

		bundle, err := export.BuildBundle(cmd.Context(), store, args[0], format)
		var compileErr *export.CompileError
		if err != nil && !errors.As(err, &compileErr) {
			return fmt.Errorf("build bundle: %w", err)
		}

		for _, w := range bundle.Warnings {
			fmt.Fprintln(os.Stderr, "warning:", w)
		}

		out := exportOut
		if out == "" {
			out = fmt.Sprintf("seewee-%s-%s.zip", shortID(args[0]), exportFormat)
		}

		if info, err := os.Stat(out); err == nil && info.IsDir() {
			if err := writeBundleDir(bundle, out); err != nil {
				return err
			}
		} else {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := bundle.WriteZip(f); err != nil {
				f.Close()
				return fmt.Errorf("write zip: %w", err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", out, err)
			}
		}

		if flagJSON {
			result := map[string]any{
				"variant_id": bundle.VariantID,
				"format":     string(bundle.Format),
				"out":        out,
				"files":      len(bundle.Files),
				"hash":       bundle.Hash,
				"warnings":   bundle.Warnings,
			}
			if compileErr != nil {
				result["compile_error"] = compileErr.Error()
			}
			if jsonErr := printJSON(result); jsonErr != nil {
				return jsonErr
			}
		} else {
			fmt.Printf("Exported %s (%d files) to %s\n", exportFormat, len(bundle.Files), out)
			fmt.Printf("Content hash: %s\n", bundle.Hash)
		}

		// Compilation failure degrades the bundle to source-only; the
		// bundle is on disk already, so surface the diagnostics and fail.
		if compileErr != nil {
			fmt.Fprintln(os.Stderr, "compiled document withheld; bundle contains the source only")
			if compileErr.Stdout != "" {
				fmt.Fprintln(os.Stderr, compileErr.Stdout)
			}
			if compileErr.Stderr != "" {
				fmt.Fprintln(os.Stderr, compileErr.Stderr)
			}
			return compileErr
		}
		return nil
	},
}

// writeBundleDir writes bundle files directly into an existing directory.
func writeBundleDir(bundle *export.Bundle, dir string) error {
	for _, f := range bundle.Files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", string(export.FormatTypesetSource),
		"export format: typeset-source, typeset-compiled, static-viewer, interchange")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default: seewee-<variant>-<format>.zip)")
}
