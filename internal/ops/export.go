package ops

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"cardbox/internal/codec"
	"cardbox/internal/config"
	"cardbox/internal/deck"
	"cardbox/internal/errors"
	"cardbox/internal/store"
)

// ExportFormat selects the export rendering.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"  // default: the ingestion format
	ExportFormatHTML ExportFormat = "html" // standalone study sheet
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path   string       // optional, default: ~/.cardbox/exports/<export_filename>
	Format ExportFormat // default: csv
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Entries    int    `json:"entries"`
	ExportedAt int64  `json:"exported_at"`
}

// Export serializes the current deck and writes it to a file. The deck is
// not mutated. CSV output is codec.Serialize; HTML output is a standalone
// study sheet with card text rendered as markdown.
//
// A CSV export of a deck with separators does not re-import as the same
// deck: separator rows come back as cards with a "#"-prefixed prompt. That
// matches the format's grammar and is left as is.
func Export(st *store.Store, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	format := input.Format
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV && format != ExportFormatHTML {
		return nil, errors.NewInvalidRequest("format must be one of: csv, html")
	}

	exportPath := input.Path
	if exportPath == "" {
		var err error
		exportPath, err = defaultExportPath(cfg, format)
		if err != nil {
			return nil, err
		}
	}

	// Validate ALL paths (both user-provided and default) for security
	if err := ValidatePath(exportPath, cfg, "."+string(format)); err != nil {
		return nil, err
	}

	entries := st.Entries()

	var content []byte
	switch format {
	case ExportFormatCSV:
		content = []byte(codec.Serialize(entries))
	case ExportFormatHTML:
		rendered, err := renderHTML(entries)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		content = rendered
	}

	if err := writeFileAtomic(exportPath, content); err != nil {
		return nil, err
	}

	return &ExportOutput{
		Path:       exportPath,
		Entries:    len(entries),
		ExportedAt: time.Now().Unix(),
	}, nil
}

// writeFileAtomic writes content to a temp file in the destination
// directory, then renames it into place so a failed write never clobbers an
// existing export.
func writeFileAtomic(exportPath string, content []byte) error {
	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := exportPath + "." + hex.EncodeToString(randBytes) + ".tmp"

	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	// Clean up temp file on failure (original file is preserved)
	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(content); err != nil {
		return errors.NewInternal(err)
	}
	if err := file.Sync(); err != nil {
		return errors.NewInternal(err)
	}

	// Close before atomic replace (required on Windows; fine elsewhere).
	if err := file.Close(); err != nil {
		return errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// Check if destination is a symlink (os.Rename would follow it)
	if info, err := os.Lstat(exportPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return errors.NewInternal(fmt.Errorf("export path is a symlink"))
	}

	// Finalize export by renaming temp file into place.
	//
	// Note: On Windows, os.Rename fails if the destination exists. We
	// intentionally fail safely (preserving the existing file) instead of a
	// non-atomic delete+rename that could lose the original.
	if err := os.Rename(tempPath, exportPath); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(exportPath); statErr == nil {
				return errors.NewInvalidRequest("export destination already exists; overwriting is not supported on Windows yet (choose a new path or delete the existing file)")
			}
		}
		return errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return nil
}

// defaultExportPath generates the default export path from the configured
// filename, swapping the extension for non-CSV formats.
func defaultExportPath(cfg *config.Config, format ExportFormat) (string, error) {
	exportsDir, err := DefaultExportsDir()
	if err != nil {
		return "", err
	}

	filename := "flashcards_export.csv"
	if cfg != nil && cfg.ExportFilename != "" {
		filename = cfg.ExportFilename
	}
	if format != ExportFormatCSV {
		filename = strings.TrimSuffix(filename, filepath.Ext(filename)) + "." + string(format)
	}

	return filepath.Join(exportsDir, filename), nil
}

// studySheetTemplate is the standalone HTML export layout.
var studySheetTemplate = template.Must(template.New("sheet").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Flashcards</title>
<style>
body { font-family: sans-serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; }
h2 { border-bottom: 1px solid #ccc; padding-bottom: .25rem; }
.card { border: 1px solid #ddd; border-radius: .5rem; padding: .75rem 1rem; margin: .75rem 0; }
.prompt { font-weight: bold; }
.response { color: #333; margin-top: .5rem; }
</style>
</head>
<body>
<h1>Flashcards</h1>
{{range .}}{{if .IsSeparator}}<h2>{{.Title}}</h2>
{{else}}<div class="card">
<div class="prompt">{{.Prompt}}</div>
<div class="response">{{.Response}}</div>
</div>
{{end}}{{end}}</body>
</html>
`))

type sheetEntry struct {
	IsSeparator bool
	Title       string
	Prompt      template.HTML
	Response    template.HTML
}

// renderHTML renders the deck as a standalone study sheet. Card text is
// treated as markdown.
func renderHTML(entries []deck.Entry) ([]byte, error) {
	sheet := make([]sheetEntry, 0, len(entries))
	for _, e := range entries {
		switch e.Kind {
		case deck.KindSeparator:
			sheet = append(sheet, sheetEntry{IsSeparator: true, Title: e.Title})
		case deck.KindCard:
			prompt, err := markdownToHTML(e.Prompt)
			if err != nil {
				return nil, err
			}
			response, err := markdownToHTML(e.Response)
			if err != nil {
				return nil, err
			}
			sheet = append(sheet, sheetEntry{Prompt: prompt, Response: response})
		}
	}

	var buf bytes.Buffer
	if err := studySheetTemplate.Execute(&buf, sheet); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// markdownToHTML converts card text to HTML via goldmark. Goldmark escapes
// raw HTML by default, so card content cannot inject markup.
func markdownToHTML(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // goldmark escapes raw HTML
}
