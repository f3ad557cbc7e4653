package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"plagiarism-service/internal/extract"
)

// Document is one comparison text read from disk.
type Document struct {
	ID      string // Path relative to the scan root with forward slashes, e.g. "essays/week1.md"
	AbsPath string
	Text    string
}

// Extensions returns the file extensions read for a given input format.
func Extensions(format string) []string {
	switch extract.NormalizeFormat(format) {
	case extract.FormatMarkdown:
		return []string{".md", ".markdown"}
	default:
		return []string{".txt"}
	}
}

// Scan walks root and returns every file whose extension is in exts, sorted by ID.
// Hidden files and directories are skipped.
func Scan(ctx context.Context, root string, exts []string) ([]Document, error) {
	allowed := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	var docs []Document
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to access path %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := allowed[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}

		docs = append(docs, Document{
			ID:      filepath.ToSlash(relPath),
			AbsPath: path,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// Load scans root and reads every matching file.
// The file at exclude, if any, is left out so a submission inside the corpus is not compared with itself.
func Load(ctx context.Context, root string, exts []string, exclude string) ([]Document, error) {
	docs, err := Scan(ctx, root, exts)
	if err != nil {
		return nil, err
	}

	excludeAbs := ""
	if exclude != "" {
		if abs, err := filepath.Abs(exclude); err == nil {
			excludeAbs = abs
		}
	}

	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if excludeAbs != "" {
			if abs, err := filepath.Abs(doc.AbsPath); err == nil && abs == excludeAbs {
				continue
			}
		}
		content, err := os.ReadFile(doc.AbsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", doc.ID, err)
		}
		doc.Text = string(content)
		out = append(out, doc)
	}
	return out, nil
}
