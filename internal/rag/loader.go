package rag

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"gopkg.in/yaml.v3"
)

// LoadDir walks dir recursively and loads every .txt, .md and .pdf file as a
// document. Files that fail to load are logged and skipped. A missing
// directory is reported with an error wrapping fs.ErrNotExist.
func LoadDir(dir string) ([]Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data directory %s is not a directory", dir)
	}

	var docs []Document
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = d.Name()
		}

		doc, err := LoadFile(path, filepath.ToSlash(rel))
		if errors.Is(err, errUnsupported) {
			return nil
		}
		if err != nil {
			slog.Warn("Skipping document", "path", path, "error", err)
			return nil
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk data directory: %w", err)
	}

	return docs, nil
}

var errUnsupported = errors.New("unsupported document type")

// LoadFile loads one document. source is the name recorded in its metadata
// and used as its ID.
func LoadFile(path, source string) (Document, error) {
	var (
		text string
		meta map[string]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		text, err = readText(path)
	case ".md":
		text, err = readText(path)
		if err == nil {
			meta, text, err = splitFrontMatter(text)
		}
	case ".pdf":
		text, err = readPDF(path)
	default:
		return Document{}, errUnsupported
	}
	if err != nil {
		return Document{}, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Document{}, fmt.Errorf("no text extracted from %s", source)
	}

	if meta == nil {
		meta = map[string]string{}
	}
	if meta["title"] == "" {
		meta["title"] = titleFromName(path)
	}
	if meta["source"] == "" {
		meta["source"] = source
	}
	if meta["category"] == "" {
		meta["category"] = categoryFromSource(source)
	}

	return Document{ID: source, Text: text, Metadata: meta}, nil
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

func readPDF(path string) (string, error) {
	f, rdr, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	b, err := rdr.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, b); err != nil {
		return "", fmt.Errorf("failed to read pdf buffer: %w", err)
	}
	return buf.String(), nil
}

// splitFrontMatter separates a leading "---" YAML block from the body
func splitFrontMatter(text string) (map[string]string, string, error) {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	if !strings.HasPrefix(normalized, "---\n") {
		return nil, text, nil
	}

	rest := normalized[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil, text, nil
	}

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(rest[:end]), &raw); err != nil {
		return nil, "", fmt.Errorf("failed to parse front matter: %w", err)
	}

	body := rest[end+len("\n---"):]
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}

	meta := make(map[string]string, len(raw))
	for k, v := range raw {
		if v != nil {
			meta[k] = fmt.Sprint(v)
		}
	}
	return meta, body, nil
}

// titleFromName turns "snap_benefits.txt" into "Snap Benefits"
func titleFromName(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func categoryFromSource(source string) string {
	dir := filepath.Base(filepath.Dir(filepath.FromSlash(source)))
	if dir == "." || dir == string(filepath.Separator) {
		return "general"
	}
	return dir
}
