// Package extract normalizes resume documents into plain text. Extraction is
// fail-soft: any parse failure yields an empty string, never an error, so a
// bad upload degrades to a user-facing advisory instead of a server error.
package extract

import (
	"path/filepath"
	"strings"
)

// Kind identifies a supported document format.
type Kind int

const (
	KindUnknown Kind = iota
	KindPlainText
	KindPDF
	KindWord
)

// KindForPath maps a filename extension to its document kind. Callers are
// expected to reject unsupported extensions before handing files to Text.
func KindForPath(path string) Kind {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "txt":
		return KindPlainText
	case "pdf":
		return KindPDF
	case "doc", "docx":
		return KindWord
	default:
		return KindUnknown
	}
}

// Text extracts the plain-text content of the file at path, dispatching on
// filename extension. An empty result means the content could not be read.
func Text(path string) string {
	switch KindForPath(path) {
	case KindPlainText:
		return recovered(path, plainText)
	case KindPDF:
		return recovered(path, pdfText)
	case KindWord:
		return recovered(path, wordText)
	default:
		return ""
	}
}

// recovered runs one per-kind extractor inside a recovery boundary. The PDF
// parser in particular can panic on corrupt input; every failure mode is
// converted to the empty string.
func recovered(path string, fn func(string) (string, error)) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()
	text, err := fn(path)
	if err != nil {
		return ""
	}
	return text
}
