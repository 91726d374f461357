package extract

import (
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// wordText concatenates paragraph texts in document order, separated by
// newlines. Legacy binary .doc files fail to parse and fall out as empty
// through the recovery boundary.
func wordText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", err
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		if p, ok := item.(*docx.Paragraph); ok {
			paragraphs = append(paragraphs, p.String())
		}
	}
	return strings.Join(paragraphs, "\n"), nil
}
