package extract

import (
	"os"
	"strings"
	"unicode/utf8"
)

// plainText reads the file as UTF-8 text. Invalid byte sequences are
// replaced rather than treated as fatal.
func plainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError)), nil
}
