// assets/embed.go
//
// Embedded default word catalog. Used when no WORDS_CATALOG_FILE is set.

package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed catalog.txt
var FS embed.FS

// ReadLines returns the non-blank, non-comment lines of r, trimmed.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// CatalogLines returns the entries of the embedded catalog.txt.
func CatalogLines() ([]string, error) {
	f, err := FS.Open("catalog.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}
