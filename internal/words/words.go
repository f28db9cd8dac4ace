// internal/words/words.go
//
// Word and hint catalogs for the game engine.
//
// Responsibilities:
//   - Hold one word pool per Difficulty, each word paired with its hint.
//   - Load the catalog from a file (WORDS_CATALOG_FILE) or the embedded default.
//   - Validate the catalog at startup so a missing hint never surfaces mid-game.
//   - Pick a word for a new game through an injectable Picker.
//
// Catalog file format, one entry per line:
//   difficulty|word|hint
// Blank lines and lines starting with '#' are ignored.
//
// Constraints:
//   • Words are lowercase ASCII letters (a–z), unique within a tier.
//   • Every word carries a non-empty hint.
//   • Every tier has at least one word.

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/hangman/apps/go-server/assets"
)

// Entry is one candidate secret word and its hint.
type Entry struct {
	Word string
	Hint string
}

// Catalog holds the word pools, indexed by Difficulty.
type Catalog struct {
	pools [numDifficulties][]Entry
	seen  [numDifficulties]map[string]struct{} // duplicate detection
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	c := &Catalog{}
	for i := range c.seen {
		c.seen[i] = make(map[string]struct{})
	}
	return c
}

// Add appends word to the pool for d. The word is lowercased.
func (c *Catalog) Add(d Difficulty, word, hint string) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDifficulty, int(d))
	}
	w := strings.ToLower(strings.TrimSpace(word))
	hint = strings.TrimSpace(hint)
	if w == "" || !isAlpha(w) {
		return fmt.Errorf("words: %s word %q must be letters a-z", d, word)
	}
	if hint == "" {
		return fmt.Errorf("words: %s word %q has no hint", d, w)
	}
	if _, dup := c.seen[d][w]; dup {
		return fmt.Errorf("words: %s word %q listed twice", d, w)
	}
	c.seen[d][w] = struct{}{}
	c.pools[d] = append(c.pools[d], Entry{Word: w, Hint: hint})
	return nil
}

// Validate checks that every tier has at least one word.
// Per-entry rules are enforced by Add.
func (c *Catalog) Validate() error {
	var errs []error
	for _, d := range All() {
		if len(c.pools[d]) == 0 {
			errs = append(errs, fmt.Errorf("words: %s list is empty", d))
		}
	}
	return errors.Join(errs...)
}

// Words returns the words of d in catalog order.
func (c *Catalog) Words(d Difficulty) []string {
	if !d.Valid() {
		return nil
	}
	out := make([]string, len(c.pools[d]))
	for i, e := range c.pools[d] {
		out[i] = e.Word
	}
	return out
}

// Len returns the pool size of d.
func (c *Catalog) Len(d Difficulty) int {
	if !d.Valid() {
		return 0
	}
	return len(c.pools[d])
}

// Picker returns an index in [0, n). n is always > 0.
type Picker func(n int) int

// RandomPicker picks uniformly using crypto/rand.
func RandomPicker(n int) int {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(nBig.Int64())
}

// Pick selects an entry from tier d. A nil pick uses RandomPicker.
func (c *Catalog) Pick(d Difficulty, pick Picker) (Entry, error) {
	if !d.Valid() {
		return Entry{}, fmt.Errorf("%w: %d", ErrInvalidDifficulty, int(d))
	}
	pool := c.pools[d]
	if len(pool) == 0 {
		return Entry{}, fmt.Errorf("words: %s list is empty", d)
	}
	if pick == nil {
		pick = RandomPicker
	}
	i := pick(len(pool))
	if i < 0 || i >= len(pool) {
		return Entry{}, fmt.Errorf("words: picker returned %d for pool of %d", i, len(pool))
	}
	return pool[i], nil
}

// Parse builds a catalog from "difficulty|word|hint" lines and validates it.
func Parse(lines []string) (*Catalog, error) {
	c := NewCatalog()
	for n, line := range lines {
		parts := strings.SplitN(line, "|", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("words: entry %d: want difficulty|word|hint, got %q", n+1, line)
		}
		d, err := ParseDifficulty(parts[0])
		if err != nil {
			return nil, fmt.Errorf("words: entry %d: %w", n+1, err)
		}
		if err := c.Add(d, parts[1], parts[2]); err != nil {
			return nil, fmt.Errorf("entry %d: %w", n+1, err)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the catalog from path, or from the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	var (
		lines []string
		err   error
	)
	if path == "" {
		lines, err = assets.CatalogLines()
	} else {
		lines, err = readCatalogFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("words: read catalog: %w", err)
	}
	return Parse(lines)
}

func readCatalogFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
