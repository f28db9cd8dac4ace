// internal/words/difficulty.go
//
// Difficulty tiers. Each tier selects a word pool and a hint category label.

package words

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDifficulty is returned for an unknown difficulty key.
var ErrInvalidDifficulty = errors.New("invalid difficulty")

// Difficulty selects a word pool.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard

	numDifficulties = int(Hard) + 1
)

// All returns every difficulty in ascending order.
func All() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// ParseDifficulty maps "easy" / "medium" / "hard" to a Difficulty.
// Surrounding whitespace and letter case are ignored; responses always carry
// the canonical lowercase name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
}

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	return d >= Easy && d <= Hard
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// Label is the human-readable hint category for the tier.
func (d Difficulty) Label() string {
	switch d {
	case Easy:
		return "Simple Words"
	case Medium:
		return "Computer Terms"
	case Hard:
		return "Technical Concepts"
	}
	return ""
}

// MarshalText encodes the difficulty as its lowercase name.
func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDifficulty, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a lowercase difficulty name.
func (d *Difficulty) UnmarshalText(b []byte) error {
	v, err := ParseDifficulty(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
