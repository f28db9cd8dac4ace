// internal/game/engine.go
//
// Core game engine for a single Hangman session.
// Responsibilities:
//   - Start games from a validated word catalog (New).
//   - Apply letter guesses and track misses (Guess).
//   - Sell the one hint per game at the cost of one attempt (Hint).
//   - Produce the masked client view (Snapshot).
//
// State transitions:
//   playing → won   when every letter of the word has been guessed.
//   playing → lost  when Incorrect reaches MaxAttempts (miss or hint).
//   won/lost are terminal; only a new game leaves them.
//
// The engine does no locking. Callers serialize access to one Game.
package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/robalobadob/hangman/apps/go-server/internal/words"
)

// ErrInvalidGuess is returned for anything other than a single letter a–z.
var ErrInvalidGuess = errors.New("invalid guess")

// New starts a game in tier d with a word chosen by pick.
// A nil pick chooses uniformly at random.
func New(cat *words.Catalog, d words.Difficulty, pick words.Picker) (*Game, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("new game: %w: %d", words.ErrInvalidDifficulty, int(d))
	}
	e, err := cat.Pick(d, pick)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	return &Game{
		Difficulty: d,
		Word:       strings.ToLower(e.Word),
		Guessed:    make(map[byte]bool),
		hint:       e.Hint,
	}, nil
}

// ParseLetter validates a guess and returns it lowercased.
// Exactly one ASCII letter is accepted, in either case. Non-ASCII letters
// such as "é" are rejected rather than charged as a miss: catalog words are
// ASCII-only, so they could never match.
func ParseLetter(s string) (byte, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("%w: want one letter, got %q", ErrInvalidGuess, s)
	}
	c := s[0]
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	if c < 'a' || c > 'z' {
		return 0, fmt.Errorf("%w: %q is not a letter", ErrInvalidGuess, s)
	}
	return c, nil
}

// Guess applies one letter. Malformed input returns ErrInvalidGuess and
// leaves the game untouched. Guessing after the game ended, or repeating a
// letter, is a no-op.
func (g *Game) Guess(letter string) (Snapshot, error) {
	c, err := ParseLetter(letter)
	if err != nil {
		return g.Snapshot(), err
	}
	if g.Over || g.Guessed[c] {
		return g.Snapshot(), nil
	}

	g.Guessed[c] = true
	if strings.IndexByte(g.Word, c) < 0 {
		g.Incorrect++
	}

	if g.allGuessed() {
		g.Over, g.Won = true, true
	} else {
		g.checkLoss()
	}
	return g.Snapshot(), nil
}

// Hint buys the hint for one attempt. It may end the game as a loss.
// A second call, or a call after the game ended, is a no-op.
func (g *Game) Hint() Snapshot {
	if !g.HintUsed && !g.Over {
		g.HintUsed = true
		g.Incorrect++
		g.checkLoss()
	}
	return g.Snapshot()
}

// Snapshot reports the current state without mutating it.
// The hint is revealed once bought or once the game is over.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Word:              g.displayWord(),
		GuessedLetters:    g.sortedGuesses(),
		IncorrectGuesses:  g.Incorrect,
		RemainingAttempts: MaxAttempts - g.Incorrect,
		GameOver:          g.Over,
		Won:               g.Won,
		Difficulty:        g.Difficulty,
		HintUsed:          g.HintUsed,
		HintCategory:      g.Difficulty.Label(),
	}
	if g.HintUsed || g.Over {
		h := g.hint
		s.Hint = &h
	}
	return s
}

// State reports a coarse string representation of the current game state.
func (g *Game) State() string {
	if g.Over {
		if g.Won {
			return "won"
		}
		return "lost"
	}
	return "playing"
}

func (g *Game) checkLoss() {
	if g.Incorrect >= MaxAttempts {
		g.Over = true
	}
}

// allGuessed reports whether every character of the word has been guessed.
func (g *Game) allGuessed() bool {
	for i := 0; i < len(g.Word); i++ {
		if !g.Guessed[g.Word[i]] {
			return false
		}
	}
	return true
}

// displayWord masks unguessed characters with '_'. Repeated letters reveal together.
func (g *Game) displayWord() string {
	if g.Over {
		return g.Word
	}
	b := []byte(g.Word)
	for i, c := range b {
		if !g.Guessed[c] {
			b[i] = '_'
		}
	}
	return string(b)
}

func (g *Game) sortedGuesses() []string {
	out := make([]string, 0, len(g.Guessed))
	for c := range g.Guessed {
		out = append(out, string(c))
	}
	sort.Strings(out)
	return out
}
