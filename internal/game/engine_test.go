package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/apps/go-server/internal/words"
)

func testCatalog(t *testing.T) *words.Catalog {
	t.Helper()
	c, err := words.Parse([]string{
		"easy|cat|Furry pet animal",
		"easy|dog|Man's best friend",
		"easy|book|Contains pages to read",
		"medium|coding|Writing instructions for computers",
		"hard|database|Organized collection of data",
	})
	require.NoError(t, err)
	return c
}

// pickWord returns a Picker that selects word from the pool of d.
func pickWord(t *testing.T, c *words.Catalog, d words.Difficulty, word string) words.Picker {
	t.Helper()
	for i, w := range c.Words(d) {
		if w == word {
			i := i
			return func(int) int { return i }
		}
	}
	t.Fatalf("word %q not in %s pool", word, d)
	return nil
}

func newGame(t *testing.T, d words.Difficulty, word string) *Game {
	t.Helper()
	c := testCatalog(t)
	g, err := New(c, d, pickWord(t, c, d, word))
	require.NoError(t, err)
	return g
}

func guess(t *testing.T, g *Game, letter string) Snapshot {
	t.Helper()
	s, err := g.Guess(letter)
	require.NoError(t, err)
	return s
}

func TestNewGame(t *testing.T) {
	c := testCatalog(t)
	for _, d := range words.All() {
		g, err := New(c, d, nil)
		require.NoError(t, err)

		s := g.Snapshot()
		assert.Equal(t, d, s.Difficulty)
		assert.Contains(t, c.Words(d), g.Word)
		assert.Equal(t, strings.Repeat("_", len(g.Word)), s.Word)
		assert.Empty(t, s.GuessedLetters)
		assert.NotNil(t, s.GuessedLetters)
		assert.Equal(t, 0, s.IncorrectGuesses)
		assert.Equal(t, MaxAttempts, s.RemainingAttempts)
		assert.False(t, s.GameOver)
		assert.False(t, s.Won)
		assert.False(t, s.HintUsed)
		assert.Nil(t, s.Hint)
		assert.Equal(t, d.Label(), s.HintCategory)
		assert.Equal(t, "playing", g.State())
	}
}

func TestNewGameInvalidDifficulty(t *testing.T) {
	_, err := New(testCatalog(t), words.Difficulty(42), nil)
	assert.ErrorIs(t, err, words.ErrInvalidDifficulty)
}

func TestWinScenario(t *testing.T) {
	g := newGame(t, words.Easy, "cat")

	s := guess(t, g, "c")
	assert.Equal(t, "c__", s.Word)

	s = guess(t, g, "x")
	assert.Equal(t, 1, s.IncorrectGuesses)
	assert.Equal(t, "c__", s.Word)

	s = guess(t, g, "a")
	assert.Equal(t, "ca_", s.Word)

	s = guess(t, g, "t")
	assert.True(t, s.Won)
	assert.True(t, s.GameOver)
	assert.Equal(t, "cat", s.Word)
	assert.Equal(t, []string{"a", "c", "t", "x"}, s.GuessedLetters)
	require.NotNil(t, s.Hint, "hint is revealed once the game is over")
	assert.Equal(t, "Furry pet animal", *s.Hint)
	assert.Equal(t, "won", g.State())
}

func TestLossScenario(t *testing.T) {
	g := newGame(t, words.Easy, "dog")

	var s Snapshot
	for i, l := range []string{"x", "y", "z", "q", "w", "v"} {
		s = guess(t, g, l)
		if i < 5 {
			assert.False(t, s.GameOver, "after %d misses", i+1)
			assert.Equal(t, "___", s.Word)
		}
	}
	assert.True(t, s.GameOver)
	assert.False(t, s.Won)
	assert.Equal(t, 6, s.IncorrectGuesses)
	assert.Equal(t, 0, s.RemainingAttempts)
	assert.Equal(t, "dog", s.Word)
	assert.Equal(t, "lost", g.State())
	require.NotNil(t, s.Hint)
	assert.False(t, s.HintUsed)
}

func TestGuessIsCaseInsensitive(t *testing.T) {
	g := newGame(t, words.Easy, "cat")
	s := guess(t, g, "C")
	assert.Equal(t, "c__", s.Word)
	assert.Equal(t, []string{"c"}, s.GuessedLetters)
}

func TestRepeatedGuessIsNoop(t *testing.T) {
	g := newGame(t, words.Easy, "cat")

	first := guess(t, g, "x")
	second := guess(t, g, "x")
	assert.Equal(t, first, second)

	third := guess(t, g, "X")
	assert.Equal(t, first, third)
	assert.Equal(t, 1, third.IncorrectGuesses)
}

func TestRepeatedLettersRevealTogether(t *testing.T) {
	g := newGame(t, words.Easy, "book")
	s := guess(t, g, "o")
	assert.Equal(t, "_oo_", s.Word)
}

func TestGuessAfterGameOverIsNoop(t *testing.T) {
	g := newGame(t, words.Easy, "cat")
	for _, l := range []string{"c", "a", "t"} {
		guess(t, g, l)
	}
	before := g.Snapshot()
	after := guess(t, g, "z")
	assert.Equal(t, before, after)
	assert.NotContains(t, after.GuessedLetters, "z")
}

func TestInvalidGuessLeavesStateUntouched(t *testing.T) {
	g := newGame(t, words.Easy, "cat")
	guess(t, g, "c")
	before := g.Snapshot()

	for _, in := range []string{"", "ab", "1", "-", " ", "é"} {
		s, err := g.Guess(in)
		assert.ErrorIs(t, err, ErrInvalidGuess, "%q", in)
		assert.Equal(t, before, s)
	}
	assert.Equal(t, before, g.Snapshot())
}

func TestHintCost(t *testing.T) {
	g := newGame(t, words.Medium, "coding")

	s := g.Hint()
	assert.True(t, s.HintUsed)
	assert.Equal(t, 1, s.IncorrectGuesses)
	assert.Equal(t, MaxAttempts-1, s.RemainingAttempts)
	require.NotNil(t, s.Hint)
	assert.Equal(t, "Writing instructions for computers", *s.Hint)
	assert.Equal(t, "Computer Terms", s.HintCategory)
	assert.False(t, s.GameOver)

	again := g.Hint()
	assert.Equal(t, s, again)
}

func TestHintCanEndGame(t *testing.T) {
	g := newGame(t, words.Easy, "dog")
	for _, l := range []string{"x", "y", "z", "q", "w"} {
		guess(t, g, l)
	}
	require.Equal(t, 5, g.Snapshot().IncorrectGuesses)

	s := g.Hint()
	assert.Equal(t, 6, s.IncorrectGuesses)
	assert.True(t, s.GameOver)
	assert.False(t, s.Won)
	assert.Equal(t, "dog", s.Word)
}

func TestHintAfterGameOverIsNoop(t *testing.T) {
	g := newGame(t, words.Easy, "cat")
	for _, l := range []string{"c", "a", "t"} {
		guess(t, g, l)
	}
	before := g.Snapshot()
	s := g.Hint()
	assert.Equal(t, before, s)
	assert.False(t, s.HintUsed)
}

func TestSnapshotIsPure(t *testing.T) {
	g := newGame(t, words.Hard, "database")
	guess(t, g, "a")
	a := g.Snapshot()
	b := g.Snapshot()
	assert.Equal(t, a, b)
	assert.Equal(t, "_a_a_a__", a.Word)
}

// TestInvariants plays every letter sequence prefix against every word and
// checks monotonicity, masking, and the win/loss properties after each step.
func TestInvariants(t *testing.T) {
	c := testCatalog(t)
	sequences := []string{
		"etaoinshrdlcumwfgypbvkjxqz",
		"zqxjkvbpygfwmucldrhsnioate",
		"catdogbk",
	}
	for _, d := range words.All() {
		for _, word := range c.Words(d) {
			for _, seq := range sequences {
				g, err := New(c, d, pickWord(t, c, d, word))
				require.NoError(t, err)

				prev := g.Snapshot()
				for i := 0; i < len(seq); i++ {
					if i == 3 {
						g.Hint()
					}
					s := guess(t, g, seq[i:i+1])

					assert.GreaterOrEqual(t, s.IncorrectGuesses, prev.IncorrectGuesses)
					assert.Subset(t, s.GuessedLetters, prev.GuessedLetters)

					covered := true
					for j := 0; j < len(word); j++ {
						if !g.Guessed[word[j]] {
							covered = false
						}
					}
					assert.Equal(t, covered, s.Won, "%s after %q", word, seq[:i+1])
					if s.GameOver && !s.Won {
						assert.GreaterOrEqual(t, s.IncorrectGuesses, MaxAttempts)
					}
					if !s.GameOver {
						for j := 0; j < len(word); j++ {
							if g.Guessed[word[j]] {
								assert.Equal(t, word[j], s.Word[j])
							} else {
								assert.Equal(t, byte('_'), s.Word[j])
							}
						}
					}
					prev = s
				}
			}
		}
	}
}
