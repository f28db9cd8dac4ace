// internal/game/types.go
//
// Core type definitions for the Hangman game engine.
// Defines:
//   - Game: mutable state for a single game session.
//   - Snapshot: read-only view of a Game, serialized to clients as JSON.

package game

import (
	"github.com/robalobadob/hangman/apps/go-server/internal/words"
)

// MaxAttempts is the number of misses (including hint cost) that ends a game.
const MaxAttempts = 6

// Game holds the state of a single Hangman game.
// A new game replaces the previous one wholesale; nothing carries over.
type Game struct {
	Difficulty words.Difficulty // Tier the word was drawn from.
	Word       string           // Secret word (always lowercase).
	Guessed    map[byte]bool    // Letters guessed so far (lowercase).
	Incorrect  int              // Misses plus hint cost.
	Over       bool             // True once won or lost.
	Won        bool             // True if every letter was guessed.
	HintUsed   bool             // True once the hint was bought.

	hint string // Hint text for Word, copied from the catalog at creation.
}

// Snapshot is the client-facing view of a Game.
// JSON field names are shared with the browser front end.
type Snapshot struct {
	Word              string           `json:"word"` // masked unless the game is over
	GuessedLetters    []string         `json:"guessed_letters"`
	IncorrectGuesses  int              `json:"incorrect_guesses"`
	RemainingAttempts int              `json:"remaining_attempts"`
	GameOver          bool             `json:"game_over"`
	Won               bool             `json:"won"`
	Difficulty        words.Difficulty `json:"difficulty"`
	Hint              *string          `json:"hint"` // null until used or game over
	HintUsed          bool             `json:"hint_used"`
	HintCategory      string           `json:"hint_category"`
}
