package logic

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"hangman/models"

	"github.com/zyedidia/generic/mapset"
)

var (
	// ErrNoWords is returned when a game is requested from an empty word list.
	ErrNoWords = errors.New("word list is empty")
	// ErrInvalidWord marks a word that is empty or not made only of letters.
	ErrInvalidWord = errors.New("invalid word")
)

// Source picks an index in [0, n). *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// NewGame picks an entry uniformly at random and starts a fresh game with it.
// The picked word must be non-empty ASCII letters; anything else could never
// be won (or would count as solved before the first guess).
func NewGame(entries []models.WordEntry, src Source) (models.GameState, error) {
	if len(entries) == 0 {
		return models.GameState{}, ErrNoWords
	}
	entry := entries[src.Intn(len(entries))]
	if err := ValidateWord(entry.Word); err != nil {
		return models.GameState{}, err
	}
	entry.Word = strings.ToLower(entry.Word)

	return models.GameState{
		Entry:   entry,
		Guessed: mapset.New[rune](),
		Wrong:   mapset.New[rune](),
		Status:  models.StatusPlaying,
	}, nil
}

// Reset throws the current game away and starts another one.
func Reset(entries []models.WordEntry, src Source) (models.GameState, error) {
	return NewGame(entries, src)
}

// Guess applies one letter to the game and returns the resulting state.
// Finished games, non-letters and letters already tried leave the state as is.
func Guess(state models.GameState, letter rune) models.GameState {
	if state.Status != models.StatusPlaying || !IsAlpha(letter) {
		return state
	}
	letter = toLower(letter)
	if state.Tried(letter) {
		return state
	}

	next := state.Clone()
	if strings.ContainsRune(next.Entry.Word, letter) {
		next.Guessed.Put(letter)
	} else {
		next.Wrong.Put(letter)
		next.WrongOrder = append(next.WrongOrder, letter)
	}

	// A guess that completes the word wins even on the last attempt.
	if Solved(next) {
		next.Status = models.StatusWon
	} else if next.WrongCount() >= models.MaxAttempts {
		next.Status = models.StatusLost
	}
	return next
}

// GuessString is Guess for raw input such as a key name or a form value.
// Anything other than exactly one letter is ignored.
func GuessString(state models.GameState, input string) models.GameState {
	if utf8.RuneCountInString(input) != 1 {
		return state
	}
	r, _ := utf8.DecodeRuneInString(input)
	return Guess(state, r)
}

// Solved reports whether every distinct letter of the word has been guessed.
func Solved(state models.GameState) bool {
	solved := true
	Letters(state.Entry.Word).Each(func(r rune) {
		if !state.Guessed.Has(r) {
			solved = false
		}
	})
	return solved
}

// MaskedWord renders the word with unguessed letters as "_", space separated.
func MaskedWord(state models.GameState) string {
	parts := make([]string, 0, len(state.Entry.Word))
	for _, c := range state.Entry.Word {
		if state.Guessed.Has(c) {
			parts = append(parts, string(c))
		} else {
			parts = append(parts, "_")
		}
	}
	return strings.Join(parts, " ")
}

// Letters returns the distinct letters of word.
func Letters(word string) mapset.Set[rune] {
	set := mapset.New[rune]()
	for _, c := range word {
		set.Put(c)
	}
	return set
}

// ValidateWord checks that word can be played.
func ValidateWord(word string) error {
	if word == "" {
		return fmt.Errorf("%w: empty", ErrInvalidWord)
	}
	for _, c := range word {
		if !IsAlpha(c) {
			return fmt.Errorf("%w: %q", ErrInvalidWord, word)
		}
	}
	return nil
}

// IsAlpha reports whether r is an ASCII letter.
func IsAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
