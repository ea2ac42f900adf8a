package models

import (
	"encoding/json"
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// MaxAttempts is the number of wrong guesses that loses a game.
const MaxAttempts = 6

// WordEntry is one record of the word list. Definition may be empty.
type WordEntry struct {
	Word       string `json:"word"`
	Definition string `json:"definition,omitempty"`
}

type Status int

const (
	StatusPlaying Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "playing":
		*s = StatusPlaying
	case "won":
		*s = StatusWon
	case "lost":
		*s = StatusLost
	default:
		return fmt.Errorf("unknown status %q", str)
	}
	return nil
}

// GameState is a single game. It is treated as a value: transitions in the
// logic package return a new GameState and never touch the sets of the old one.
type GameState struct {
	Entry      WordEntry
	Guessed    mapset.Set[rune] // letters guessed that occur in the word
	Wrong      mapset.Set[rune] // letters guessed that do not
	WrongOrder []rune           // members of Wrong in guess order
	Status     Status
}

func (g GameState) Word() string {
	return g.Entry.Word
}

// WrongCount is the number of wrong guesses so far.
func (g GameState) WrongCount() int {
	return g.Wrong.Size()
}

// Tried reports whether letter is in either guess set.
func (g GameState) Tried(letter rune) bool {
	return g.Guessed.Has(letter) || g.Wrong.Has(letter)
}

// Clone returns a copy whose sets can be changed without affecting g.
func (g GameState) Clone() GameState {
	c := GameState{
		Entry:      g.Entry,
		Guessed:    mapset.New[rune](),
		Wrong:      mapset.New[rune](),
		WrongOrder: append([]rune(nil), g.WrongOrder...),
		Status:     g.Status,
	}
	g.Guessed.Each(func(r rune) { c.Guessed.Put(r) })
	g.Wrong.Each(func(r rune) { c.Wrong.Put(r) })
	return c
}

// Over reports whether the game reached a terminal status.
func (g GameState) Over() bool {
	return g.Status != StatusPlaying
}
