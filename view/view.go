// Package view derives everything the player sees from a game state.
// It makes no decisions of its own.
package view

import (
	"hangman/logic"
	"hangman/models"
)

const Alphabet = "abcdefghijklmnopqrstuvwxyz"

type ButtonClass string

const (
	ButtonAvailable ButtonClass = "available"
	ButtonCorrect   ButtonClass = "correct"
	ButtonWrong     ButtonClass = "wrong"
)

type Button struct {
	Letter   string      `json:"letter"`
	Class    ButtonClass `json:"class"`
	Disabled bool        `json:"disabled"`
}

// View is the rendered form of a game. Word and Definition stay empty until
// the game is over.
type View struct {
	Masked         string        `json:"masked"`
	Stage          int           `json:"stage"`
	MaxAttempts    int           `json:"max_attempts"`
	Remaining      int           `json:"remaining"`
	Wrong          []string      `json:"wrong"`
	Status         models.Status `json:"status"`
	GameOver       bool          `json:"game_over"`
	Buttons        []Button      `json:"buttons"`
	Word           string        `json:"word,omitempty"`
	Definition     string        `json:"definition,omitempty"`
	ShowDefinition bool          `json:"show_definition"`
	Drawing        []Shape       `json:"drawing"`
}

// Build renders state. showDefinition only has an effect once the game is over.
func Build(state models.GameState, showDefinition bool) View {
	stage := logic.Stage(state.WrongCount())
	over := state.Over()

	v := View{
		Masked:      logic.MaskedWord(state),
		Stage:       stage,
		MaxAttempts: models.MaxAttempts,
		Remaining:   models.MaxAttempts - stage,
		Wrong:       WrongLetters(state),
		Status:      state.Status,
		GameOver:    over,
		Buttons:     Buttons(state),
		Drawing:     Drawing(stage),
	}
	if over {
		v.Word = state.Entry.Word
		v.Definition = state.Entry.Definition
		v.ShowDefinition = showDefinition && v.Definition != ""
	}
	return v
}

// Buttons returns one button per letter of the alphabet.
func Buttons(state models.GameState) []Button {
	buttons := make([]Button, 0, len(Alphabet))
	for _, l := range Alphabet {
		b := Button{Letter: string(l), Class: ButtonAvailable}
		switch {
		case state.Guessed.Has(l):
			b.Class = ButtonCorrect
		case state.Wrong.Has(l):
			b.Class = ButtonWrong
		}
		b.Disabled = b.Class != ButtonAvailable || state.Over()
		buttons = append(buttons, b)
	}
	return buttons
}

// WrongLetters returns the wrong guesses in the order they were made.
func WrongLetters(state models.GameState) []string {
	letters := make([]string, 0, len(state.WrongOrder))
	for _, r := range state.WrongOrder {
		letters = append(letters, string(r))
	}
	return letters
}
