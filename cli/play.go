package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"hangman/logic"
	"hangman/models"
	"hangman/view"
	"hangman/words"

	"github.com/spf13/cobra"
)

func playCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := words.Load(cmd.Context(), words.Options{DBPath: dbPath, URL: wordsURL, Path: wordsPath})
			if err != nil {
				return err
			}
			return play(cmd.InOrStdin(), cmd.OutOrStdout(), entries, newSource())
		},
	}
}

// play runs games on a line-oriented terminal until the input ends or the
// player declines another round.
func play(in io.Reader, out io.Writer, entries []models.WordEntry, src logic.Source) error {
	state, err := logic.NewGame(entries, src)
	if err != nil {
		return err
	}
	showDefinition := false
	render(out, state, showDefinition)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())

		if !state.Over() {
			state = logic.GuessString(state, input)
			render(out, state, showDefinition)
			continue
		}

		switch strings.ToLower(input) {
		case "y", "yes":
			if state, err = logic.Reset(entries, src); err != nil {
				return err
			}
			showDefinition = false
		case "d":
			showDefinition = !showDefinition
		case "n", "no", "q":
			return nil
		default:
			continue
		}
		render(out, state, showDefinition)
	}
	return scanner.Err()
}

func render(out io.Writer, state models.GameState, showDefinition bool) {
	v := view.Build(state, showDefinition)

	fmt.Fprintln(out)
	for _, row := range view.ASCII(v.Stage) {
		fmt.Fprintln(out, row)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n\n", v.Masked)

	wrong := "-"
	if len(v.Wrong) > 0 {
		wrong = strings.Join(v.Wrong, " ")
	}
	fmt.Fprintf(out, "Wrong guesses: %s (%d/%d)\n", wrong, v.Stage, v.MaxAttempts)

	switch v.Status {
	case models.StatusWon:
		fmt.Fprintf(out, "You won! The word was %s\n", v.Word)
	case models.StatusLost:
		fmt.Fprintf(out, "You lost! The word was %s\n", v.Word)
	default:
		fmt.Fprint(out, "Guess a letter: ")
		return
	}

	if v.ShowDefinition {
		fmt.Fprintf(out, "Definition: %s\n", v.Definition)
	}
	if v.Definition != "" {
		fmt.Fprint(out, "Play again? [y/n, d toggles the definition] ")
	} else {
		fmt.Fprint(out, "Play again? [y/n] ")
	}
}
