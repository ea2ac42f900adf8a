package cli

import (
	"errors"
	"fmt"

	"hangman/db"
	"hangman/words"

	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Copy a JSON word list into the sqlite word database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				return errors.New("--db is required")
			}
			ctx := cmd.Context()

			entries, err := words.Load(ctx, words.Options{URL: wordsURL, Path: wordsPath})
			if err != nil {
				return err
			}

			store, err := db.Open(ctx, dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Import(ctx, entries)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d words into %s\n", n, store.Path())
			return nil
		},
	}
}
