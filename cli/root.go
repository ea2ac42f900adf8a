package cli

import (
	"math/rand"
	"os"
	"time"

	"hangman/log"

	"github.com/spf13/cobra"
)

var (
	logLevel  string
	wordsPath string
	wordsURL  string
	dbPath    string
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newSource() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Execute runs the hangman command line.
func Execute() error {
	root := &cobra.Command{
		Use:           "hangman",
		Short:         "Guess the hidden word one letter at a time",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLogLevel(logLevel)
			if err != nil {
				return err
			}
			// Logs go to stderr so they never mix with the play board on stdout
			log.SetDefaultLogger(log.New(os.Stderr, "", log.DefaultLoggerFlag, log.LogLevelInfo))
			log.SetLevel(level)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", envOr("HANGMAN_LOG_LEVEL", "info"), "log level (error, warn, info, debug, trace)")
	root.PersistentFlags().StringVar(&wordsPath, "words", envOr("HANGMAN_WORDS", ""), "JSON word list (default: built-in list)")
	root.PersistentFlags().StringVar(&wordsURL, "words-url", envOr("HANGMAN_WORDS_URL", ""), "URL of a JSON word list")
	root.PersistentFlags().StringVar(&dbPath, "db", envOr("HANGMAN_DB", ""), "sqlite word database")

	root.AddCommand(serveCmd(), playCmd(), importCmd())
	return root.Execute()
}
