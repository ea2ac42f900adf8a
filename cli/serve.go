package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"hangman/api"
	"hangman/log"
	"hangman/words"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var (
		addr       string
		sessionTTL time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			entries, err := words.Load(ctx, words.Options{DBPath: dbPath, URL: wordsURL, Path: wordsPath})
			if err != nil {
				return err
			}

			server := api.NewServer(api.NewServerOptions{
				Addr:       addr,
				Words:      entries,
				Source:     newSource(),
				SessionTTL: sessionTTL,
			})

			errCh := make(chan error, 1)
			go func() { errCh <- server.Start(ctx) }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info("Shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Stop(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", envOr("HANGMAN_ADDR", ":8080"), "listen address")
	cmd.Flags().DurationVar(&sessionTTL, "session-ttl", 24*time.Hour, "drop games idle for this long (0 keeps them)")
	return cmd
}
