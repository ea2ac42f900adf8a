package words

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"hangman/db"
	"hangman/log"
	"hangman/logic"
	"hangman/models"
)

var (
	ErrEmptyList   = errors.New("word list is empty")
	ErrInvalidWord = logic.ErrInvalidWord
	ErrNoDatabase  = errors.New("word database not found")
)

//go:embed words.json
var defaultWords []byte

// Options selects where the word list comes from. The first non-empty field
// among DBPath, URL and Path wins; with none set the embedded list is used.
type Options struct {
	DBPath string
	URL    string
	Path   string
}

// Load reads and validates the word list once. Any error is fatal for the caller.
func Load(ctx context.Context, opts Options) ([]models.WordEntry, error) {
	var (
		entries []models.WordEntry
		source  string
		err     error
	)
	switch {
	case opts.DBPath != "":
		source = opts.DBPath
		entries, err = loadDB(ctx, opts.DBPath)
	case opts.URL != "":
		source = opts.URL
		entries, err = LoadURL(ctx, opts.URL)
	case opts.Path != "":
		source = opts.Path
		entries, err = LoadFile(opts.Path)
	default:
		source = "embedded"
		entries, err = Default()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load words from %s: %w", source, err)
	}
	if err := Validate(entries); err != nil {
		return nil, fmt.Errorf("word list %s: %w", source, err)
	}
	log.Info("Loaded %d words from %s", len(entries), source)
	return Normalize(entries), nil
}

// Default returns the list compiled into the binary.
func Default() ([]models.WordEntry, error) {
	return LoadJSON(bytes.NewReader(defaultWords))
}

func LoadFile(path string) ([]models.WordEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadJSON(f)
}

// LoadJSON decodes a JSON array of {"word", "definition"} objects.
func LoadJSON(r io.Reader) ([]models.WordEntry, error) {
	var entries []models.WordEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode word list: %w", err)
	}
	return entries, nil
}

// LoadURL fetches a JSON word list over HTTP.
func LoadURL(ctx context.Context, url string) ([]models.WordEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("word list status %d: %s", resp.StatusCode, string(body))
	}
	return LoadJSON(resp.Body)
}

// loadDB reads an existing word database. db.Open would create a missing
// file, so a mistyped path is reported here instead of leaving an empty
// database behind.
func loadDB(ctx context.Context, path string) ([]models.WordEntry, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoDatabase, path)
		}
		return nil, err
	}
	store, err := db.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Words(ctx)
}

// Validate checks that the list is usable: at least one entry, every word
// made only of ASCII letters.
func Validate(entries []models.WordEntry) error {
	if len(entries) == 0 {
		return ErrEmptyList
	}
	for i, e := range entries {
		if err := logic.ValidateWord(e.Word); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

// Normalize returns a copy of entries with lower-case words and trimmed definitions.
func Normalize(entries []models.WordEntry) []models.WordEntry {
	out := make([]models.WordEntry, len(entries))
	for i, e := range entries {
		out[i] = models.WordEntry{
			Word:       strings.ToLower(e.Word),
			Definition: strings.TrimSpace(e.Definition),
		}
	}
	return out
}
