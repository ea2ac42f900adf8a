package api

import (
	"sync"
	"time"

	"hangman/log"
	"hangman/logic"
	"hangman/models"
	"hangman/view"
)

// Per-session record: the game itself plus the display toggle and an idle clock.
type session struct {
	state          models.GameState
	showDefinition bool
	lastSeen       time.Time // refreshed on every access, read by Prune
}

// Sessions holds one game per browser session. Each operation loads the
// session's state, runs a single transition and stores the result.
type Sessions struct {
	mu     sync.Mutex // guards games and serializes use of source
	games  map[string]*session
	words  []models.WordEntry
	source logic.Source
	now    func() time.Time // swapped in tests
}

func NewSessions(words []models.WordEntry, source logic.Source) *Sessions {
	return &Sessions{
		games:  make(map[string]*session),
		words:  words,
		source: source,
		now:    time.Now,
	}
}

// get returns the session for id, starting a game if there is none.
// Callers hold s.mu.
func (s *Sessions) get(id string) (*session, error) {
	if sess, ok := s.games[id]; ok {
		sess.lastSeen = s.now()
		return sess, nil
	}
	// First visit (or pruned): start a fresh game
	state, err := logic.NewGame(s.words, s.source)
	if err != nil {
		return nil, err
	}
	sess := &session{state: state, lastSeen: s.now()}
	s.games[id] = sess
	log.With("session", id).Debug("Started game")
	return sess, nil
}

// View returns the session's state without changing it.
func (s *Sessions) View(id string) (view.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return view.View{}, err
	}
	return view.Build(sess.state, sess.showDefinition), nil
}

// Guess applies raw input as a guess. Invalid input leaves the game unchanged.
func (s *Sessions) Guess(id, input string) (view.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return view.View{}, err
	}
	prev := sess.state.Status
	sess.state = logic.GuessString(sess.state, input)

	// Log the transition into won/lost once, not every guess after it
	if prev == models.StatusPlaying && sess.state.Over() {
		log.With("session", id).Info("Game %s with %d wrong guesses", sess.state.Status, sess.state.WrongCount())
	}
	return view.Build(sess.state, sess.showDefinition), nil
}

// Reset replaces the session's game with a new one.
func (s *Sessions) Reset(id string) (view.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return view.View{}, err
	}
	state, err := logic.Reset(s.words, s.source)
	if err != nil {
		return view.View{}, err
	}
	// A new game always starts with the definition hidden
	sess.state = state
	sess.showDefinition = false
	return view.Build(sess.state, false), nil
}

// ToggleDefinition flips definition visibility. It does nothing while playing.
func (s *Sessions) ToggleDefinition(id string) (view.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.get(id)
	if err != nil {
		return view.View{}, err
	}
	if sess.state.Over() {
		sess.showDefinition = !sess.showDefinition
	}
	return view.Build(sess.state, sess.showDefinition), nil
}

// Prune drops sessions not seen since before. It returns how many were removed.
func (s *Sessions) Prune(before time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.games {
		if sess.lastSeen.Before(before) {
			delete(s.games, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}
