package api

import (
	"net/http"

	"hangman/log"
	"hangman/utils"
	"hangman/view"
)

const sessionCookie = "hangman_session"

// Helper: read the session id from the cookie. Returns ("", false) if there is none.
func sessionFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// ensureSession returns the caller's session id, issuing a new cookie if needed.
func ensureSession(w http.ResponseWriter, r *http.Request) string {
	if id, ok := sessionFromRequest(r); ok {
		return id
	}
	// No cookie yet: mint a fresh id. The game itself is started lazily by Sessions.
	id := utils.GenerateID()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	log.With("session", id).Debug("New session")
	return id
}

// transition is one session operation. Its view is broadcast to the session's
// WebSocket clients so other open tabs stay in sync.
type transition func(sessionID string) (view.View, error)

// formAction runs t for a form POST and sends the browser back to the game.
func (s *Server) formAction(t transition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := ensureSession(w, r)
		v, err := t(sessionID)
		if err != nil {
			log.With("session", sessionID).Error("Transition failed: %v", err)
			http.Error(w, "Game unavailable", http.StatusInternalServerError)
			return
		}
		s.hub.Broadcast(sessionID, v)
		// Post/Redirect/Get so a refresh never repeats the guess
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// HTTP POST handler: guess the letter in the "letter" form field.
// Path: /guess
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	letter := r.FormValue("letter") // anything but one letter is ignored by the game logic
	s.formAction(func(id string) (view.View, error) {
		return s.sessions.Guess(id, letter)
	})(w, r)
}

// HTTP POST handler: throw the current game away and start another.
// Path: /reset
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.formAction(s.sessions.Reset)(w, r)
}

// HTTP POST handler: show or hide the definition of a finished game.
// Path: /definition
func (s *Server) handleDefinition(w http.ResponseWriter, r *http.Request) {
	s.formAction(s.sessions.ToggleDefinition)(w, r)
}

// HTTP GET handler: the session's view as JSON.
// Path: /state
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sessionID := ensureSession(w, r)
	v, err := s.sessions.View(sessionID)
	if err != nil {
		log.With("session", sessionID).Error("Loading state failed: %v", err)
		utils.RenderJSON(w, http.StatusInternalServerError, map[string]string{"error": "game unavailable"})
		return
	}
	utils.RenderJSON(w, http.StatusOK, v)
}
