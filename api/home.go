package api

import (
	"net/http"

	"hangman/log"
	"hangman/utils"
)

// HTTP GET handler: render the game page for the caller's session, starting
// a game on the first visit.
// Path: /
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	sessionID := ensureSession(w, r)

	v, err := s.sessions.View(sessionID)
	if err != nil {
		log.With("session", sessionID).Error("Loading game failed: %v", err)
		http.Error(w, "Game unavailable", http.StatusInternalServerError)
		return
	}

	// The template marks the board with game_over; game.js reloads only when
	// a pushed state disagrees with it.
	utils.RenderPage(w, "game.html", map[string]interface{}{
		"View": v,
	})
}
