// internal/httpserver/routes_game.go
//
// HTTP routes for puzzle sessions.
//   - POST /game/new                 → create a session, returns {gameId, token, view}
//   - GET  /game/{id}                → current view
//   - PUT  /game/{id}/letters        → replace all seven letters
//   - PUT  /game/{id}/letters/{slot} → set one letter (slot 0 = center)
//   - POST /game/{id}/shuffle        → shuffle outer letters (hints kept)
//   - POST /game/{id}/reset          → clear letters and hints
//   - POST /game/{id}/hints/next     → reveal the next hint tier
//   - POST /game/{id}/hints/all      → reveal everything
//   - POST /game/{id}/hints/reset    → hide hints, keep letters
//   - POST /game/{id}/today          → load today's puzzle (state untouched on failure)
//
// Every /game/{id} route requires the session token issued by /game/new.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spellingbee/internal/daily"
	"github.com/robalobadob/spellingbee/internal/game"
	"github.com/robalobadob/spellingbee/internal/letters"
	"github.com/robalobadob/spellingbee/internal/store"
)

// mountGame registers all /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Use(requireGameToken)
		r.Get("/", s.handleGetGame)
		r.Put("/letters", s.handleSetAll)
		r.Put("/letters/{slot}", s.handleSetLetter)
		r.Post("/shuffle", s.action("shuffle", func(g *game.Game) error { g.Shuffle(nil); return nil }))
		r.Post("/reset", s.action("reset", func(g *game.Game) error { g.Reset(); return nil }))
		r.Post("/hints/next", s.action("reveal_next", func(g *game.Game) error { g.RevealNext(); return nil }))
		r.Post("/hints/all", s.action("reveal_all", func(g *game.Game) error { g.RevealAll(); return nil }))
		r.Post("/hints/reset", s.action("reset_hints", func(g *game.Game) error { g.ResetHints(); return nil }))
		r.Post("/today", s.handleLoadToday)
	})
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Letters []string `json:"letters"` // optional initial letters, center first
}
type newGameRes struct {
	GameID string    `json:"gameId"`
	Token  string    `json:"token"`
	View   game.View `json:"view"`
}

// handleNewGame creates a session, optionally seeded with letters, and
// issues its token (also set as a cookie).
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	g := game.New()
	if len(req.Letters) > 0 {
		g.SetAll(req.Letters)
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	sessionsActive.Set(float64(s.store.Len()))

	tok, exp, err := signGameToken(g.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	setTokenCookie(w, tok, exp)
	actionsTotal.WithLabelValues("new").Inc()
	log.Info().Str("gameId", g.ID).Msg("game created")
	writeJSON(w, http.StatusOK, newGameRes{GameID: g.ID, Token: tok, View: s.view(g)})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), gameID(r))
	if err != nil {
		s.storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.view(g))
}

// setAllReq is the payload for PUT /game/{id}/letters.
type setAllReq struct {
	Letters []string `json:"letters"`
}

func (s *Server) handleSetAll(w http.ResponseWriter, r *http.Request) {
	var req setAllReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.mutate(w, r, "set_all", func(g *game.Game) error {
		g.SetAll(req.Letters)
		return nil
	})
}

// setLetterReq/Res payloads for PUT /game/{id}/letters/{slot}.
type setLetterReq struct {
	Letter string `json:"letter"`
}
type setLetterRes struct {
	Value string    `json:"value"` // normalized letter actually stored
	View  game.View `json:"view"`
}

func (s *Server) handleSetLetter(w http.ResponseWriter, r *http.Request) {
	slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_slot")
		return
	}
	var req setLetterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	var stored string
	g, err := s.store.Update(r.Context(), gameID(r), func(g *game.Game) error {
		v, err := g.SetLetter(slot, req.Letter)
		stored = v
		return err
	})
	if errors.Is(err, letters.ErrIndex) {
		writeError(w, http.StatusBadRequest, "bad_slot")
		return
	}
	if err != nil {
		s.storeError(w, err)
		return
	}
	actionsTotal.WithLabelValues("set_letter").Inc()
	writeJSON(w, http.StatusOK, setLetterRes{Value: stored, View: s.view(g)})
}

// todayErrRes mirrors the provider failure shape: {success:false, error, hint}.
type todayErrRes struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Hint    string `json:"hint,omitempty"`
}

// handleLoadToday fetches today's puzzle outside the store lock and applies
// it only once it has landed. A failed fetch leaves the session as it was.
func (s *Server) handleLoadToday(w http.ResponseWriter, r *http.Request) {
	if s.puzzles == nil {
		writeError(w, http.StatusNotImplemented, "no_puzzle_provider")
		return
	}
	set, date, err := s.engine.FetchToday(r.Context(), s.puzzles)
	if err != nil {
		providerFailures.WithLabelValues("puzzle").Inc()
		writeJSON(w, http.StatusBadGateway, todayErrRes{Error: err.Error(), Hint: daily.HintOf(err)})
		return
	}
	s.mutate(w, r, "load_today", func(g *game.Game) error {
		game.ApplyPuzzle(g, set, date)
		return nil
	})
}

// action adapts a no-payload mutation into a handler.
func (s *Server) action(name string, fn func(g *game.Game) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mutate(w, r, name, fn)
	}
}

// mutate applies fn to the session in the URL and responds with its view.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, name string, fn func(g *game.Game) error) {
	g, err := s.store.Update(r.Context(), gameID(r), fn)
	if err != nil {
		s.storeError(w, err)
		return
	}
	actionsTotal.WithLabelValues(name).Inc()
	writeJSON(w, http.StatusOK, s.view(g))
}

func (s *Server) view(g *game.Game) game.View {
	start := time.Now()
	v := s.engine.View(g)
	solveDuration.Observe(time.Since(start).Seconds())
	return v
}

func (s *Server) storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	log.Error().Err(err).Msg("update game")
	writeError(w, http.StatusInternalServerError, "server_error")
}
