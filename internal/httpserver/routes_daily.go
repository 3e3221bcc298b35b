// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily puzzle and the corpus.
//   - GET  /daily/today    → today's letters, {success, centerLetter, outerLetters, date}
//   - GET  /daily/recent   → previously issued puzzles (needs the daily store)
//   - GET  /corpus         → size, source and fingerprint of the loaded corpus
//   - POST /corpus/refresh → reload the corpus, {success, wordCount, error?}
//
// Failures keep whatever was loaded before and are reported, never applied.

package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spellingbee/internal/daily"
	"github.com/robalobadob/spellingbee/internal/database"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/today", s.handleToday)
		r.Get("/recent", s.handleRecent)
	})
}

// todayRes is returned by /daily/today on success.
type todayRes struct {
	Success bool `json:"success"`
	daily.Puzzle
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	if s.puzzles == nil {
		writeError(w, http.StatusNotImplemented, "no_puzzle_provider")
		return
	}
	p, err := s.puzzles.FetchToday(r.Context())
	if err != nil {
		providerFailures.WithLabelValues("puzzle").Inc()
		writeJSON(w, http.StatusBadGateway, todayErrRes{Error: err.Error(), Hint: daily.HintOf(err)})
		return
	}
	writeJSON(w, http.StatusOK, todayRes{Success: true, Puzzle: p})
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	if s.daily == nil {
		writeError(w, http.StatusNotImplemented, "no_daily_store")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.daily.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"puzzles": rows})
}

// -----------------------------------------------------------------------------
// /corpus

// mountCorpus registers the corpus routes.
func (s *Server) mountCorpus(r chi.Router) {
	r.Get("/corpus", s.handleCorpus)
	r.Post("/corpus/refresh", s.handleRefresh)
}

// corpusRes describes the loaded corpus.
type corpusRes struct {
	Words       int                `json:"words"`
	Source      string             `json:"source"`
	Fingerprint string             `json:"fingerprint"`
	LoadedAt    time.Time          `json:"loadedAt"`
	Refreshes   []database.Refresh `json:"refreshes,omitempty"`
}

func (s *Server) handleCorpus(w http.ResponseWriter, r *http.Request) {
	c := s.engine.Corpus().Corpus()
	res := corpusRes{Words: len(c.Words), Source: c.Source, Fingerprint: c.Fingerprint, LoadedAt: c.LoadedAt}
	if s.db != nil {
		if rows, err := database.RecentRefreshes(r.Context(), s.db, 10); err == nil {
			res.Refreshes = rows
		} else {
			log.Warn().Err(err).Msg("list corpus refreshes")
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// refreshRes is the {success, wordCount, error?} result of a refresh.
type refreshRes struct {
	Success   bool   `json:"success"`
	WordCount int    `json:"wordCount"`
	Error     string `json:"error,omitempty"`
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	n, err := s.engine.RefreshCorpus(r.Context())
	c := s.engine.Corpus().Corpus()

	entry := database.Refresh{Source: c.Source, WordCount: n, Fingerprint: c.Fingerprint}
	if err != nil {
		entry.Error = err.Error()
	}
	if s.db != nil {
		// best effort; the log is informational
		if lerr := database.RecordRefresh(r.Context(), s.db, entry); lerr != nil {
			log.Warn().Err(lerr).Msg("record corpus refresh")
		}
	}

	if err != nil {
		providerFailures.WithLabelValues("corpus").Inc()
		writeJSON(w, http.StatusBadGateway, refreshRes{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, refreshRes{Success: true, WordCount: n})
}
