package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/spellingbee/internal/daily"
	"github.com/robalobadob/spellingbee/internal/database"
	"github.com/robalobadob/spellingbee/internal/game"
	"github.com/robalobadob/spellingbee/internal/store"
	"github.com/robalobadob/spellingbee/internal/words"
)

// Valid for A/LPNETY: penalty (pangram), plate, petal, leap, plant, apple.
var testCorpus = []string{"penalty", "plate", "petal", "leap", "plant", "apple", "tent", "zeal"}

type fakePuzzles struct {
	pz  daily.Puzzle
	err error
}

func (f fakePuzzles) FetchToday(ctx context.Context) (daily.Puzzle, error) { return f.pz, f.err }

type harness struct {
	srv   *Server
	store store.Store
	loads *atomic.Int32
}

// newHarness builds a server whose corpus loader fails after failAfter
// successful loads (0 means never).
func newHarness(t *testing.T, puzzles game.PuzzleProvider, failAfter int32) harness {
	t.Helper()
	loads := &atomic.Int32{}
	l := words.Loader{
		Source: "test",
		Load: func(ctx context.Context) ([]string, error) {
			n := loads.Add(1)
			if failAfter > 0 && n > failAfter {
				return nil, errors.New("corpus offline")
			}
			return testCorpus, nil
		},
	}
	wp, err := words.NewProvider(context.Background(), l)
	require.NoError(t, err)

	db, err := database.OpenMigrated(filepath.Join(t.TempDir(), "bee.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st := store.NewMemoryStore()
	srv := New(st, game.NewEngine(wp), Options{Puzzles: puzzles, DailyStore: daily.NewStore(db), DB: db})
	return harness{srv: srv, store: st, loads: loads}
}

func (h harness) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.srv.Router().ServeHTTP(rec, req)
	return rec
}

func (h harness) newGame(t *testing.T, ls ...string) newGameRes {
	t.Helper()
	rec := h.do(t, http.MethodPost, "/game/new", "", newGameReq{Letters: ls})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res newGameRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) game.View {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var v game.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	h := newHarness(t, nil, 0)
	rec := h.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestNotFoundIsJSON(t *testing.T) {
	h := newHarness(t, nil, 0)
	rec := h.do(t, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"not_found"`)
}

func TestNewGameSetsCookieAndView(t *testing.T) {
	h := newHarness(t, nil, 0)
	rec := h.do(t, http.MethodPost, "/game/new", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res newGameRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.NotEmpty(t, res.GameID)
	assert.False(t, res.View.Complete)
	assert.Equal(t, "none", res.View.Hints.Tier)
	assert.Nil(t, res.View.Hints.Totals)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "bee_token", cookies[0].Name)
	assert.Equal(t, res.Token, cookies[0].Value)
	assert.Equal(t, 1, h.store.Len())
}

func TestGameRoutesRequireToken(t *testing.T) {
	h := newHarness(t, nil, 0)
	a := h.newGame(t)
	b := h.newGame(t)

	rec := h.do(t, http.MethodGet, "/game/"+a.GameID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(t, http.MethodGet, "/game/"+a.GameID, "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_token")

	rec = h.do(t, http.MethodGet, "/game/"+a.GameID, b.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(t, http.MethodGet, "/game/"+a.GameID, a.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCookieTokenAccepted(t *testing.T) {
	h := newHarness(t, nil, 0)
	g := h.newGame(t)

	req := httptest.NewRequest(http.MethodGet, "/game/"+g.GameID, nil)
	req.AddCookie(&http.Cookie{Name: "bee_token", Value: g.Token})
	rec := httptest.NewRecorder()
	h.srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetLetters(t *testing.T) {
	h := newHarness(t, nil, 0)
	g := h.newGame(t)

	rec := h.do(t, http.MethodPut, "/game/"+g.GameID+"/letters/0", g.Token, setLetterReq{Letter: "qa"})
	require.Equal(t, http.StatusOK, rec.Code)
	var res setLetterRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "A", res.Value)
	assert.Equal(t, "A", res.View.Center)

	rec = h.do(t, http.MethodPut, "/game/"+g.GameID+"/letters/7", g.Token, setLetterReq{Letter: "b"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(t, http.MethodPut, "/game/"+g.GameID+"/letters/x", g.Token, setLetterReq{Letter: "b"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	v := decodeView(t, h.do(t, http.MethodPut, "/game/"+g.GameID+"/letters", g.Token,
		setAllReq{Letters: []string{"a", "l", "p", "n", "e", "t", "y"}}))
	assert.True(t, v.Complete)
	assert.Equal(t, []string{"A", "L", "P", "N", "E", "T", "Y"}, v.Letters)
}

func TestHintsProgressAndGate(t *testing.T) {
	h := newHarness(t, nil, 0)
	g := h.newGame(t, "a", "l", "p", "n", "e", "t", "y")
	path := "/game/" + g.GameID

	v := decodeView(t, h.do(t, http.MethodGet, path, g.Token, nil))
	assert.Nil(t, v.Hints.Totals)
	assert.Empty(t, v.Hints.Groups)

	v = decodeView(t, h.do(t, http.MethodPost, path+"/hints/next", g.Token, nil))
	assert.Equal(t, "total", v.Hints.Tier)
	require.NotNil(t, v.Hints.Totals)
	assert.Equal(t, 6, v.Hints.Totals.Words)
	assert.Equal(t, 1, v.Hints.Totals.PangramCount)
	assert.Empty(t, v.Hints.Groups)

	v = decodeView(t, h.do(t, http.MethodPost, path+"/hints/all", g.Token, nil))
	assert.Equal(t, "all", v.Hints.Tier)
	assert.False(t, v.Hints.CanRevealMore)
	require.NotEmpty(t, v.Hints.Groups)
	assert.Equal(t, 4, v.Hints.Groups[0].Length)
	assert.Equal(t, "leap", v.Hints.Groups[0].Words[0].Word)

	v = decodeView(t, h.do(t, http.MethodPost, path+"/hints/reset", g.Token, nil))
	assert.Equal(t, "none", v.Hints.Tier)
	assert.True(t, v.Complete)
}

func TestShuffleKeepsHintsAndCenter(t *testing.T) {
	h := newHarness(t, nil, 0)
	g := h.newGame(t, "a", "l", "p", "n", "e", "t", "y")
	path := "/game/" + g.GameID

	h.do(t, http.MethodPost, path+"/hints/next", g.Token, nil)
	h.do(t, http.MethodPost, path+"/hints/next", g.Token, nil)
	v := decodeView(t, h.do(t, http.MethodPost, path+"/shuffle", g.Token, nil))
	assert.Equal(t, "lengths", v.Hints.Tier)
	assert.Equal(t, "A", v.Center)
	assert.ElementsMatch(t, []string{"L", "P", "N", "E", "T", "Y"}, v.Letters[1:])
}

func TestResetClearsEverything(t *testing.T) {
	h := newHarness(t, nil, 0)
	g := h.newGame(t, "a", "l", "p", "n", "e", "t", "y")
	path := "/game/" + g.GameID

	h.do(t, http.MethodPost, path+"/hints/all", g.Token, nil)
	v := decodeView(t, h.do(t, http.MethodPost, path+"/reset", g.Token, nil))
	assert.Equal(t, "none", v.Hints.Tier)
	assert.False(t, v.Complete)
	assert.Equal(t, make([]string, 7), v.Letters)
}

func TestLoadToday(t *testing.T) {
	pz := daily.Puzzle{Date: "2026-10-19", Center: "A", Outer: []string{"E", "L", "N", "P", "T", "Y"}}
	h := newHarness(t, fakePuzzles{pz: pz}, 0)
	g := h.newGame(t)

	v := decodeView(t, h.do(t, http.MethodPost, "/game/"+g.GameID+"/today", g.Token, nil))
	assert.Equal(t, "2026-10-19", v.PuzzleDate)
	assert.Equal(t, []string{"A", "E", "L", "N", "P", "T", "Y"}, v.Letters)
	assert.True(t, v.Complete)
}

func TestLoadTodayFailureLeavesStateUntouched(t *testing.T) {
	fail := &daily.FetchError{Err: errors.New("upstream down"), Hint: "enter the letters manually"}
	h := newHarness(t, fakePuzzles{err: fail}, 0)
	g := h.newGame(t, "a", "l", "p", "n", "e", "t", "y")
	path := "/game/" + g.GameID
	h.do(t, http.MethodPost, path+"/hints/next", g.Token, nil)

	rec := h.do(t, http.MethodPost, path+"/today", g.Token, nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var res todayErrRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Success)
	assert.Equal(t, "upstream down", res.Error)
	assert.Equal(t, "enter the letters manually", res.Hint)

	v := decodeView(t, h.do(t, http.MethodGet, path, g.Token, nil))
	assert.Equal(t, []string{"A", "L", "P", "N", "E", "T", "Y"}, v.Letters)
	assert.Equal(t, "total", v.Hints.Tier)
	assert.Empty(t, v.PuzzleDate)
}

func TestDailyToday(t *testing.T) {
	pz := daily.Puzzle{Date: "2026-10-19", Center: "A", Outer: []string{"E", "L", "N", "P", "T", "Y"}}
	h := newHarness(t, fakePuzzles{pz: pz}, 0)

	rec := h.do(t, http.MethodGet, "/daily/today", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"success":true,"date":"2026-10-19","centerLetter":"A","outerLetters":["E","L","N","P","T","Y"]}`,
		rec.Body.String())

	h = newHarness(t, nil, 0)
	rec = h.do(t, http.MethodGet, "/daily/today", "", nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestDailyTodayWithRealProvider(t *testing.T) {
	h := newHarness(t, nil, 0)
	wp, err := words.NewProvider(context.Background(), words.StaticLoader("test", testCorpus))
	require.NoError(t, err)
	h.srv.puzzles = daily.NewProvider(h.srv.daily, wp, "salt")

	rec := h.do(t, http.MethodGet, "/daily/today", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res todayRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Success)
	assert.Len(t, res.Outer, 6)

	rec = h.do(t, http.MethodGet, "/daily/recent", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), res.Date)
}

func TestDailyRecentHugeLimit(t *testing.T) {
	h := newHarness(t, nil, 0)
	for _, q := range []string{"99999999999999", "-5", "abc", "100000000"} {
		rec := h.do(t, http.MethodGet, "/daily/recent?limit="+q, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, q)
		assert.JSONEq(t, `{"puzzles":[]}`, rec.Body.String(), q)
	}
}

func TestCorpusRefresh(t *testing.T) {
	h := newHarness(t, nil, 1)

	rec := h.do(t, http.MethodGet, "/corpus", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var before corpusRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &before))
	assert.Equal(t, len(testCorpus), before.Words)
	assert.Equal(t, "test", before.Source)

	rec = h.do(t, http.MethodPost, "/corpus/refresh", "", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var res refreshRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "corpus offline")

	rec = h.do(t, http.MethodGet, "/corpus", "", nil)
	var after corpusRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &after))
	assert.Equal(t, before.Fingerprint, after.Fingerprint)
	assert.Equal(t, before.Words, after.Words)
	require.Len(t, after.Refreshes, 1)
	assert.Contains(t, after.Refreshes[0].Error, "corpus offline")
}

func TestCorpusRefreshSuccess(t *testing.T) {
	h := newHarness(t, nil, 0)
	rec := h.do(t, http.MethodPost, "/corpus/refresh", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"wordCount":8}`, rec.Body.String())
	assert.EqualValues(t, 2, h.loads.Load())
}

func TestUnknownGame(t *testing.T) {
	h := newHarness(t, nil, 0)
	tok, _, err := signGameToken("missing")
	require.NoError(t, err)
	rec := h.do(t, http.MethodGet, "/game/missing", tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
