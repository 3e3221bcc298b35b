// internal/words/words.go
//
// Corpus management for the solver.
//
// Responsibilities:
//   - Load candidate words from a file or fall back to the embedded default list.
//   - Normalize lists (lowercase, a–z only, at least 4 letters, deduplicated, sorted).
//   - Hold the last successfully loaded corpus and refresh it on demand.
//
// Refresh semantics:
//   - A refresh fully replaces the corpus; the last completed refresh wins.
//   - A failed or empty refresh keeps the previous corpus untouched.
//
// Environment variables:
//   WORDS_FILE=/path/to/words.txt
//
// Initialization is run once (sync.Once) for the process-wide provider.
package words

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/spellingbee/assets"
)

// MinLength mirrors the game's shortest playable word.
const MinLength = 4

// ErrEmpty is returned when a loader produces no usable words.
var ErrEmpty = errors.New("words: corpus is empty")

// Corpus is an immutable snapshot of the word list.
type Corpus struct {
	Words       []string  // normalized, sorted, unique
	Fingerprint string    // BLAKE2b-256 of Words; changes iff the contents change
	Source      string    // where the words came from
	LoadedAt    time.Time // when this snapshot was accepted
}

// Loader fetches a raw word list.
type Loader struct {
	Source string
	Load   func(ctx context.Context) ([]string, error)
}

// FileLoader reads one word per line from path.
func FileLoader(path string) Loader {
	return Loader{
		Source: "file:" + path,
		Load: func(ctx context.Context) ([]string, error) {
			return readWordFile(path)
		},
	}
}

// EmbeddedLoader serves the default list compiled into the binary.
func EmbeddedLoader() Loader {
	return Loader{
		Source: "embedded",
		Load: func(ctx context.Context) ([]string, error) {
			return assets.CorpusList()
		},
	}
}

// StaticLoader serves a fixed list (tests, CLI input).
func StaticLoader(source string, list []string) Loader {
	return Loader{
		Source: source,
		Load: func(ctx context.Context) ([]string, error) {
			return list, nil
		},
	}
}

// Provider owns the current corpus.
type Provider struct {
	mu      sync.RWMutex
	current Corpus
	loader  Loader
	now     func() time.Time
}

// NewProvider builds a provider and performs the initial load.
// The initial load must succeed; later refresh failures are tolerated.
func NewProvider(ctx context.Context, l Loader) (*Provider, error) {
	p := &Provider{loader: l, now: time.Now}
	if _, err := p.Refresh(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// Corpus returns the current snapshot.
func (p *Provider) Corpus() Corpus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// WordList returns the current words. Callers must not modify the slice.
func (p *Provider) WordList() []string {
	return p.Corpus().Words
}

// Refresh reloads the corpus from the provider's loader and reports the new
// word count. On error the previous corpus stays in place.
func (p *Provider) Refresh(ctx context.Context) (int, error) {
	raw, err := p.loader.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Str("source", p.loader.Source).Msg("corpus refresh failed")
		return 0, fmt.Errorf("load %s: %w", p.loader.Source, err)
	}
	list := Normalize(raw)
	if len(list) == 0 {
		log.Warn().Str("source", p.loader.Source).Msg("corpus refresh returned no words")
		return 0, ErrEmpty
	}

	c := Corpus{
		Words:       list,
		Fingerprint: Fingerprint(list),
		Source:      p.loader.Source,
		LoadedAt:    p.now().UTC(),
	}
	p.mu.Lock()
	p.current = c
	p.mu.Unlock()

	log.Info().Str("source", c.Source).Int("words", len(list)).Str("fingerprint", c.Fingerprint[:12]).Msg("corpus loaded")
	return len(list), nil
}

// Normalize lowercases and trims every entry, keeps alphabetic words of at
// least MinLength letters, and returns them deduplicated and sorted.
func Normalize(raw []string) []string {
	set := make(map[string]struct{}, len(raw))
	for _, w := range raw {
		w = strings.TrimSpace(strings.ToLower(w))
		if len(w) >= MinLength && isAlpha(w) {
			set[w] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for w := range set {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Fingerprint hashes a normalized list.
func Fingerprint(list []string) string {
	h, _ := blake2b.New256(nil)
	for _, w := range list {
		h.Write([]byte(w))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// readWordFile loads one word per line from a file. Blank lines and '#'
// comments are skipped; everything else is left for Normalize.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// --- process-wide provider ---

var (
	initOnce   sync.Once
	defaultP   *Provider
	initialErr error
)

// Init configures the process-wide provider exactly once: WORDS_FILE when set,
// otherwise the embedded default list.
func Init() error {
	initOnce.Do(func() {
		l := EmbeddedLoader()
		if path := os.Getenv("WORDS_FILE"); path != "" {
			l = FileLoader(path)
		}
		defaultP, initialErr = NewProvider(context.Background(), l)
	})
	return initialErr
}

// Default returns the provider configured by Init, or nil before Init.
func Default() *Provider {
	return defaultP
}

// Stats returns the size and source of the current corpus.
func (p *Provider) Stats() (count int, source string) {
	c := p.Corpus()
	return len(c.Words), c.Source
}
