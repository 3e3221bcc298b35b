// internal/httpserver/token.go
//
// Session tokens for /game/{id} routes.
// Responsibilities:
//   - Sign an HS256 JWT binding a game ID (JWT_SECRET, JWT_EXPIRES_DAYS).
//   - Read it back from "Authorization: Bearer" or the session cookie.
//   - Middleware that rejects requests whose token does not match {id}.
//
// Guests never sign up: holding the token for a game is what grants access
// to it.

package httpserver

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

const defaultSecret = "dev_secret_change_me"

// ctxGameKey is the context key type for the authorized game ID.
type ctxGameKey struct{}

func jwtSecret() []byte {
	return []byte(getEnv("JWT_SECRET", defaultSecret))
}

func cookieName() string { return getEnv("COOKIE_NAME", "bee_token") }

// signGameToken creates a token for gameID with a configurable expiry
// (JWT_EXPIRES_DAYS; default 14).
func signGameToken(gameID string) (string, time.Time, error) {
	days := 14
	if v := os.Getenv("JWT_EXPIRES_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	now := time.Now()
	exp := now.Add(time.Duration(days) * 24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"gid": gameID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := t.SignedString(jwtSecret())
	return ss, exp, err
}

// parseGameToken validates tok and returns the game ID it grants.
func parseGameToken(tok string) (string, bool) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return "", false
	}
	gid, _ := claims["gid"].(string)
	return gid, gid != ""
}

// setTokenCookie writes the session cookie with appropriate security attributes.
func setTokenCookie(w http.ResponseWriter, token string, exp time.Time) {
	secure := os.Getenv("NODE_ENV") == "production"
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for third-party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from Authorization header or the session cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(cookieName()); err == nil {
		return c.Value
	}
	return ""
}

// gameID returns the game ID authorized by requireGameToken.
func gameID(r *http.Request) string {
	id, _ := r.Context().Value(ctxGameKey{}).(string)
	return id
}

// requireGameToken enforces a valid token for the {id} in the route.
func requireGameToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearerOrCookie(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		gid, ok := parseGameToken(tok)
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		if gid != chi.URLParam(r, "id") {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		ctx := context.WithValue(r.Context(), ctxGameKey{}, gid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
