// internal/httpserver/session.go
//
// Session handles. Each player holds a signed HS256 token naming their
// session ID, sent back as the hangman_session cookie or an
// "Authorization: Bearer" header. The token only proves the ID was issued by
// this server; the game itself lives in the store.

package httpserver

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionCookieName = "hangman_session"

// sessions signs and verifies session tokens.
type sessions struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// sign creates a token for id that expires after the session TTL.
func (s *sessions) sign(id string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString(s.secret)
	return ss, exp, err
}

// parse verifies tok and returns the session ID it carries.
func (s *sessions) parse(tok string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}
	if !t.Valid || claims.ID == "" {
		return "", errors.New("invalid session token")
	}
	return claims.ID, nil
}

// fromRequest returns the verified session ID, or "" if none is present or valid.
func (s *sessions) fromRequest(r *http.Request) string {
	tok := bearerOrCookie(r)
	if tok == "" {
		return ""
	}
	id, err := s.parse(tok)
	if err != nil {
		return ""
	}
	return id
}

// issue signs a token for id and sets it as the session cookie.
func (s *sessions) issue(w http.ResponseWriter, id string) error {
	tok, exp, err := s.sign(id)
	if err != nil {
		return err
	}
	sameSite := http.SameSiteLaxMode
	if s.secure {
		sameSite = http.SameSiteNoneMode // required for third‑party contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: sameSite,
		Expires:  exp,
	})
	w.Header().Set("X-Session-Token", tok)
	return nil
}

// bearerOrCookie extracts a bearer token from Authorization header or session cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// genID creates a 22‑char URL‑safe, crypto‑random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
