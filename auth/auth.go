// Package auth implements credential digests and signed session cookies.
// A session carries the account id and role code; the role is resolved
// into a permission set once at login and re-derived from the cookie on
// each request, never by per-screen role string comparisons.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urbangear/retail-app/gate"
	"github.com/urbangear/retail-app/internal/models"
)

type ctxKey string

const (
	sessionCookieName = "session"
	sessionCtxKey     = ctxKey("session")
)

// Session is the authenticated (or guest) identity attached to a request.
type Session struct {
	AccountID uint
	FullName  string
	Perms     gate.Set
}

// Guest returns the unauthenticated browse session.
func Guest() Session {
	return Session{Perms: gate.ForRole(models.RoleGuest)}
}

// Digest returns the hex sha256 of a password. Credentials match only on
// exact digest equality.
func Digest(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Secret returns SESSION_SECRET or default dev value.
func Secret() string {
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "devsessionsecret"
}

func sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CreateSession sets a signed cookie with the account id and role code.
func CreateSession(w http.ResponseWriter, accountID uint, roleCode string) {
	payload := strconv.FormatUint(uint64(accountID), 10) + ":" + roleCode
	value := payload + "." + sign(payload)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(14 * 24 * time.Hour),
	})
}

// ClearSession deletes the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// ParseSession validates the cookie and returns account id and role code.
func ParseSession(r *http.Request) (uint, string, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return 0, "", false
	}
	dot := strings.LastIndex(c.Value, ".")
	if dot <= 0 {
		return 0, "", false
	}
	payload, sig := c.Value[:dot], c.Value[dot+1:]
	if !hmac.Equal([]byte(sig), []byte(sign(payload))) {
		return 0, "", false
	}
	parts := strings.SplitN(payload, ":", 2)
	if len(parts) != 2 {
		return 0, "", false
	}
	id64, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil || id64 == 0 {
		return 0, "", false
	}
	return uint(id64), parts[1], true
}

// WithSession stores the session in context.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, s)
}

// SessionFrom extracts the session; falls back to the guest session so
// callers always get a usable permission set.
func SessionFrom(ctx context.Context) Session {
	if v, ok := ctx.Value(sessionCtxKey).(Session); ok {
		return v
	}
	return Guest()
}

// Middleware attaches the parsed session (or the guest session) to the
// request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := Guest()
		if uid, role, ok := ParseSession(r); ok {
			s = Session{AccountID: uid, Perms: gate.ForRole(role)}
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// Require returns 401/403 when the session lacks the permission.
func Require(perm gate.Permission, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := SessionFrom(r.Context())
		if err := gate.Require(s.Perms, perm); err != nil {
			status := http.StatusForbidden
			if s.AccountID == 0 {
				status = http.StatusUnauthorized
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			if _, werr := w.Write([]byte(`{"error":"unauthorized"}`)); werr != nil {
				_ = werr
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}
