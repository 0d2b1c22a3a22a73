package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/urbangear/retail-app/gate"
)

func TestDigestIsStable(t *testing.T) {
	a := Digest("root123")
	b := Digest("root123")
	if a != b {
		t.Fatalf("digest not stable: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if Digest("root124") == a {
		t.Fatal("different inputs must not collide")
	}
}

func TestSessionRoundTrip(t *testing.T) {
	w := httptest.NewRecorder()
	CreateSession(w, 7, "manager")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	uid, role, ok := ParseSession(req)
	if !ok {
		t.Fatal("expected valid session")
	}
	if uid != 7 || role != "manager" {
		t.Fatalf("unexpected session: uid=%d role=%s", uid, role)
	}
}

func TestSessionTamperedSignatureRejected(t *testing.T) {
	w := httptest.NewRecorder()
	CreateSession(w, 7, "client")
	c := w.Result().Cookies()[0]
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: c.Name, Value: "7:admin." + c.Value[len(c.Value)-10:]})
	if _, _, ok := ParseSession(req); ok {
		t.Fatal("tampered cookie must not parse")
	}
}

func TestMiddlewareFallsBackToGuest(t *testing.T) {
	var got Session
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = SessionFrom(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got.AccountID != 0 {
		t.Fatalf("expected anonymous session, got id %d", got.AccountID)
	}
	if got.Perms.Has(gate.PermCatalogFilter) {
		t.Fatal("guest must not get filter controls")
	}
}

func TestRequireBlocksMissingPermission(t *testing.T) {
	h := Middleware(Require(gate.PermItemDelete, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/items/delete", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}
