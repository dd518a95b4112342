package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/akti/portal-api/internal/core/domain"
	"github.com/akti/portal-api/internal/core/ports"
	"github.com/akti/portal-api/internal/core/token"
)

const testSecret = "gate-secret"

func issueFor(t *testing.T, kind domain.PrincipalKind, active bool) string {
	t.Helper()
	raw, _, err := token.NewIssuer(testSecret, time.Hour).Issue(&domain.Principal{
		ID:       "p1",
		Kind:     kind,
		Username: "someone",
		IsActive: active,
	}, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return raw
}

type gateRequest struct {
	path   string
	cookie string
	bearer string
}

// runGate sends one request through the gate and reports whether the
// protected handler ran plus the recorded response.
func runGate(t *testing.T, rev *memRevocations, req gateRequest) (called bool, rec *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	r := httptest.NewRequest(http.MethodGet, req.path, nil)
	if req.cookie != "" {
		r.AddCookie(&http.Cookie{Name: "token", Value: req.cookie})
	}
	if req.bearer != "" {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+req.bearer)
	}
	rec = httptest.NewRecorder()
	c := e.NewContext(r, rec)

	// A typed nil would still satisfy the interface, so only a real
	// store is handed to the gate.
	var revocations ports.TokenRevocations
	if rev != nil {
		revocations = rev
	}

	mw := SessionGate(token.NewVerifier(testSecret), revocations)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return called, rec
}

type memRevocations struct {
	revoked map[string]bool
}

func (m *memRevocations) Revoke(_ context.Context, jti string, _ time.Duration) error {
	m.revoked[jti] = true
	return nil
}

func (m *memRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	return m.revoked[jti], nil
}

func assertRedirectHome(t *testing.T, called bool, rec *httptest.ResponseRecorder) {
	t.Helper()
	if called {
		t.Fatalf("protected handler ran")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
}

func TestGate_UnscopedPathBypassed(t *testing.T) {
	for _, path := range []string{"/", "/api/login", "/health", "/administrator", "/csrx"} {
		called, rec := runGate(t, nil, gateRequest{path: path})
		if !called {
			t.Fatalf("unscoped path %s should bypass the gate", path)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", path, rec.Code)
		}
	}
}

func TestGate_NoTokenRedirects(t *testing.T) {
	called, rec := runGate(t, nil, gateRequest{path: "/admin/dashboard"})
	assertRedirectHome(t, called, rec)
}

func TestGate_AdminCookieAllowed(t *testing.T) {
	raw := issueFor(t, domain.KindAdmin, true)
	called, rec := runGate(t, nil, gateRequest{path: "/admin/dashboard", cookie: raw})
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("admin should pass the admin gate (called=%v code=%d)", called, rec.Code)
	}
}

func TestGate_BearerFallback(t *testing.T) {
	raw := issueFor(t, domain.KindAdmin, true)
	called, _ := runGate(t, nil, gateRequest{path: "/admin/csrs", bearer: raw})
	if !called {
		t.Fatalf("bearer token should be accepted when no cookie is present")
	}
}

func TestGate_CSRDeniedOnAdminRoutes(t *testing.T) {
	raw := issueFor(t, domain.KindCSR, true)
	called, rec := runGate(t, nil, gateRequest{path: "/admin/dashboard", cookie: raw})
	assertRedirectHome(t, called, rec)

	// Same request again: the decision is idempotent.
	called, rec = runGate(t, nil, gateRequest{path: "/admin/dashboard", cookie: raw})
	assertRedirectHome(t, called, rec)
}

func TestGate_AdminAllowedOnCSRRoutes(t *testing.T) {
	raw := issueFor(t, domain.KindAdmin, true)
	called, _ := runGate(t, nil, gateRequest{path: "/csr/students", cookie: raw})
	if !called {
		t.Fatalf("admins may view csr routes")
	}
}

func TestGate_CSRAllowedOnCSRRoutes(t *testing.T) {
	raw := issueFor(t, domain.KindCSR, true)
	called, _ := runGate(t, nil, gateRequest{path: "/csr/csr-dashboard", cookie: raw})
	if !called {
		t.Fatalf("csr should pass the csr gate")
	}
}

// An inactive CSR still passes the gate; activity does not join the
// role predicate.
func TestGate_InactiveCSRStillAllowed(t *testing.T) {
	raw := issueFor(t, domain.KindCSR, false)
	called, _ := runGate(t, nil, gateRequest{path: "/csr/students", cookie: raw})
	if !called {
		t.Fatalf("inactive csr should still pass the csr gate")
	}
}

func TestGate_TamperedTokenRedirects(t *testing.T) {
	raw := issueFor(t, domain.KindAdmin, true)
	tampered := raw[:len(raw)-2] + "zz"
	called, rec := runGate(t, nil, gateRequest{path: "/admin/dashboard", cookie: tampered})
	assertRedirectHome(t, called, rec)
}

func TestGate_ExpiredTokenRedirects(t *testing.T) {
	raw, _, err := token.NewIssuer(testSecret, time.Minute).Issue(&domain.Principal{
		ID:   "p1",
		Kind: domain.KindAdmin,
	}, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	called, rec := runGate(t, nil, gateRequest{path: "/admin/dashboard", cookie: raw})
	assertRedirectHome(t, called, rec)
}

func TestGate_WrongSecretRedirects(t *testing.T) {
	raw, _, err := token.NewIssuer("other-secret", time.Hour).Issue(&domain.Principal{
		ID:   "p1",
		Kind: domain.KindAdmin,
	}, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	called, rec := runGate(t, nil, gateRequest{path: "/admin/dashboard", cookie: raw})
	assertRedirectHome(t, called, rec)
}

func TestGate_RevokedTokenRedirects(t *testing.T) {
	issuer := token.NewIssuer(testSecret, time.Hour)
	raw, claims, err := issuer.Issue(&domain.Principal{ID: "p1", Kind: domain.KindAdmin}, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	rev := &memRevocations{revoked: map[string]bool{claims.ID: true}}
	called, rec := runGate(t, rev, gateRequest{path: "/admin/dashboard", cookie: raw})
	assertRedirectHome(t, called, rec)
}

func TestGate_InjectsClaims(t *testing.T) {
	raw := issueFor(t, domain.KindAdmin, true)

	e := echo.New()
	r := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: raw})
	rec := httptest.NewRecorder()
	c := e.NewContext(r, rec)

	mw := SessionGate(token.NewVerifier(testSecret), nil)
	handler := mw(func(c echo.Context) error {
		if c.Get(CtxUsername) != "someone" {
			t.Fatalf("username not injected")
		}
		if isAdmin, _ := c.Get(CtxIsAdmin).(bool); !isAdmin {
			t.Fatalf("is_admin not injected")
		}
		if c.Get(CtxPrincipalID) != "p1" {
			t.Fatalf("principal id not injected")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}
