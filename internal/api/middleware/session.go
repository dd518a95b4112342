package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/akti/portal-api/internal/api/metrics"
	"github.com/akti/portal-api/internal/core/ports"
	"github.com/akti/portal-api/internal/core/token"
)

// Context keys populated by the gate for downstream handlers.
const (
	CtxPrincipalID = "principal_id"
	CtxUsername    = "username"
	CtxIsAdmin     = "is_admin"
	CtxIsCSR       = "is_csr"
	CtxIsActive    = "is_active"
	CtxIsLeadRole  = "is_lead_role"
)

const sessionCookieName = "token"

// loginPath is where every denied request is silently sent. Denials
// never carry an error payload: protected routes degrade to "please
// log in" without leaking why.
const loginPath = "/"

// SessionGate is the request gate for role-scoped path prefixes. It is
// meant to be registered with e.Pre so it runs before routing and
// before any data access. For each request it decides allow or
// redirect from (path, token) alone:
//
//	/admin/* requires isAdmin
//	/csr/*   requires isCSR or isAdmin
//
// The candidate token is the "token" cookie, falling back to an
// Authorization bearer header. A missing, malformed, expired, badly
// signed, or revoked token is treated identically to no token at all.
// Unscoped paths pass through untouched.
//
// On allow, the verified claims are set on the context so handlers
// never re-derive identity from the raw token.
func SessionGate(verifier *token.Verifier, revocations ports.TokenRevocations) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scope, scoped := routeScope(c.Request().URL.Path)
			if !scoped {
				return next(c)
			}

			raw := extractToken(c)
			if raw == "" {
				metrics.GateDecisionsTotal.WithLabelValues(scope, "redirect").Inc()
				return c.Redirect(http.StatusFound, loginPath)
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				metrics.GateDecisionsTotal.WithLabelValues(scope, "redirect").Inc()
				return c.Redirect(http.StatusFound, loginPath)
			}

			// Denylist lookup failures fail open: revocation is a
			// best-effort addition on top of the short-lived token.
			if revocations != nil && claims.ID != "" {
				if revoked, err := revocations.IsRevoked(c.Request().Context(), claims.ID); err == nil && revoked {
					metrics.GateDecisionsTotal.WithLabelValues(scope, "redirect").Inc()
					return c.Redirect(http.StatusFound, loginPath)
				}
			}

			allowed := claims.IsAdmin
			if scope == "csr" {
				allowed = claims.IsCSR || claims.IsAdmin
			}
			if !allowed {
				metrics.GateDecisionsTotal.WithLabelValues(scope, "redirect").Inc()
				return c.Redirect(http.StatusFound, loginPath)
			}

			c.Set(CtxPrincipalID, claims.PrincipalID)
			c.Set(CtxUsername, claims.Username)
			c.Set(CtxIsAdmin, claims.IsAdmin)
			c.Set(CtxIsCSR, claims.IsCSR)
			c.Set(CtxIsActive, claims.IsActive)
			c.Set(CtxIsLeadRole, claims.IsLeadRole)

			metrics.GateDecisionsTotal.WithLabelValues(scope, "allow").Inc()
			return next(c)
		}
	}
}

// routeScope reports which role-scoped prefix the path falls under.
// Prefixes match whole segments: /administrator is not /admin.
func routeScope(path string) (string, bool) {
	switch {
	case path == "/admin" || strings.HasPrefix(path, "/admin/"):
		return "admin", true
	case path == "/csr" || strings.HasPrefix(path, "/csr/"):
		return "csr", true
	}
	return "", false
}

// extractToken prefers the session cookie and falls back to a bearer
// header, mirroring how the two client-side stores present the token.
func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return header[7:]
	}
	return ""
}
