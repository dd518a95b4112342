package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/akti/portal-api/internal/api/metrics"
	"github.com/akti/portal-api/internal/core/domain"
	"github.com/akti/portal-api/internal/core/ports"
)

const (
	sessionCookieName = "token"
	// The cookie outlives the token on purpose: it is only a transport
	// wrapper, and the signed payload inside carries its own 24h
	// validity that the gate always re-checks.
	sessionCookieMaxAge = 7 * 24 * 60 * 60
)

// AuthHandler serves the login and logout endpoints.
type AuthHandler struct {
	authService   ports.AuthService
	secureCookies bool
}

// NewAuthHandler builds the handler. secureCookies should be true in
// production so the session cookie carries the Secure flag.
func NewAuthHandler(authService ports.AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookies: secureCookies}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Redirect string `json:"redirect"`
	IsAdmin  bool   `json:"isAdmin"`
	IsCSR    bool   `json:"isCSR"`
	Message  string `json:"message"`
}

type loginFailure struct {
	Success bool   `json:"success"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Login authenticates a principal and issues a session token. The
// token is returned twice: in the body for the client's script-level
// cache and as an HTTP-only cookie for the gate.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  loginFailure
// @Failure      401   {object}  loginFailure
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, loginFailure{Message: "Please fill in all fields."})
	}

	result, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingCredentials):
			return c.JSON(http.StatusBadRequest, loginFailure{Message: "Please fill in all fields."})
		case errors.Is(err, domain.ErrPrincipalNotFound):
			metrics.LoginsTotal.WithLabelValues("unknown_user").Inc()
			return c.JSON(http.StatusUnauthorized, loginFailure{Field: "username", Message: "User not found."})
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
			return c.JSON(http.StatusUnauthorized, loginFailure{Field: "password", Message: "Invalid password."})
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return c.JSON(http.StatusInternalServerError, loginFailure{Message: "Server error, please try again."})
	}

	c.SetCookie(h.sessionCookie(result.Token, sessionCookieMaxAge))
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Success:  true,
		Token:    result.Token,
		UserID:   result.PrincipalID,
		Redirect: result.Redirect,
		IsAdmin:  result.IsAdmin,
		IsCSR:    result.IsCSR,
		Message:  "Login successful!",
	})
}

type logoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Logout clears the session cookie unconditionally and, when a
// revocation store is wired, denylists the presented token. The
// script-level copy of the token must be cleared by the client; the
// server can only overwrite its own cookie.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Router       /api/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if raw := presentedToken(c); raw != "" {
		h.authService.Logout(c.Request().Context(), raw)
	}

	c.SetCookie(h.sessionCookie("", -1))
	return c.JSON(http.StatusOK, logoutResponse{Success: true, Message: "Logged out successfully"})
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}

// presentedToken mirrors the gate's extraction: cookie first, then
// bearer header.
func presentedToken(c echo.Context) string {
	if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return header[7:]
	}
	return ""
}
