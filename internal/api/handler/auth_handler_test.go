package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/akti/portal-api/internal/core/domain"
	"github.com/akti/portal-api/internal/core/ports"
)

type stubAuthService struct {
	result     *ports.LoginResult
	err        error
	loggedOut  []string
	gotUser    string
	gotPass    string
	loginCalls int
}

func (s *stubAuthService) Login(_ context.Context, username, password string) (*ports.LoginResult, error) {
	s.loginCalls++
	s.gotUser, s.gotPass = username, password
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubAuthService) Logout(_ context.Context, rawToken string) {
	s.loggedOut = append(s.loggedOut, rawToken)
}

func postLogin(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	return rec
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "token" {
			return cookie
		}
	}
	t.Fatal("no token cookie set")
	return nil
}

func TestLoginSuccessContract(t *testing.T) {
	svc := &stubAuthService{result: &ports.LoginResult{
		Token:       "signed-token",
		PrincipalID: "42",
		Redirect:    "/admin/dashboard",
		IsAdmin:     true,
	}}
	h := NewAuthHandler(svc, false)

	rec := postLogin(t, h, `{"username":"rahul12345","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.gotUser != "rahul12345" || svc.gotPass != "secret" {
		t.Fatalf("credentials passed as (%q, %q)", svc.gotUser, svc.gotPass)
	}

	var body struct {
		Success  bool   `json:"success"`
		Token    string `json:"token"`
		UserID   string `json:"userId"`
		Redirect string `json:"redirect"`
		IsAdmin  bool   `json:"isAdmin"`
		IsCSR    bool   `json:"isCSR"`
		Message  string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Token != "signed-token" || body.UserID != "42" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.Redirect != "/admin/dashboard" || !body.IsAdmin || body.IsCSR {
		t.Fatalf("unexpected role fields: %+v", body)
	}
	if body.Message != "Login successful!" {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	svc := &stubAuthService{result: &ports.LoginResult{Token: "signed-token", Redirect: "/csr/csr-dashboard", IsCSR: true}}
	h := NewAuthHandler(svc, false)

	cookie := sessionCookieFrom(t, postLogin(t, h, `{"username":"u","password":"p"}`))
	if cookie.Value != "signed-token" {
		t.Fatalf("cookie value = %q", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Fatal("cookie is not HttpOnly")
	}
	if cookie.Path != "/" {
		t.Fatalf("cookie path = %q, want /", cookie.Path)
	}
	if cookie.MaxAge != 7*24*60*60 {
		t.Fatalf("cookie max-age = %d, want %d", cookie.MaxAge, 7*24*60*60)
	}
	if cookie.SameSite != http.SameSiteStrictMode {
		t.Fatalf("cookie samesite = %v, want Strict", cookie.SameSite)
	}
	if cookie.Secure {
		t.Fatal("cookie should not be Secure outside production")
	}
}

func TestLoginSecureCookieInProduction(t *testing.T) {
	svc := &stubAuthService{result: &ports.LoginResult{Token: "tok"}}
	h := NewAuthHandler(svc, true)

	cookie := sessionCookieFrom(t, postLogin(t, h, `{"username":"u","password":"p"}`))
	if !cookie.Secure {
		t.Fatal("cookie should be Secure in production")
	}
}

func TestLoginFailureMapping(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantField string
		wantMsg   string
	}{
		{"missing credentials", domain.ErrMissingCredentials, http.StatusBadRequest, "", "Please fill in all fields."},
		{"unknown user", domain.ErrPrincipalNotFound, http.StatusUnauthorized, "username", "User not found."},
		{"wrong password", domain.ErrInvalidCredentials, http.StatusUnauthorized, "password", "Invalid password."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&stubAuthService{err: tt.err}, false)
			rec := postLogin(t, h, `{"username":"u","password":"p"}`)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			var body struct {
				Success bool   `json:"success"`
				Field   string `json:"field"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Success {
				t.Fatal("success should be false")
			}
			if body.Field != tt.wantField || body.Message != tt.wantMsg {
				t.Fatalf("got field=%q message=%q, want field=%q message=%q",
					body.Field, body.Message, tt.wantField, tt.wantMsg)
			}
			if len(rec.Result().Cookies()) != 0 {
				t.Fatal("failed login must not set a cookie")
			}
		})
	}
}

func TestLogoutClearsCookieAndRevokes(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, false)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "signed-token"})
	rec := httptest.NewRecorder()
	if err := h.Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "signed-token" {
		t.Fatalf("revoked tokens = %v, want [signed-token]", svc.loggedOut)
	}

	cookie := sessionCookieFrom(t, rec)
	if cookie.Value != "" {
		t.Fatalf("cleared cookie value = %q, want empty", cookie.Value)
	}
	if cookie.MaxAge >= 0 {
		t.Fatalf("cleared cookie max-age = %d, want negative", cookie.MaxAge)
	}
}

func TestLogoutWithoutTokenStillClears(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, false)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/logout", nil)
	rec := httptest.NewRecorder()
	if err := h.Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	if len(svc.loggedOut) != 0 {
		t.Fatalf("revocation attempted without a presented token: %v", svc.loggedOut)
	}
	cookie := sessionCookieFrom(t, rec)
	if cookie.MaxAge >= 0 {
		t.Fatalf("cleared cookie max-age = %d, want negative", cookie.MaxAge)
	}
}

func TestLogoutBearerFallback(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, false)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/logout", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer header-token")
	rec := httptest.NewRecorder()
	if err := h.Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "header-token" {
		t.Fatalf("revoked tokens = %v, want [header-token]", svc.loggedOut)
	}
}
