package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmelo/academia-app/auth"
	"github.com/dmelo/academia-app/internal/models"
)

func TestSignupFirstUserIsAdmin(t *testing.T) {
	conn := setupTestDB(t)
	h := NewAuthHandler(conn)

	rec := postJSON(t, h.signup, "/signup", map[string]string{
		"email": "Owner@Gym.com", "password": "secret123", "name": "Owner",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, body %s", rec.Code, rec.Body.String())
	}
	var first models.User
	decodeBody(t, rec, &first)
	if first.Email != "owner@gym.com" {
		t.Fatalf("email not normalized: %q", first.Email)
	}
	if first.Role.Name != "admin" {
		t.Fatalf("first user role = %q, want admin", first.Role.Name)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Fatal("signup did not set a session cookie")
	}

	rec = postJSON(t, h.signup, "/signup", map[string]string{
		"email": "helper@gym.com", "password": "secret123", "name": "Helper",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("second signup status = %d", rec.Code)
	}
	var second models.User
	decodeBody(t, rec, &second)
	if second.Role.Name != "staff" {
		t.Fatalf("second user role = %q, want staff", second.Role.Name)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	conn := setupTestDB(t)
	h := NewAuthHandler(conn)

	body := map[string]string{"email": "owner@gym.com", "password": "secret123"}
	if rec := postJSON(t, h.signup, "/signup", body); rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d", rec.Code)
	}
	rec := postJSON(t, h.signup, "/signup", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate signup status = %d, want 409", rec.Code)
	}
	if code := errorCode(t, rec); code != "email_already_registered" {
		t.Fatalf("error = %q", code)
	}
}

func TestLogin(t *testing.T) {
	conn := setupTestDB(t)
	h := NewAuthHandler(conn)
	postJSON(t, h.signup, "/signup", map[string]string{"email": "owner@gym.com", "password": "secret123"})

	rec := postJSON(t, h.login, "/login", map[string]string{"email": "owner@gym.com", "password": "secret123"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Fatal("login did not set a session cookie")
	}

	rec = postJSON(t, h.login, "/login", map[string]string{"email": "owner@gym.com", "password": "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d, want 401", rec.Code)
	}
	rec = postJSON(t, h.login, "/login", map[string]string{"email": "ghost@gym.com", "password": "secret123"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown email status = %d, want 401", rec.Code)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	conn := setupTestDB(t)
	h := NewAuthHandler(conn)
	rec := postJSON(t, h.signup, "/signup", map[string]string{"email": "owner@gym.com", "password": "secret123"})
	var user models.User
	decodeBody(t, rec, &user)

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), user.ID))
	out := httptest.NewRecorder()
	h.session(out, req)
	if out.Code != http.StatusOK {
		t.Fatalf("session status = %d", out.Code)
	}
	var got models.User
	decodeBody(t, out, &got)
	if got.Email != "owner@gym.com" {
		t.Fatalf("session email = %q", got.Email)
	}
}

func TestSessionUnknownUser(t *testing.T) {
	conn := setupTestDB(t)
	h := NewAuthHandler(conn)

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), 999))
	out := httptest.NewRecorder()
	h.session(out, req)
	if out.Code != http.StatusUnauthorized {
		t.Fatalf("session status = %d, want 401", out.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	conn := setupTestDB(t)
	h := NewAuthHandler(conn)
	rec := postJSON(t, h.logout, "/logout", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 || cookies[0].MaxAge != -1 {
		t.Fatalf("logout did not expire the session cookie: %+v", cookies)
	}
}
