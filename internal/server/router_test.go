package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dmelo/academia-app/internal/db"
	"github.com/dmelo/academia-app/internal/models"
)

func setupRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(db.Models()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRouter(conn), conn
}

func do(t *testing.T, h http.Handler, method, target string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func signup(t *testing.T, h http.Handler, email string) []*http.Cookie {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/signup", map[string]string{"email": email, "password": "secret123"}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup %s: %d %s", email, rec.Code, rec.Body.String())
	}
	return rec.Result().Cookies()
}

func TestRouterRequiresSession(t *testing.T) {
	h, _ := setupRouter(t)

	for _, target := range []string{"/plans", "/students", "/transactions", "/dashboard", "/categories"} {
		rec := do(t, h, http.MethodGet, target, nil, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without session = %d, want 401", target, rec.Code)
		}
	}

	rec := do(t, h, http.MethodGet, "/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health = %d, want 200", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/healthz", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz = %d, want 200", rec.Code)
	}
}

func TestRouterAuthenticatedAccess(t *testing.T) {
	h, _ := setupRouter(t)
	cookies := signup(t, h, "owner@gym.com")

	rec := do(t, h, http.MethodGet, "/plans", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /plans with session = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/nope", nil, cookies)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown route = %d, want 404", rec.Code)
	}
}

func TestRouterStaffCannotDelete(t *testing.T) {
	h, conn := setupRouter(t)
	signup(t, h, "owner@gym.com") // admin
	staffCookies := signup(t, h, "helper@gym.com")

	plan := models.Plan{Name: "Mensal", Value: 100, DurationDays: 30}
	if err := conn.Create(&plan).Error; err != nil {
		t.Fatalf("seed plan: %v", err)
	}

	rec := do(t, h, http.MethodPost, "/plans/delete", map[string]string{"id": plan.ID}, staffCookies)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("staff delete = %d, want 403, body %s", rec.Code, rec.Body.String())
	}

	// staff can still read and create
	rec = do(t, h, http.MethodGet, "/plans", nil, staffCookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("staff list = %d", rec.Code)
	}
}

func TestRouterAdminCanDelete(t *testing.T) {
	h, conn := setupRouter(t)
	adminCookies := signup(t, h, "owner@gym.com")

	plan := models.Plan{Name: "Mensal", Value: 100, DurationDays: 30}
	if err := conn.Create(&plan).Error; err != nil {
		t.Fatalf("seed plan: %v", err)
	}

	rec := do(t, h, http.MethodPost, "/plans/delete", map[string]string{"id": plan.ID}, adminCookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin delete = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestRouterSessionEndpoint(t *testing.T) {
	h, _ := setupRouter(t)
	cookies := signup(t, h, "owner@gym.com")

	rec := do(t, h, http.MethodGet, "/session", nil, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("session = %d", rec.Code)
	}
	var user models.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if user.Email != "owner@gym.com" {
		t.Fatalf("email = %q", user.Email)
	}

	rec = do(t, h, http.MethodGet, "/session", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("session without cookie = %d, want 401", rec.Code)
	}
}
