package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dmelo/academia-app/auth"
	"github.com/dmelo/academia-app/httpx"
	"github.com/dmelo/academia-app/internal/models"
	"github.com/dmelo/academia-app/validation"
)

type AuthHandler struct{ DB *gorm.DB }

func NewAuthHandler(db *gorm.DB) *AuthHandler { return &AuthHandler{DB: db} }

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/signup", h.signup)
	mux.HandleFunc("/login", h.login)
	mux.HandleFunc("/logout", h.logout)
	mux.Handle("/session", auth.Middleware(http.HandlerFunc(h.session)))
}

// ensureRole fetches or creates a role by name.
func ensureRole(db *gorm.DB, name string) (*models.Role, error) {
	var role models.Role
	if err := db.Where("name = ?", name).First(&role).Error; err == nil {
		return &role, nil
	}
	role = models.Role{Name: name}
	if err := db.Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	v := validation.Violations{}
	validation.Required("email", input.Email, v)
	validation.Required("password", input.Password, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "hash_failed", nil)
		return
	}
	// The first account becomes the admin; everyone after that is staff.
	roleName := "staff"
	var userCount int64
	if err := h.DB.Model(&models.User{}).Count(&userCount).Error; err == nil && userCount == 0 {
		roleName = "admin"
	}
	role, err := ensureRole(h.DB, roleName)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "role_failed", nil)
		return
	}
	user := models.User{Email: input.Email, Password: string(hash), Name: input.Name, RoleID: role.ID}
	if err := h.DB.Create(&user).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") || strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			httpx.JSONError(w, http.StatusConflict, "email_already_registered", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "signup_failed", nil)
		return
	}
	auth.CreateSession(w, user.ID)
	user.Role = *role
	httpx.JSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	var user models.User
	if err := h.DB.Preload("Role").Where("email = ?", strings.TrimSpace(strings.ToLower(input.Email))).First(&user).Error; err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	auth.CreateSession(w, user.ID)
	httpx.JSON(w, http.StatusOK, user)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]any{"loggedOut": true})
}

// session is what the SPA polls on boot to restore a logged-in state.
func (h *AuthHandler) session(w http.ResponseWriter, r *http.Request) {
	uid, ok := auth.UserIDFromContext(r.Context())
	if !ok || uid == 0 {
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var user models.User
	if err := h.DB.Preload("Role").First(&user, uid).Error; err != nil {
		auth.ClearSession(w)
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
