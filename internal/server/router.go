package server

import (
	"context"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"gorm.io/gorm"

	"github.com/dmelo/academia-app/auth"
	"github.com/dmelo/academia-app/gate"
	"github.com/dmelo/academia-app/httpx"
	"github.com/dmelo/academia-app/internal/handlers"
	"github.com/dmelo/academia-app/internal/middleware"
	"github.com/dmelo/academia-app/internal/models"
	"github.com/dmelo/academia-app/internal/policy"
)

// route permissions, checked after authentication. GET and POST on the same
// path may need different permissions (list vs create).
type routePermission struct {
	resource string
	get      gate.Action
	post     gate.Action
}

var routePermissions = map[string]routePermission{
	"/plans":               {resource: "plan", get: gate.ActionView, post: gate.ActionCreate},
	"/plans/update":        {resource: "plan", post: gate.ActionUpdate},
	"/plans/delete":        {resource: "plan", post: gate.ActionDelete},
	"/students":            {resource: "student", get: gate.ActionView, post: gate.ActionCreate},
	"/students/update":     {resource: "student", post: gate.ActionUpdate},
	"/students/status":     {resource: "student", post: gate.ActionUpdate},
	"/students/renew":      {resource: "student", post: gate.ActionUpdate},
	"/students/delete":     {resource: "student", post: gate.ActionDelete},
	"/transactions":        {resource: "transaction", get: gate.ActionView, post: gate.ActionCreate},
	"/transactions/delete": {resource: "transaction", post: gate.ActionDelete},
	"/transactions/export": {resource: "transaction", get: gate.ActionExport},
	"/dashboard":           {resource: "student", get: gate.ActionView},
	"/categories":          {resource: "transaction", get: gate.ActionView},
}

// NewRouter wires every endpoint. Auth endpoints stay public; everything else
// requires a session and the matching permission.
func NewRouter(conn *gorm.DB) http.Handler {
	// Stale cookies for deleted users are rejected at the door.
	auth.SetUserVerifier(func(_ context.Context, uid uint) bool {
		var n int64
		if err := conn.Model(&models.User{}).Where("id = ?", uid).Count(&n).Error; err != nil {
			return false
		}
		return n == 1
	})
	authGate := policy.NewAuthGate(conn, 5*time.Minute)

	api := http.NewServeMux()
	handlers.NewPlanHandler(conn).Register(api)
	handlers.NewStudentHandler(conn).Register(api)
	handlers.NewTransactionHandler(conn).Register(api)
	handlers.NewDashboardHandler(conn).Register(api)
	handlers.NewReferenceHandler().Register(api)

	root := http.NewServeMux()
	handlers.NewAuthHandler(conn).Register(root)
	root.HandleFunc("/health", healthOK)
	root.HandleFunc("/healthz", healthDB(conn))
	root.Handle("/", auth.Middleware(auth.RequireAuth(authorize(authGate, api))))

	return withRecover(middleware.Prefs(root))
}

// authorize checks the route table before handing off to the api mux.
func authorize(ag *policy.AuthGate, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		perm, ok := routePermissions[r.URL.Path]
		if !ok {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		var action gate.Action
		switch r.Method {
		case http.MethodGet:
			action = perm.get
		case http.MethodPost:
			action = perm.post
		}
		if action == "" {
			// let the handler answer with its Allow header
			next.ServeHTTP(w, r)
			return
		}
		ag.Require(perm.resource, action)(next).ServeHTTP(w, r)
	})
}

func healthOK(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// healthDB pings the database so orchestrators can tell a wedged pool apart
// from a healthy process.
func healthDB(conn *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := conn.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "db_unreachable", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic on %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
