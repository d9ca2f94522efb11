package policy

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/dmelo/academia-app/auth"
	"github.com/dmelo/academia-app/gate"
	"github.com/dmelo/academia-app/httpx"
)

// AuthGate is the application's authorization checkpoint: a gate over a
// DB-backed profile resolver with a short cache on top.
type AuthGate struct {
	Gate     *gate.Gate[uint]
	resolver *gate.CachedResolver[uint]
}

func NewAuthGate(db *gorm.DB, cacheTTL time.Duration) *AuthGate {
	cached := gate.NewCachedResolver[uint](NewDBProfileResolver(db), cacheTTL)
	return &AuthGate{Gate: gate.New[uint](cached), resolver: cached}
}

// Require returns middleware rejecting requests whose session user lacks the
// permission with a 403 JSON body.
func (ag *AuthGate) Require(resource string, action gate.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, ok := auth.UserIDFromContext(r.Context())
			if !ok || !ag.Gate.Can(r.Context(), uid, resource, action) {
				httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// InvalidateUser drops the cached profile after a role change.
func (ag *AuthGate) InvalidateUser(uid uint) { ag.resolver.Invalidate(uid) }
