package guard

import (
	"net/http"

	"github.com/RoyceAzure/lab/virtualart/internal/api/response"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/RoyceAzure/lab/virtualart/internal/session"
)

// ProfileResolver 從 request context 取得已驗證的 profile, 未登入回 nil
type ProfileResolver func(r *http.Request) *model.Profile

// Middleware server 端不會有 LOADING, profile 在進 handler 前已 resolve
// DENIED 且有導向時回 403 並在 Location 帶上導向路徑, 由前端決定是否跳轉
func Middleware(kind Kind, resolve ProfileResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap := session.Snapshot{Status: session.StatusResolved, Profile: resolve(r)}
			d := Evaluate(kind, snap)
			switch d.State {
			case Granted:
				next.ServeHTTP(w, r)
			case Denied:
				if d.Redirect != "" {
					w.Header().Set("Location", d.Redirect)
					response.FailJSON(w, http.StatusForbidden, "access denied")
					return
				}
				response.FailJSON(w, http.StatusUnauthorized, "authentication required")
			default:
				response.FailJSON(w, http.StatusServiceUnavailable, "session not resolved")
			}
		})
	}
}
