package middlewares

import (
	"net/http"

	"todo-web/session"
)

// RequireAuth gates a handler behind a signed-in session. Visitors
// without one are redirected to the login page.
func RequireAuth(sessions *session.Manager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sessions.CurrentUserID(r); !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next(w, r)
	}
}
