package session

import (
	"encoding/gob"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"todo-web/models"
)

const cookieName = "todoweb_session"

// Flash is a one-time notification rendered on the next page view.
// Category is "success" or "error".
type Flash struct {
	Category string
	Message  string
}

func init() {
	gob.Register(Flash{})
}

// Manager wraps the cookie session store. All session reads and writes
// go through it; handlers never touch gorilla/sessions directly.
type Manager struct {
	store *sessions.CookieStore
}

// NewManager builds a Manager whose cookies are signed with secret.
func NewManager(secret string) *Manager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.Path = "/"
	return &Manager{store: store}
}

// get never fails: a cookie that cannot be decoded yields a fresh
// session, which matches treating the visitor as logged out.
func (m *Manager) get(r *http.Request) *sessions.Session {
	s, _ := m.store.Get(r, cookieName)
	return s
}

// CurrentUserID returns the signed-in user's id, if any.
func (m *Manager) CurrentUserID(r *http.Request) (uuid.UUID, bool) {
	raw, ok := m.get(r).Values["user_id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Username returns the signed-in user's name, or "" when logged out.
func (m *Manager) Username(r *http.Request) string {
	name, _ := m.get(r).Values["username"].(string)
	return name
}

// SignIn records the user in the session.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, user *models.User) error {
	s := m.get(r)
	s.Values["user_id"] = user.ID.String()
	s.Values["username"] = user.Username
	return s.Save(r, w)
}

// SignOut drops all session state. Flashes added afterwards in the same
// request still reach the next page.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) error {
	s := m.get(r)
	s.Values = make(map[interface{}]interface{})
	return s.Save(r, w)
}

// AddFlash queues a one-time message for the next rendered page.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) {
	s := m.get(r)
	s.AddFlash(Flash{Category: category, Message: message})
	s.Save(r, w)
}

// TakeFlashes returns and clears any queued flashes.
func (m *Manager) TakeFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	s := m.get(r)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	s.Save(r, w)

	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}
