package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"todo-web/db"
	"todo-web/models"
)

// Register serves the signup form and creates accounts. A freshly
// registered user is signed in immediately; no verification step.
func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.Sessions.CurrentUserID(r); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if r.Method == http.MethodPost {
		name := strings.TrimSpace(r.FormValue("name"))
		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")

		if name == "" || email == "" || password == "" {
			a.Sessions.AddFlash(w, r, "error", "All fields are required")
			http.Redirect(w, r, "/registration", http.StatusFound)
			return
		}

		_, err := a.Store.GetUserByEmail(r.Context(), email)
		if err == nil {
			a.Sessions.AddFlash(w, r, "error", "An account with that email already exists!")
			http.Redirect(w, r, "/registration", http.StatusFound)
			return
		}
		if !errors.Is(err, db.ErrNotFound) {
			a.serverError(w, err)
			return
		}

		user := &models.User{ID: uuid.New(), Username: name, Email: email}
		if err := user.SetPassword(password); err != nil {
			a.serverError(w, err)
			return
		}

		if err := a.Store.CreateUser(r.Context(), user); err != nil {
			// The unique constraint can still fire if two
			// registrations race past the lookup above.
			if errors.Is(err, db.ErrDuplicateEmail) {
				a.Sessions.AddFlash(w, r, "error", "An account with that email already exists!")
				http.Redirect(w, r, "/registration", http.StatusFound)
				return
			}
			a.serverError(w, err)
			return
		}

		a.Sessions.SignIn(w, r, user)
		a.Sessions.AddFlash(w, r, "success", "Registration successful! You are now logged in.")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	a.render(w, r, "registration", &pageData{})
}

// Login authenticates by email and password. Failures get one generic
// message so the response never reveals whether the email exists.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.Sessions.CurrentUserID(r); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if r.Method == http.MethodPost {
		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")

		user, err := a.Store.GetUserByEmail(r.Context(), email)
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			a.serverError(w, err)
			return
		}
		if err != nil || !user.CheckPassword(password) {
			a.Sessions.AddFlash(w, r, "error", "Invalid email or password. Please try again.")
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		a.Sessions.SignIn(w, r, user)
		a.Sessions.AddFlash(w, r, "success", "Login successful!")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	a.render(w, r, "login", &pageData{})
}

// Logout clears the session unconditionally.
func (a *App) Logout(w http.ResponseWriter, r *http.Request) {
	a.Sessions.SignOut(w, r)
	a.Sessions.AddFlash(w, r, "success", "Logout successful!")
	http.Redirect(w, r, "/login", http.StatusFound)
}
