package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"todo-web/db"
)

const resetFlash = "If an account with that email exists, a password reset link has been sent."

// ForgotPassword mails a reset link. The response is identical whether
// or not the email is on file; only the server log tells them apart.
func (a *App) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if _, ok := a.Sessions.CurrentUserID(r); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if r.Method == http.MethodPost {
		email := strings.TrimSpace(r.FormValue("email"))

		user, err := a.Store.GetUserByEmail(r.Context(), email)
		switch {
		case errors.Is(err, db.ErrNotFound):
			log.Printf("password reset requested for unknown email %q", email)
		case err != nil:
			a.serverError(w, err)
			return
		default:
			token, err := a.Tokens.IssueReset(user)
			if err != nil {
				a.serverError(w, err)
				return
			}
			resetURL := a.BaseURL + "/reset_password/" + token
			body := "Please click the link to reset your password: " + resetURL
			if err := a.Mailer.Send(user.Email, "Password Reset Request", body); err != nil {
				a.serverError(w, err)
				return
			}
		}

		a.Sessions.AddFlash(w, r, "success", resetFlash)
		http.Redirect(w, r, "/forgot_password", http.StatusFound)
		return
	}

	a.render(w, r, "forgot_password", &pageData{})
}

// ResetPassword consumes a reset token. The token's signing key folds
// in the user's current password hash, so the token is verified against
// the user it names and stops verifying once the password changes.
func (a *App) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	rejectToken := func() {
		a.Sessions.AddFlash(w, r, "error", "The reset link is invalid or has expired.")
		http.Redirect(w, r, "/login", http.StatusFound)
	}

	userID, err := a.Tokens.ResetSubject(token)
	if err != nil {
		rejectToken()
		return
	}
	user, err := a.Store.GetUserByID(r.Context(), userID)
	if err != nil {
		rejectToken()
		return
	}
	if err := a.Tokens.VerifyReset(token, user); err != nil {
		rejectToken()
		return
	}

	if r.Method == http.MethodPost {
		password := r.FormValue("password")
		if password == "" {
			a.Sessions.AddFlash(w, r, "error", "Password is required")
			http.Redirect(w, r, "/reset_password/"+token, http.StatusFound)
			return
		}

		if err := user.SetPassword(password); err != nil {
			a.serverError(w, err)
			return
		}
		if err := a.Store.UpdateUserPassword(r.Context(), user.ID, user.PasswordHash); err != nil {
			a.serverError(w, err)
			return
		}

		a.Sessions.AddFlash(w, r, "success", "Your password has been updated!")
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	a.render(w, r, "reset_password", &pageData{Token: token})
}
