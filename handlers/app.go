package handlers

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"todo-web/db"
	"todo-web/middlewares"
	"todo-web/models"
	"todo-web/session"
	"todo-web/templates"
	"todo-web/utils"
)

// App carries everything the handlers need. It replaces package-level
// globals: one App is built in main and shared by every request.
type App struct {
	Store    db.Store
	Sessions *session.Manager
	Mailer   utils.EmailSender
	Tokens   *utils.TokenMaker
	BaseURL  string
}

// New wires an App.
func New(store db.Store, sessions *session.Manager, mailer utils.EmailSender, tokens *utils.TokenMaker, baseURL string) *App {
	return &App{
		Store:    store,
		Sessions: sessions,
		Mailer:   mailer,
		Tokens:   tokens,
		BaseURL:  baseURL,
	}
}

// Router builds the route table. Task routes sit behind the session
// guard; delete is guarded like the rest.
func (a *App) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", middlewares.RequireAuth(a.Sessions, a.Index)).Methods("GET")
	r.HandleFunc("/registration", a.Register).Methods("GET", "POST")
	r.HandleFunc("/login", a.Login).Methods("GET", "POST")
	r.HandleFunc("/logout", a.Logout).Methods("GET")
	r.HandleFunc("/forgot_password", a.ForgotPassword).Methods("GET", "POST")
	r.HandleFunc("/reset_password/{token}", a.ResetPassword).Methods("GET", "POST")
	r.HandleFunc("/add_task", middlewares.RequireAuth(a.Sessions, a.AddTask)).Methods("GET", "POST")
	r.HandleFunc("/edit_task", middlewares.RequireAuth(a.Sessions, a.EditTask)).Methods("GET", "POST")
	r.HandleFunc("/complete_task", middlewares.RequireAuth(a.Sessions, a.CompleteTask)).Methods("GET")
	r.HandleFunc("/delete_task", middlewares.RequireAuth(a.Sessions, a.DeleteTask)).Methods("GET")

	return r
}

// pageData is what every template receives. Flashes and Username are
// filled in by render; the rest is per-page.
type pageData struct {
	Flashes  []session.Flash
	Username string
	Tasks    []models.Task
	Task     *models.Task
	Token    string
}

// render executes a page into a buffer first so a template failure can
// still produce a 500 instead of a half-written response.
func (a *App) render(w http.ResponseWriter, r *http.Request, name string, data *pageData) {
	data.Flashes = a.Sessions.TakeFlashes(w, r)
	data.Username = a.Sessions.Username(r)

	var buf bytes.Buffer
	if err := templates.Render(&buf, name, data); err != nil {
		log.Printf("rendering %s: %v", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (a *App) serverError(w http.ResponseWriter, err error) {
	log.Printf("server error: %v", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
