package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"todo-web/db"
	"todo-web/models"
)

// Index lists the signed-in user's tasks, pending first.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := a.Sessions.CurrentUserID(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	tasks, err := a.Store.ListTasksByUser(r.Context(), userID)
	if err != nil {
		a.serverError(w, err)
		return
	}

	a.render(w, r, "index", &pageData{Tasks: tasks})
}

// AddTask creates a task from the form on the index page. Title and
// description are both required.
func (a *App) AddTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := a.Sessions.CurrentUserID(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if r.Method == http.MethodPost {
		title := strings.TrimSpace(r.FormValue("title"))
		description := strings.TrimSpace(r.FormValue("description"))

		if title == "" || description == "" {
			a.Sessions.AddFlash(w, r, "error", "All fields are required")
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		task := &models.Task{
			ID:          uuid.New(),
			Title:       title,
			Description: description,
			UserID:      userID,
		}
		if err := a.Store.CreateTask(r.Context(), task); err != nil {
			a.serverError(w, err)
			return
		}

		a.Sessions.AddFlash(w, r, "success", "Task added successfully!")
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// ownedTask resolves the task_id query parameter and enforces
// ownership. On any failure it has already written the response and
// returns false.
func (a *App) ownedTask(w http.ResponseWriter, r *http.Request) (*models.Task, bool) {
	userID, ok := a.Sessions.CurrentUserID(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return nil, false
	}

	notFound := func() {
		a.Sessions.AddFlash(w, r, "error", "Task not found!")
		http.Redirect(w, r, "/", http.StatusFound)
	}

	id, err := uuid.Parse(r.URL.Query().Get("task_id"))
	if err != nil {
		notFound()
		return nil, false
	}

	task, err := a.Store.GetTaskByID(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		notFound()
		return nil, false
	}
	if err != nil {
		a.serverError(w, err)
		return nil, false
	}

	if task.UserID != userID {
		a.Sessions.AddFlash(w, r, "error", "Unauthorized!")
		http.Redirect(w, r, "/", http.StatusFound)
		return nil, false
	}

	return task, true
}

// EditTask overwrites a task's title and description. The form values
// are written as-is; unlike AddTask there is no empty-field check.
func (a *App) EditTask(w http.ResponseWriter, r *http.Request) {
	task, ok := a.ownedTask(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodPost {
		task.Title = r.FormValue("title")
		task.Description = r.FormValue("description")

		if err := a.Store.UpdateTask(r.Context(), task); err != nil {
			a.serverError(w, err)
			return
		}

		a.Sessions.AddFlash(w, r, "success", "Task updated successfully!")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	a.render(w, r, "edit_task", &pageData{Task: task})
}

// CompleteTask flips the completed flag to true. There is no route to
// flip it back.
func (a *App) CompleteTask(w http.ResponseWriter, r *http.Request) {
	task, ok := a.ownedTask(w, r)
	if !ok {
		return
	}

	if err := a.Store.CompleteTask(r.Context(), task.ID); err != nil {
		a.serverError(w, err)
		return
	}

	a.Sessions.AddFlash(w, r, "success", "Task completed")
	http.Redirect(w, r, "/", http.StatusFound)
}

// DeleteTask removes a task. Ownership is enforced the same way as
// edit and complete.
func (a *App) DeleteTask(w http.ResponseWriter, r *http.Request) {
	task, ok := a.ownedTask(w, r)
	if !ok {
		return
	}

	if err := a.Store.DeleteTask(r.Context(), task.ID); err != nil {
		a.serverError(w, err)
		return
	}

	a.Sessions.AddFlash(w, r, "success", "Task deleted")
	http.Redirect(w, r, "/", http.StatusFound)
}
