package db

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"todo-web/models"
)

// ErrNotFound is returned when a looked-up user or task does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned by CreateUser when the email is already
// registered.
var ErrDuplicateEmail = errors.New("email already registered")

// Store is the persistence interface for users and tasks.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	CreateTask(ctx context.Context, task *models.Task) error
	GetTaskByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	ListTasksByUser(ctx context.Context, userID uuid.UUID) ([]models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	CompleteTask(ctx context.Context, id uuid.UUID) error
	DeleteTask(ctx context.Context, id uuid.UUID) error

	Close()
}
