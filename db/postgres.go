package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"todo-web/models"
)

// One statement per entry: pgx's extended protocol rejects
// multi-statement strings.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		user_id UUID NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Postgres implements Store on a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to the database and ensures the schema exists.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ensuring schema: %w", err)
		}
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

func (p *Postgres) CreateUser(ctx context.Context, user *models.User) error {
	_, err := p.pool.Exec(
		ctx,
		`INSERT INTO users (id, username, email, password_hash) VALUES ($1, $2, $3, $4)`,
		user.ID, user.Username, user.Email, user.PasswordHash,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := p.pool.QueryRow(
		ctx,
		`SELECT id, username, email, password_hash FROM users WHERE email=$1`,
		email,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching user by email: %w", err)
	}
	return &user, nil
}

func (p *Postgres) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := p.pool.QueryRow(
		ctx,
		`SELECT id, username, email, password_hash FROM users WHERE id=$1`,
		id,
	).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching user by id: %w", err)
	}
	return &user, nil
}

func (p *Postgres) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := p.pool.Exec(
		ctx,
		`UPDATE users SET password_hash=$1 WHERE id=$2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) CreateTask(ctx context.Context, task *models.Task) error {
	_, err := p.pool.Exec(
		ctx,
		`INSERT INTO tasks (id, title, description, completed, user_id) VALUES ($1, $2, $3, $4, $5)`,
		task.ID, task.Title, task.Description, task.Completed, task.UserID,
	)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	return nil
}

func (p *Postgres) GetTaskByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := p.pool.QueryRow(
		ctx,
		`SELECT id, title, description, completed, user_id FROM tasks WHERE id=$1`,
		id,
	).Scan(&task.ID, &task.Title, &task.Description, &task.Completed, &task.UserID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching task: %w", err)
	}
	return &task, nil
}

func (p *Postgres) ListTasksByUser(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	rows, err := p.pool.Query(
		ctx,
		`SELECT id, title, description, completed, user_id
		 FROM tasks WHERE user_id=$1
		 ORDER BY completed, created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.ID, &task.Title, &task.Description, &task.Completed, &task.UserID); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (p *Postgres) UpdateTask(ctx context.Context, task *models.Task) error {
	tag, err := p.pool.Exec(
		ctx,
		`UPDATE tasks SET title=$1, description=$2 WHERE id=$3`,
		task.Title, task.Description, task.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) CompleteTask(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(
		ctx,
		`UPDATE tasks SET completed=TRUE WHERE id=$1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("completing task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteTask(ctx context.Context, id uuid.UUID) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
