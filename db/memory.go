package db

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"todo-web/models"
)

// Memory is an in-memory Store. It backs the tests and lets the
// application run without a database when DATABASE_URL is unset.
type Memory struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
	tasks map[uuid.UUID]models.Task
	seq   map[uuid.UUID]int // task insertion order
	next  int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users: make(map[uuid.UUID]models.User),
		tasks: make(map[uuid.UUID]models.Task),
		seq:   make(map[uuid.UUID]int),
	}
}

func (m *Memory) Close() {}

func (m *Memory) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *Memory) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	user := u
	return &user, nil
}

func (m *Memory) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	m.users[id] = u
	return nil
}

func (m *Memory) CreateTask(ctx context.Context, task *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[task.ID] = *task
	m.seq[task.ID] = m.next
	m.next++
	return nil
}

func (m *Memory) GetTaskByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	task := t
	return &task, nil
}

func (m *Memory) ListTasksByUser(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var tasks []models.Task
	for _, t := range m.tasks {
		if t.UserID == userID {
			tasks = append(tasks, t)
		}
	}
	// Pending before completed, each in creation order.
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Completed != tasks[j].Completed {
			return !tasks[i].Completed
		}
		return m.seq[tasks[i].ID] < m.seq[tasks[j].ID]
	})
	return tasks, nil
}

func (m *Memory) UpdateTask(ctx context.Context, task *models.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[task.ID]
	if !ok {
		return ErrNotFound
	}
	t.Title = task.Title
	t.Description = task.Description
	m.tasks[task.ID] = t
	return nil
}

func (m *Memory) CompleteTask(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return ErrNotFound
	}
	t.Completed = true
	m.tasks[id] = t
	return nil
}

func (m *Memory) DeleteTask(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(m.tasks, id)
	delete(m.seq, id)
	return nil
}
