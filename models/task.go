package models

import "github.com/google/uuid"

// Task is a single to-do item owned by one user. Completed only ever
// moves from false to true; there is no un-complete action.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	Completed   bool
	UserID      uuid.UUID
}
