package storage

import "time"

// Task is the persisted row shape. Status and Priority are stored as plain
// text at this layer; the service boundary enforces the closed enums.
type Task struct {
	ID          string
	Name        string
	Description string
	Status      string
	Priority    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type TaskListFilter struct {
	Status string
	Limit  int
	Offset int
}
