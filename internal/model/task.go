package model

import (
	"strings"
	"time"
)

// Defaults applied when a task is created without status or priority.
const (
	DefaultStatus   = "pending"
	DefaultPriority = "medium"
)

// Task represents a task owned by a single user.
type Task struct {
	ID          string
	Title       string
	Description *string
	Status      string
	Priority    string
	OwnerEmail  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskFilter narrows a task listing. Empty fields are ignored; set fields are
// combined with AND. Search matches title OR description, case-insensitively.
type TaskFilter struct {
	Search   string
	Status   string
	Priority string
}

// Matches reports whether t satisfies the filter. Ownership is not checked here.
func (f TaskFilter) Matches(t Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Search == "" {
		return true
	}

	needle := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(t.Title), needle) {
		return true
	}
	return t.Description != nil && strings.Contains(strings.ToLower(*t.Description), needle)
}

// TaskPatch holds the fields of an update. Nil means "leave unchanged".
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
}

// Apply overwrites the fields of t that are set in p.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		d := *p.Description
		t.Description = &d
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
}

// CreateTaskRequest represents a task creation request.
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
}

// UpdateTaskRequest represents a partial task update. Absent or null fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitnil,min=1"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

// ToPatch converts the request into a TaskPatch.
func (r UpdateTaskRequest) ToPatch() TaskPatch {
	return TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
	}
}

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	UserEmail   string    `json:"user_email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToResponse converts t for the API.
func (t Task) ToResponse() TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		UserEmail:   t.OwnerEmail,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}
