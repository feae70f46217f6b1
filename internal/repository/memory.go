package repository

import (
	"context"
	"sync"

	"github.com/taskdeck/taskdeck-go/internal/model"
)

// MemoryUserRepository is an in-process user store. It is safe for
// concurrent use and loses its contents on restart.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

// NewMemoryUserRepository creates an empty MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]model.User)}
}

// Create stores user unless the email is already taken.
func (r *MemoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return ErrDuplicateEmail
	}
	r.users[user.Email] = *user
	return nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) UpdateName(_ context.Context, email, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[email]
	if !ok {
		return ErrUserNotFound
	}
	u.Name = name
	r.users[email] = u
	return nil
}

// MemoryTaskRepository is an in-process task store that keeps insertion order.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks []model.Task
}

// NewMemoryTaskRepository creates an empty MemoryTaskRepository.
func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{}
}

func (r *MemoryTaskRepository) Create(_ context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = append(r.tasks, cloneTask(*task))
	return nil
}

func (r *MemoryTaskRepository) GetOwned(_ context.Context, owner, id string) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(owner, id)
	if i < 0 {
		return nil, ErrTaskNotFound
	}
	t := cloneTask(r.tasks[i])
	return &t, nil
}

func (r *MemoryTaskRepository) ListByOwner(_ context.Context, owner string, filter model.TaskFilter, limit int) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []model.Task
	for _, t := range r.tasks {
		if len(out) >= limit {
			break
		}
		if t.OwnerEmail == owner && filter.Matches(t) {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

func (r *MemoryTaskRepository) UpdateOwned(_ context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(task.OwnerEmail, task.ID)
	if i < 0 {
		return ErrTaskNotFound
	}

	stored := &r.tasks[i]
	updated := cloneTask(*task)
	stored.Title = updated.Title
	stored.Description = updated.Description
	stored.Status = updated.Status
	stored.Priority = updated.Priority
	stored.UpdatedAt = updated.UpdatedAt
	return nil
}

func (r *MemoryTaskRepository) DeleteOwned(_ context.Context, owner, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(owner, id)
	if i < 0 {
		return ErrTaskNotFound
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	return nil
}

// indexOf must be called with r.mu held.
func (r *MemoryTaskRepository) indexOf(owner, id string) int {
	for i, t := range r.tasks {
		if t.ID == id && t.OwnerEmail == owner {
			return i
		}
	}
	return -1
}

// cloneTask copies t so callers never share the description pointer with the store.
func cloneTask(t model.Task) model.Task {
	if t.Description != nil {
		d := *t.Description
		t.Description = &d
	}
	return t
}
