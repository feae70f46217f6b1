package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-go/internal/model"
	"github.com/taskdeck/taskdeck-go/internal/repository"
)

// MaxListResults caps a single listing. There is no pagination beyond it.
const MaxListResults = 1000

var (
	ErrTitleRequired = errors.New("title is required")
	ErrTaskNotFound  = errors.New("task not found")
)

// TaskRepository is the storage behind TaskService. Every method except
// Create is scoped by owner.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetOwned(ctx context.Context, owner, id string) (*model.Task, error)
	ListByOwner(ctx context.Context, owner string, filter model.TaskFilter, limit int) ([]model.Task, error)
	UpdateOwned(ctx context.Context, task *model.Task) error
	DeleteOwned(ctx context.Context, owner, id string) error
}

// TaskService handles task business logic.
type TaskService struct {
	repo  TaskRepository
	now   func() time.Time
	newID func() string
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// CreateTask creates a task owned by owner.
func (s *TaskService) CreateTask(ctx context.Context, owner string, req model.CreateTaskRequest) (model.TaskResponse, error) {
	if strings.TrimSpace(req.Title) == "" {
		return model.TaskResponse{}, ErrTitleRequired
	}

	now := s.timestamp()
	task := model.Task{
		ID:          s.newID(),
		Title:       req.Title,
		Description: req.Description,
		Status:      orDefault(req.Status, model.DefaultStatus),
		Priority:    orDefault(req.Priority, model.DefaultPriority),
		OwnerEmail:  owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, &task); err != nil {
		return model.TaskResponse{}, err
	}

	return task.ToResponse(), nil
}

// ListTasks returns owner's tasks matching filter, at most MaxListResults.
func (s *TaskService) ListTasks(ctx context.Context, owner string, filter model.TaskFilter) ([]model.TaskResponse, error) {
	tasks, err := s.repo.ListByOwner(ctx, owner, filter, MaxListResults)
	if err != nil {
		return nil, err
	}

	return tasksToResponse(tasks), nil
}

// GetTask returns a task of owner. Tasks of other users are reported as not found.
func (s *TaskService) GetTask(ctx context.Context, owner, id string) (model.TaskResponse, error) {
	task, err := s.repo.GetOwned(ctx, owner, id)
	if err != nil {
		return model.TaskResponse{}, notFound(err)
	}

	return task.ToResponse(), nil
}

// UpdateTask applies the set fields of req to a task of owner and refreshes
// its updated_at, even when req is empty.
func (s *TaskService) UpdateTask(ctx context.Context, owner, id string, req model.UpdateTaskRequest) (model.TaskResponse, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return model.TaskResponse{}, ErrTitleRequired
	}

	task, err := s.repo.GetOwned(ctx, owner, id)
	if err != nil {
		return model.TaskResponse{}, notFound(err)
	}

	req.ToPatch().Apply(task)
	task.UpdatedAt = s.timestamp()

	if err := s.repo.UpdateOwned(ctx, task); err != nil {
		return model.TaskResponse{}, notFound(err)
	}

	return task.ToResponse(), nil
}

// DeleteTask removes a task of owner.
func (s *TaskService) DeleteTask(ctx context.Context, owner, id string) error {
	return notFound(s.repo.DeleteOwned(ctx, owner, id))
}

func (s *TaskService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// notFound translates the repository sentinel into the service one.
func notFound(err error) error {
	if errors.Is(err, repository.ErrTaskNotFound) {
		return ErrTaskNotFound
	}
	return err
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// tasksToResponse converts tasks for the API. The result is never nil.
func tasksToResponse(tasks []model.Task) []model.TaskResponse {
	result := make([]model.TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = t.ToResponse()
	}
	return result
}
