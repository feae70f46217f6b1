package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taskdeck/taskdeck-go/internal/middleware"
	"github.com/taskdeck/taskdeck-go/internal/model"
	"github.com/taskdeck/taskdeck-go/internal/service"
)

const msgTaskNotFound = "Task not found"

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{service: svc}
}

// HandleCreateTask handles POST /api/tasks requests.
func (h *TaskHandler) HandleCreateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Not authenticated"))
		return
	}

	var req model.CreateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.CreateTask(r.Context(), user.Email, req)
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse(err.Error()))
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleListTasks handles GET /api/tasks requests.
func (h *TaskHandler) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Not authenticated"))
		return
	}

	q := r.URL.Query()
	filter := model.TaskFilter{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
	}

	tasks, err := h.service.ListTasks(r.Context(), user.Email, filter)
	if err != nil {
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// HandleGetTask handles GET /api/tasks/{task_id} requests.
func (h *TaskHandler) HandleGetTask(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Not authenticated"))
		return
	}

	resp, err := h.service.GetTask(r.Context(), user.Email, chi.URLParam(r, "task_id"))
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(msgTaskNotFound))
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdateTask handles PUT /api/tasks/{task_id} requests.
func (h *TaskHandler) HandleUpdateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Not authenticated"))
		return
	}

	var req model.UpdateTaskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.UpdateTask(r.Context(), user.Email, chi.URLParam(r, "task_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTitleRequired):
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse(err.Error()))
		case errors.Is(err, service.ErrTaskNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(msgTaskNotFound))
		default:
			internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDeleteTask handles DELETE /api/tasks/{task_id} requests.
func (h *TaskHandler) HandleDeleteTask(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Not authenticated"))
		return
	}

	err := h.service.DeleteTask(r.Context(), user.Email, chi.URLParam(r, "task_id"))
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(msgTaskNotFound))
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Task deleted successfully"})
}
