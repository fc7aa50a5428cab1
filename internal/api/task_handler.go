package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/priority-sorter/internal/api/shared"
	"github.com/phrazzld/priority-sorter/internal/domain"
	"github.com/phrazzld/priority-sorter/internal/platform/logger"
	"github.com/phrazzld/priority-sorter/internal/service"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks requests
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// GetTask handles GET /tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// CreateTask handles POST /tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	params := service.CreateTaskParams{
		Title:     *req.Title,
		Urgent:    req.Urgent,
		Important: req.Important,
	}
	if req.Notes != nil {
		params.Notes = *req.Notes
	}

	task, err := h.taskService.Create(r.Context(), params)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.Int("quadrant", int(task.Quadrant)))
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PUT /tasks/{id} requests.
// A quadrant in the body moves the task and rewrites its flags; otherwise
// the quadrant is recomputed from the resulting flags.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathTaskID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	task, err := h.taskService.Update(r.Context(), id, req.toPatch())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /tasks/{id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathTaskID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteTaskResponse{
		Message: "Task deleted successfully",
		ID:      id.String(),
	})
}

// ClearTasks handles DELETE /tasks requests
func (h *TaskHandler) ClearTasks(w http.ResponseWriter, r *http.Request) {
	n, err := h.taskService.Clear(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to clear tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ClearTasksResponse{
		Message: "All tasks cleared",
		Deleted: n,
	})
}

// ListQuadrant handles GET /quadrants/{quadrant_id} requests
func (h *TaskHandler) ListQuadrant(w http.ResponseWriter, r *http.Request) {
	n, err := getPathInt(r, "quadrant_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.taskService.ListByQuadrant(r.Context(), n)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// SummarizeQuadrants handles GET /quadrants requests
func (h *TaskHandler) SummarizeQuadrants(w http.ResponseWriter, r *http.Request) {
	summary, err := h.taskService.Summarize(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to summarize quadrants")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summaryToResponse(summary))
}

// pathTaskID extracts the task ID from the path. An ID that is not a UUID
// cannot name a stored task, so it is reported as not found.
func (h *TaskHandler) pathTaskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		log := logger.FromContextOrDefault(r.Context(), h.logger)
		log.Debug("invalid task id in path", slog.String("error", err.Error()))
		if errors.Is(err, domain.ErrInvalidID) {
			err = service.ErrTaskNotFound
		}
		HandleAPIError(w, r, err, "")
		return uuid.Nil, false
	}
	return id, true
}

// decodeAndValidate decodes the JSON body into req and validates it,
// writing a 422 response on failure.
func (h *TaskHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		if errors.Is(err, shared.ErrEmptyBody) {
			HandleAPIError(w, r, err, "")
			return false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, "Invalid request format", err)
		return false
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err), err)
		return false
	}
	return true
}
