package api

import (
	"time"

	"github.com/phrazzld/priority-sorter/internal/domain"
	"github.com/phrazzld/priority-sorter/internal/service"
)

// CreateTaskRequest is the body of POST /tasks.
// Title is a pointer so that an absent title can be told apart from an empty one.
type CreateTaskRequest struct {
	Title     *string       `json:"title"     validate:"required"`
	Urgent    bool          `json:"urgent"`
	Important bool          `json:"important"`
	Notes     *domain.Notes `json:"notes"`
}

// UpdateTaskRequest is the body of PUT /tasks/{id}. Every field is optional;
// absent or null fields are left unchanged.
type UpdateTaskRequest struct {
	Title     *string       `json:"title"`
	Urgent    *bool         `json:"urgent"`
	Important *bool         `json:"important"`
	Notes     *domain.Notes `json:"notes"`
	Quadrant  *int          `json:"quadrant"  validate:"omitempty,min=1,max=4"`
}

// TaskResponse is the JSON shape of a task.
type TaskResponse struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Urgent    bool         `json:"urgent"`
	Important bool         `json:"important"`
	Notes     domain.Notes `json:"notes"`
	CreatedAt time.Time    `json:"created_at"`
	Quadrant  int          `json:"quadrant"`
}

// DeleteTaskResponse confirms a deletion.
type DeleteTaskResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ClearTasksResponse confirms that the collection was emptied.
type ClearTasksResponse struct {
	Message string `json:"message"`
	Deleted int    `json:"deleted"`
}

// QuadrantSummaryResponse describes one quadrant of the matrix.
type QuadrantSummaryResponse struct {
	ID        int    `json:"id"`
	Label     string `json:"label"`
	Urgent    bool   `json:"urgent"`
	Important bool   `json:"important"`
	Count     int    `json:"count"`
}

// ImportResponse reports the outcome of POST /tasks/import.
type ImportResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

// ServiceInfoResponse is returned by GET /.
type ServiceInfoResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

// toPatch converts the request into a domain patch.
func (req *UpdateTaskRequest) toPatch() domain.TaskPatch {
	patch := domain.TaskPatch{
		Title:     req.Title,
		Urgent:    req.Urgent,
		Important: req.Important,
		Notes:     req.Notes,
	}
	if req.Quadrant != nil {
		q := domain.Quadrant(*req.Quadrant)
		patch.Quadrant = &q
	}
	return patch
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID.String(),
		Title:     task.Title,
		Urgent:    task.Urgent,
		Important: task.Important,
		Notes:     task.Notes,
		CreatedAt: task.CreatedAt,
		Quadrant:  int(task.Quadrant),
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}

func summaryToResponse(summary []service.QuadrantSummary) []QuadrantSummaryResponse {
	out := make([]QuadrantSummaryResponse, 0, len(summary))
	for _, s := range summary {
		out = append(out, QuadrantSummaryResponse{
			ID:        int(s.Quadrant),
			Label:     s.Label,
			Urgent:    s.Urgent,
			Important: s.Important,
			Count:     s.Count,
		})
	}
	return out
}
