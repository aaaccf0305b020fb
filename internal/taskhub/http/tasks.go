package http

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/nightowllabs/taskhub/internal/taskhub/domain"
	"github.com/nightowllabs/taskhub/internal/taskhub/service"
	"github.com/nightowllabs/taskhub/pkg/httpx"
	"github.com/nightowllabs/taskhub/pkg/taskhubapi"
)

// maxPageSize caps explicit page sizes so a single request cannot ask for an
// unbounded window.
const (
	maxPageSize     = 200
	defaultPageSize = 10
)

// TaskHandler serves the /api/tasks endpoints.
type TaskHandler struct {
	tasks    *service.TaskService
	views    *service.ViewService
	validate *validator.Validate
}

func NewTaskHandler(tasks *service.TaskService, views *service.ViewService) *TaskHandler {
	return &TaskHandler{
		tasks:    tasks,
		views:    views,
		validate: validator.New(),
	}
}

func (h *TaskHandler) writeTasks(w http.ResponseWriter, r *http.Request, ts []domain.Task) {
	views, err := h.views.Tasks(r.Context(), ts)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}

// List godoc
//
//	@Summary	List tasks
//	@Tags		tasks
//	@Param		page	query	int	false	"zero-indexed page; omit both params for the full list"
//	@Param		size	query	int	false	"page size (max 200)"
//	@Success	200	{array}	taskhubapi.TaskView
//	@Router		/api/tasks [get]
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// Without explicit paging parameters the full list comes back.
	if !q.Has("page") && !q.Has("size") {
		ts, err := h.tasks.List(r.Context())
		if err != nil {
			writeServiceError(r.Context(), w, err)
			return
		}
		h.writeTasks(w, r, ts)
		return
	}

	page, err := queryInt(q.Get("page"), 0)
	if err != nil || page < 0 {
		writeValidationError(w, "query parameter \"page\" must be a non-negative integer")
		return
	}

	size, err := queryInt(q.Get("size"), defaultPageSize)
	if err != nil || size < 1 {
		writeValidationError(w, "query parameter \"size\" must be a positive integer")
		return
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	ts, err := h.tasks.ListPage(r.Context(), int64(size), int64(page)*int64(size))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	h.writeTasks(w, r, ts)
}

func queryInt(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// Get godoc
//
//	@Summary	Get a task by id
//	@Tags		tasks
//	@Param		id	path	int	true	"task id"
//	@Success	200	{object}	taskhubapi.TaskView
//	@Failure	404	{object}	taskhubapi.ErrorResponse
//	@Router		/api/tasks/{id} [get]
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	task, err := h.tasks.Get(r.Context(), id)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	view, err := h.views.Task(r.Context(), task)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

// ByUser godoc
//
//	@Summary	List tasks owned by a user
//	@Tags		tasks
//	@Param		userId	path	int	true	"owner user id"
//	@Success	200	{array}	taskhubapi.TaskView
//	@Failure	404	{object}	taskhubapi.ErrorResponse
//	@Router		/api/tasks/user/{userId} [get]
func (h *TaskHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	ts, err := h.tasks.ListByOwner(r.Context(), userID)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	h.writeTasks(w, r, ts)
}

// ByStatus godoc
//
//	@Summary	List tasks by status
//	@Tags		tasks
//	@Param		status	path	string	true	"TODO, IN_PROGRESS, DONE or CANCELLED"
//	@Success	200	{array}	taskhubapi.TaskView
//	@Failure	400	{object}	taskhubapi.ErrorResponse
//	@Router		/api/tasks/status/{status} [get]
func (h *TaskHandler) ByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := domain.ParseStatus(r.PathValue("status"))
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	ts, err := h.tasks.ListByStatus(r.Context(), status)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	h.writeTasks(w, r, ts)
}

// ByPriority godoc
//
//	@Summary	List tasks by priority
//	@Tags		tasks
//	@Param		priority	path	string	true	"LOW, MEDIUM, HIGH or URGENT"
//	@Success	200	{array}	taskhubapi.TaskView
//	@Failure	400	{object}	taskhubapi.ErrorResponse
//	@Router		/api/tasks/priority/{priority} [get]
func (h *TaskHandler) ByPriority(w http.ResponseWriter, r *http.Request) {
	priority, err := domain.ParsePriority(r.PathValue("priority"))
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	ts, err := h.tasks.ListByPriority(r.Context(), priority)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	h.writeTasks(w, r, ts)
}

// Search godoc
//
//	@Summary	Search tasks by keyword
//	@Tags		tasks
//	@Param		keyword	query	string	true	"case-sensitive substring of title or description"
//	@Success	200	{array}	taskhubapi.TaskView
//	@Router		/api/tasks/search [get]
func (h *TaskHandler) Search(w http.ResponseWriter, r *http.Request) {
	ts, err := h.tasks.Search(r.Context(), r.URL.Query().Get("keyword"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	h.writeTasks(w, r, ts)
}

// Overdue godoc
//
//	@Summary	List tasks past their due date
//	@Tags		tasks
//	@Success	200	{array}	taskhubapi.TaskView
//	@Router		/api/tasks/overdue [get]
func (h *TaskHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	ts, err := h.tasks.ListOverdue(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	h.writeTasks(w, r, ts)
}

// parseTaskParams validates and converts a request body into service params.
func (h *TaskHandler) parseTaskParams(req taskhubapi.CreateTaskRequest) (service.TaskParams, string) {
	if err := h.validate.Struct(req); err != nil {
		return service.TaskParams{}, validationMessage(err)
	}

	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		return service.TaskParams{}, err.Error()
	}

	priority, err := domain.ParsePriority(req.Priority)
	if err != nil {
		return service.TaskParams{}, err.Error()
	}

	p := service.TaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		AssigneeID:  req.AssignedToID,
	}
	if req.DueDate != nil && !req.DueDate.IsZero() {
		due := req.DueDate.Time
		p.DueDate = &due
	}
	return p, ""
}

// Create godoc
//
//	@Summary	Create a task owned by the calling user
//	@Tags		tasks
//	@Param		request	body	taskhubapi.CreateTaskRequest	true	"task fields"
//	@Success	201	{object}	taskhubapi.TaskView
//	@Failure	400	{object}	taskhubapi.ErrorResponse
//	@Failure	404	{object}	taskhubapi.ErrorResponse
//	@Router		/api/tasks [post]
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskhubapi.CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	params, msg := h.parseTaskParams(req)
	if msg != "" {
		writeValidationError(w, msg)
		return
	}

	ownerID, ok := httpx.CallerID(r.Context())
	if !ok {
		writeServiceError(r.Context(), w, errNoCaller)
		return
	}

	task, err := h.tasks.Create(r.Context(), ownerID, params)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	view, err := h.views.Task(r.Context(), task)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, view)
}

// Update godoc
//
//	@Summary	Update a task
//	@Tags		tasks
//	@Param		id		path	int								true	"task id"
//	@Param		request	body	taskhubapi.CreateTaskRequest	true	"replacement fields"
//	@Success	200	{object}	taskhubapi.TaskView
//	@Failure	400	{object}	taskhubapi.ErrorResponse
//	@Failure	404	{object}	taskhubapi.ErrorResponse
//	@Router		/api/tasks/{id} [put]
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	var req taskhubapi.CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}

	params, msg := h.parseTaskParams(req)
	if msg != "" {
		writeValidationError(w, msg)
		return
	}

	task, err := h.tasks.Update(r.Context(), id, params)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	view, err := h.views.Task(r.Context(), task)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

// Delete godoc
//
//	@Summary	Delete a task
//	@Tags		tasks
//	@Param		id	path	int	true	"task id"
//	@Success	204
//	@Failure	404	{object}	taskhubapi.ErrorResponse
//	@Router		/api/tasks/{id} [delete]
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
