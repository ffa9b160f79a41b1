package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gerenciador/painel/internal/api/flash"
	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/ports"
	"github.com/gerenciador/painel/internal/core/screen"
)

const tasksPath = "/tasks"

// TasksHandler serves the signed-in user's task list.
type TasksHandler struct {
	apis ports.APIFactory
	log  zerolog.Logger
}

func NewTasksHandler(apis ports.APIFactory, log zerolog.Logger) *TasksHandler {
	return &TasksHandler{apis: apis, log: log}
}

type tasksPage struct {
	Tasks  []domain.Task
	Total  int
	Status string
	EditID int64
	Errors map[string]string
}

type taskRequest struct {
	Title string `form:"title"`
	Body  string `form:"body"`
}

func (h *TasksHandler) mount(c echo.Context) (*screen.TasksScreen, screen.Notice, error) {
	sess, err := ctxSession(c)
	if err != nil {
		return nil, screen.Notice{}, err
	}
	ctx := c.Request().Context()
	s := screen.NewTasksScreen(h.apis.ForSession(ctx, sess), h.log)
	s.Filter = screen.ParseTaskFilter(c.QueryParams())
	if err := s.Mount(ctx, sess); err != nil {
		if escalated(err) {
			return nil, screen.Notice{}, err
		}
		return s, screen.Failure(err, "Erro ao carregar tarefas."), nil
	}
	return s, screen.Notice{}, nil
}

func (h *TasksHandler) renderList(c echo.Context, status int, s *screen.TasksScreen, editID int64, errs map[string]string, n screen.Notice) error {
	data := tasksPage{
		Tasks:  s.Visible(),
		Total:  len(s.All()),
		Status: s.Filter.Status(),
		EditID: editID,
		Errors: errs,
	}
	return render(c, status, "tasks.html", page(c, "Tarefas", "tasks", data), n)
}

// List handles GET /tasks. ?edit=<id> opens the inline edit form of one task.
func (h *TasksHandler) List(c echo.Context) error {
	s, n, err := h.mount(c)
	if err != nil {
		return err
	}
	editID, _ := strconv.ParseInt(c.QueryParam("edit"), 10, 64)
	return h.renderList(c, http.StatusOK, s, editID, nil, n)
}

// Create handles POST /tasks.
func (h *TasksHandler) Create(c echo.Context) error {
	s, _, err := h.mount(c)
	if err != nil {
		return err
	}
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	n, err := s.Add(c.Request().Context(), req.Title, req.Body)
	if err != nil {
		if escalated(err) {
			return err
		}
		return h.renderList(c, statusFor(err), s, 0, formErrors(err), n)
	}
	flash.Write(c.Response(), n)
	return c.Redirect(http.StatusFound, tasksPath)
}

// Toggle handles POST /tasks/:id/toggle.
func (h *TasksHandler) Toggle(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	s, _, err := h.mount(c)
	if err != nil {
		return err
	}
	n, err := s.Toggle(c.Request().Context(), id)
	return settle(c, n, err, tasksPath)
}

// Edit handles POST /tasks/:id/edit.
func (h *TasksHandler) Edit(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	s, _, err := h.mount(c)
	if err != nil {
		return err
	}
	var req taskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	n, err := s.Edit(c.Request().Context(), id, req.Title, req.Body)
	if errors.Is(err, domain.ErrValidation) {
		return settle(c, n, err, tasksPath+"?edit="+strconv.FormatInt(id, 10))
	}
	return settle(c, n, err, tasksPath)
}

// Delete handles POST /tasks/:id/delete.
func (h *TasksHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if !confirmed(c) {
		return settle(c, screen.Warning(msgNotConfirmed), nil, tasksPath)
	}
	ctx := c.Request().Context()
	n, err := screen.NewTasksScreen(h.apis.ForSession(ctx, sess), h.log).Delete(ctx, id)
	return settle(c, n, err, tasksPath)
}
