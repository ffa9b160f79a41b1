package apiclient

import (
	"context"
	"net/http"

	"github.com/gerenciador/painel/internal/core/domain"
)

// The API mounts tasks under a capitalised path.
const tasksPath = "/Task"

func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var out []domain.Task
	if err := c.do(ctx, http.MethodGet, tasksPath, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTask(ctx context.Context, in domain.NewTask) (*domain.Task, error) {
	var out domain.Task
	if err := c.do(ctx, http.MethodPost, tasksPath, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PatchTask(ctx context.Context, id int64, p domain.TaskPatch) error {
	return c.do(ctx, http.MethodPatch, idPath(tasksPath, id), nil, p, nil)
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath(tasksPath, id), nil, nil, nil)
}
