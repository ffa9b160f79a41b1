package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gerenciador/painel/internal/core/domain"
)

const usersPath = "/users"

func (c *Client) ListUsers(ctx context.Context, query url.Values) ([]domain.User, error) {
	var out []domain.User
	if err := c.do(ctx, http.MethodGet, usersPath, query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodGet, idPath(usersPath, id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodPost, usersPath, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, in domain.UpdateUserInput) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodPut, idPath(usersPath, id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath(usersPath, id), nil, nil, nil)
}
