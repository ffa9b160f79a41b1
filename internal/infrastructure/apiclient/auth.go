package apiclient

import (
	"context"
	"net/http"

	"github.com/gerenciador/painel/internal/core/domain"
)

func (c *Client) Login(ctx context.Context, in domain.LoginInput) (*domain.LoginResult, error) {
	var out domain.LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, in domain.RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/auth/register", nil, in, nil)
}
