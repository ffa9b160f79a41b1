package apiclient

import (
	"context"
	"net/http"

	"github.com/gerenciador/painel/internal/core/domain"
)

const clientesPath = "/clientes"

func (c *Client) ListClientes(ctx context.Context) ([]domain.Cliente, error) {
	var out []domain.Cliente
	if err := c.do(ctx, http.MethodGet, clientesPath, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCliente(ctx context.Context, id int64) (*domain.Cliente, error) {
	var out domain.Cliente
	if err := c.do(ctx, http.MethodGet, idPath(clientesPath, id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCliente(ctx context.Context, in domain.ClienteInput) (*domain.Cliente, error) {
	var out domain.Cliente
	if err := c.do(ctx, http.MethodPost, clientesPath, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCliente(ctx context.Context, id int64, in domain.ClienteUpdate) (*domain.Cliente, error) {
	var out domain.Cliente
	if err := c.do(ctx, http.MethodPut, idPath(clientesPath, id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCliente(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, idPath(clientesPath, id), nil, nil, nil)
}
