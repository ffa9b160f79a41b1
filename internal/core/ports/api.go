package ports

import (
	"context"
	"net/url"

	"github.com/gerenciador/painel/internal/core/domain"
)

type AuthAPI interface {
	Login(ctx context.Context, in domain.LoginInput) (*domain.LoginResult, error)
	Register(ctx context.Context, in domain.RegisterInput) error
}

type ClienteAPI interface {
	ListClientes(ctx context.Context) ([]domain.Cliente, error)
	GetCliente(ctx context.Context, id int64) (*domain.Cliente, error)
	CreateCliente(ctx context.Context, in domain.ClienteInput) (*domain.Cliente, error)
	UpdateCliente(ctx context.Context, id int64, in domain.ClienteUpdate) (*domain.Cliente, error)
	DeleteCliente(ctx context.Context, id int64) error
}

type UserAPI interface {
	ListUsers(ctx context.Context, query url.Values) ([]domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	CreateUser(ctx context.Context, in domain.CreateUserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, in domain.UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type TaskAPI interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, in domain.NewTask) (*domain.Task, error)
	PatchTask(ctx context.Context, id int64, p domain.TaskPatch) error
	DeleteTask(ctx context.Context, id int64) error
}

// API is the full remote surface as seen by one caller.
type API interface {
	AuthAPI
	ClienteAPI
	UserAPI
	TaskAPI
}

// APIFactory hands out API clients bound to a caller's session. A nil or
// token-less session yields an unauthenticated client.
type APIFactory interface {
	ForSession(ctx context.Context, s *domain.Session) API
}
