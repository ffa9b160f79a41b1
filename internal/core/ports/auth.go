package ports

import (
	"context"

	"github.com/gerenciador/painel/internal/core/domain"
)

// AuthService signs browsers in and out. Login returns the new session id.
type AuthService interface {
	Login(ctx context.Context, in domain.LoginInput) (string, *domain.Session, error)
	Register(ctx context.Context, in domain.RegisterInput) error
	Logout(ctx context.Context, sid string) error
}
