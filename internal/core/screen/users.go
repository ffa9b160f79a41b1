package screen

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/ports"
)

// NewUserForm is the add-user form of the user management screen.
type NewUserForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// UsersScreen is the admin's user list.
type UsersScreen struct {
	api   ports.UserAPI
	log   zerolog.Logger
	admin domain.SessionUser
	items *Collection[domain.User]
	Query UserQuery
}

func NewUsersScreen(api ports.UserAPI, log zerolog.Logger) *UsersScreen {
	return &UsersScreen{
		api:   api,
		log:   log.With().Str("screen", "users").Logger(),
		items: NewCollection[domain.User](nil),
	}
}

// Mount lists users with q. A zero q falls back to the admin's own users.
func (s *UsersScreen) Mount(ctx context.Context, sess *domain.Session, q UserQuery) error {
	if !sess.Authenticated() {
		return domain.ErrNoSession
	}
	s.admin = sess.User
	if q == (UserQuery{}) {
		q = DefaultUserQuery(sess.User)
	}
	if err := q.Validate(); err != nil {
		return err
	}
	s.Query = q

	list, err := s.api.ListUsers(ctx, q.Values())
	if err != nil {
		s.log.Error().Err(err).Msg("list users")
		return fmt.Errorf("list users: %w", err)
	}
	s.items = NewCollection(list)
	return nil
}

func (s *UsersScreen) Users() []domain.User { return s.items.Items() }

// Create adds a regular user managed by the signed-in admin.
func (s *UsersScreen) Create(ctx context.Context, form NewUserForm) (Notice, error) {
	in := domain.CreateUserInput{
		Name:      strings.TrimSpace(form.Name),
		Email:     strings.TrimSpace(form.Email),
		Password:  form.Password,
		Role:      domain.RoleUser,
		ManagerID: s.admin.ID,
	}
	if err := Validate(in); err != nil {
		return Failure(err, ""), err
	}
	created, err := s.api.CreateUser(ctx, in)
	if err != nil {
		s.log.Error().Err(err).Str("email", in.Email).Msg("create user")
		return Failure(err, "Erro ao adicionar usuário."), err
	}
	s.items.Append(*created)
	return Success("Usuário regular adicionado com sucesso!"), nil
}

func (s *UsersScreen) Delete(ctx context.Context, id int64) (Notice, error) {
	if err := s.api.DeleteUser(ctx, id); err != nil {
		s.log.Error().Err(err).Int64("user_id", id).Msg("delete user")
		return Failure(err, "Erro ao excluir usuário."), err
	}
	s.items.Remove(id)
	return Success("Usuário excluído com sucesso!"), nil
}
