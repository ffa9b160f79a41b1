package screen

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/ports"
)

// Fields only an admin may change.
var adminOnlyFields = map[string]struct{}{
	"email":     {},
	"role":      {},
	"managerId": {},
}

// ProfileForm is the edit form of a user profile. Every field is rendered;
// the ones the viewer may not change are read-only.
type ProfileForm struct {
	Name      string `form:"name"`
	Email     string `form:"email"`
	Password  string `form:"password"`
	Role      string `form:"role"`
	ManagerID string `form:"managerId"`

	viewerAdmin bool
}

func (f ProfileForm) ReadOnly(field string) bool {
	if f.viewerAdmin {
		return false
	}
	_, ok := adminOnlyFields[field]
	return ok
}

// ProfileScreen shows and edits one user record.
type ProfileScreen struct {
	api    ports.UserAPI
	log    zerolog.Logger
	viewer domain.SessionUser
	User   *domain.User
}

func NewProfileScreen(api ports.UserAPI, log zerolog.Logger) *ProfileScreen {
	return &ProfileScreen{api: api, log: log.With().Str("screen", "profile").Logger()}
}

// Mount loads user id, or the viewer's own record when id is zero.
func (s *ProfileScreen) Mount(ctx context.Context, sess *domain.Session, id int64) error {
	if !sess.Authenticated() {
		return domain.ErrNoSession
	}
	s.viewer = sess.User
	if id == 0 {
		id = sess.User.ID
	}
	u, err := s.api.GetUser(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", id).Msg("get user")
		return fmt.Errorf("get user %d: %w", id, err)
	}
	s.User = u
	return nil
}

// Own reports whether the loaded record is the viewer's.
func (s *ProfileScreen) Own() bool {
	return s.User != nil && s.User.ID == s.viewer.ID
}

// Form pre-fills the edit form from the loaded record.
func (s *ProfileScreen) Form() ProfileForm {
	f := ProfileForm{viewerAdmin: s.viewer.Role == domain.RoleAdmin}
	if s.User == nil {
		return f
	}
	f.Name = s.User.Name
	f.Email = s.User.Email
	f.Role = string(s.User.Role)
	if s.User.ManagerID != nil {
		f.ManagerID = strconv.FormatInt(*s.User.ManagerID, 10)
	}
	return f
}

// Bind marks a submitted form with the viewer's permissions.
func (s *ProfileScreen) Bind(f ProfileForm) ProfileForm {
	f.viewerAdmin = s.viewer.Role == domain.RoleAdmin
	return f
}

// payload builds the update body. Fields the viewer may not change are taken
// from the loaded record, and an empty password is left out.
func (s *ProfileScreen) payload(f ProfileForm) (domain.UpdateUserInput, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return domain.UpdateUserInput{}, &FormError{Fields: map[string]string{"name": "name é obrigatório"}}
	}
	in := domain.UpdateUserInput{Name: &name}
	if f.Password != "" {
		pw := f.Password
		in.Password = &pw
	}

	if s.viewer.Role != domain.RoleAdmin {
		email, role := s.User.Email, s.User.Role
		in.Email, in.Role, in.ManagerID = &email, &role, s.User.ManagerID
		return in, nil
	}

	email := strings.TrimSpace(f.Email)
	in.Email = &email
	role, err := domain.ParseRole(f.Role)
	if err != nil {
		return in, &FormError{Fields: map[string]string{"role": "role deve ser USER ou ADMIN"}}
	}
	in.Role = &role
	if raw := strings.TrimSpace(f.ManagerID); raw == "" {
		in.ClearManager = true
	} else {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return in, &FormError{Fields: map[string]string{"managerId": "managerId inválido"}}
		}
		in.ManagerID = &id
	}
	return in, nil
}

// Update saves f. relogin is true when the viewer changed their own record
// and must sign in again.
func (s *ProfileScreen) Update(ctx context.Context, f ProfileForm) (n Notice, relogin bool, err error) {
	if s.User == nil {
		return Failure(domain.ErrNotFound, "Nenhum perfil para exibir."), false, domain.ErrNotFound
	}
	in, err := s.payload(f)
	if err != nil {
		return Failure(err, ""), false, err
	}
	updated, err := s.api.UpdateUser(ctx, s.User.ID, in)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", s.User.ID).Msg("update user")
		return Failure(err, "Erro ao atualizar perfil."), false, err
	}
	own := s.Own()
	if updated.ID != 0 {
		s.User = updated
	}
	return Success("Perfil atualizado com sucesso!"), own, nil
}
