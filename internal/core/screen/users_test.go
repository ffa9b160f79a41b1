package screen

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gerenciador/painel/internal/core/domain"
)

func TestUsersScreen_MountUsesDefaultQuery(t *testing.T) {
	var got url.Values
	api := &stubUserAPI{
		listFn: func(_ context.Context, q url.Values) ([]domain.User, error) {
			got = q
			return []domain.User{{ID: 10, Role: domain.RoleUser}}, nil
		},
	}
	s := NewUsersScreen(api, zerolog.Nop())
	if err := s.Mount(context.Background(), adminSession(), UserQuery{}); err != nil {
		t.Fatalf("mount: %v", err)
	}
	if got.Get("role") != "USER" || got.Get("managerId") != "1" {
		t.Fatalf("unexpected query %v", got)
	}
	if len(s.Users()) != 1 {
		t.Fatalf("users not held")
	}
}

func TestUsersScreen_MountRejectsInvalidQuery(t *testing.T) {
	api := &stubUserAPI{}
	s := NewUsersScreen(api, zerolog.Nop())
	err := s.Mount(context.Background(), adminSession(), UserQuery{SortBy: "email"})
	if !errors.Is(err, domain.ErrValidation) || api.calls != 0 {
		t.Fatalf("expected ErrValidation without a request, got %v (%d calls)", err, api.calls)
	}
}

func TestUsersScreen_CreateRegularUserManagedByAdmin(t *testing.T) {
	api := &stubUserAPI{
		listFn: func(context.Context, url.Values) ([]domain.User, error) { return nil, nil },
		createFn: func(_ context.Context, in domain.CreateUserInput) (*domain.User, error) {
			if in.Role != domain.RoleUser || in.ManagerID != 1 {
				t.Fatalf("unexpected create input %+v", in)
			}
			mgr := in.ManagerID
			return &domain.User{ID: 20, Name: in.Name, Email: in.Email, Role: in.Role, ManagerID: &mgr}, nil
		},
	}
	s := NewUsersScreen(api, zerolog.Nop())
	_ = s.Mount(context.Background(), adminSession(), UserQuery{})

	n, err := s.Create(context.Background(), NewUserForm{Name: "Bia", Email: "bia@example.com", Password: "123456"})
	if err != nil || n.Kind != NoticeSuccess {
		t.Fatalf("create: %v %+v", err, n)
	}
	if users := s.Users(); len(users) != 1 || users[0].ID != 20 {
		t.Fatalf("created user not appended: %+v", users)
	}
}

func TestUsersScreen_CreateValidates(t *testing.T) {
	api := &stubUserAPI{listFn: func(context.Context, url.Values) ([]domain.User, error) { return nil, nil }}
	s := NewUsersScreen(api, zerolog.Nop())
	_ = s.Mount(context.Background(), adminSession(), UserQuery{})

	_, err := s.Create(context.Background(), NewUserForm{Name: "Bia", Email: "not-an-email", Password: "1"})
	var fe *FormError
	if !errors.As(err, &fe) || fe.Fields["email"] == "" || fe.Fields["password"] == "" {
		t.Fatalf("expected email and password errors, got %v", err)
	}
	if api.calls != 1 {
		t.Fatalf("invalid user reached the api")
	}
}

func TestUsersScreen_Delete(t *testing.T) {
	api := &stubUserAPI{
		listFn: func(context.Context, url.Values) ([]domain.User, error) {
			return []domain.User{{ID: 1}, {ID: 2}, {ID: 3}}, nil
		},
		deleteFn: func(context.Context, int64) error { return nil },
	}
	s := NewUsersScreen(api, zerolog.Nop())
	_ = s.Mount(context.Background(), adminSession(), UserQuery{})

	if _, err := s.Delete(context.Background(), 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if users := s.Users(); len(users) != 2 || users[0].ID != 1 || users[1].ID != 3 {
		t.Fatalf("unexpected users %+v", users)
	}
}
