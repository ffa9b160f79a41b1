package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gerenciador/painel/internal/api/flash"
	"github.com/gerenciador/painel/internal/core/domain"
)

func TestUsersHandler_List_DefaultQuery(t *testing.T) {
	var got url.Values
	api := &stubAPI{listUsersFn: func(_ context.Context, q url.Values) ([]domain.User, error) {
		got = q
		return []domain.User{{ID: 7, Name: "Rita", Role: domain.RoleUser}}, nil
	}}
	h := NewUsersHandler(&stubFactory{api: api}, zerolog.Nop())
	c, rec, r := newTestContext(t, testRequest{method: http.MethodGet, target: "/users", session: adminSession()})

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusOK)
	if got.Get("role") != "USER" || got.Get("managerId") != "1" {
		t.Fatalf("unexpected query %v", got)
	}
	if users := r.page.Data.(usersPage).Users; len(users) != 1 || users[0].ID != 7 {
		t.Fatalf("unexpected users %+v", users)
	}
}

func TestUsersHandler_List_InvalidQueryFallsBack(t *testing.T) {
	var got url.Values
	api := &stubAPI{listUsersFn: func(_ context.Context, q url.Values) ([]domain.User, error) {
		got = q
		return nil, nil
	}}
	h := NewUsersHandler(&stubFactory{api: api}, zerolog.Nop())
	c, _, r := newTestContext(t, testRequest{method: http.MethodGet, target: "/users?sortBy=email", session: adminSession()})
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Get("sortBy") != "" || r.page.Notice.Message == "" {
		t.Fatalf("expected default query with a warning, got %v", got)
	}
}

func TestUsersHandler_Create(t *testing.T) {
	var got domain.CreateUserInput
	api := &stubAPI{
		listUsersFn: func(context.Context, url.Values) ([]domain.User, error) { return nil, nil },
		createUserFn: func(_ context.Context, in domain.CreateUserInput) (*domain.User, error) {
			got = in
			return &domain.User{ID: 8, Name: in.Name, Role: in.Role}, nil
		},
	}
	h := NewUsersHandler(&stubFactory{api: api}, zerolog.Nop())
	c, rec, _ := newTestContext(t, testRequest{
		method: http.MethodPost, target: "/users", session: adminSession(),
		form: url.Values{"name": {"Rui"}, "email": {"rui@x.com"}, "password": {"secret1"}},
	})
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if location(rec) != "/users" || !hasCookie(rec, flash.CookieName) {
		t.Fatalf("expected redirect with flash")
	}
	if got.Role != domain.RoleUser || got.ManagerID != 1 {
		t.Fatalf("new user must be a regular user managed by the admin, got %+v", got)
	}
}

func TestUsersHandler_Create_APIErrorKeepsForm(t *testing.T) {
	api := &stubAPI{
		listUsersFn: func(context.Context, url.Values) ([]domain.User, error) { return nil, nil },
		createUserFn: func(context.Context, domain.CreateUserInput) (*domain.User, error) {
			return nil, &domain.APIError{Status: http.StatusConflict, Message: "E-mail já cadastrado"}
		},
	}
	h := NewUsersHandler(&stubFactory{api: api}, zerolog.Nop())
	c, rec, r := newTestContext(t, testRequest{
		method: http.MethodPost, target: "/users", session: adminSession(),
		form: url.Values{"name": {"Rui"}, "email": {"rui@x.com"}, "password": {"secret1"}},
	})
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	expectStatus(t, rec, http.StatusUnprocessableEntity)
	data := r.page.Data.(usersPage)
	if r.page.Notice.Message != "E-mail já cadastrado" || data.Form.Email != "rui@x.com" || data.Form.Password != "" {
		t.Fatalf("unexpected page %+v %+v", r.page.Notice, data.Form)
	}
}

func TestUsersHandler_Delete_FailureKeepsNotice(t *testing.T) {
	api := &stubAPI{deleteUserFn: func(context.Context, int64) error {
		return &domain.APIError{Status: http.StatusNotFound}
	}}
	h := NewUsersHandler(&stubFactory{api: api}, zerolog.Nop())
	c, rec, _ := newTestContext(t, testRequest{
		method: http.MethodPost, target: "/users/3/delete", session: adminSession(), params: map[string]string{"id": "3"},
		form: url.Values{"confirm": {"yes"}},
	})
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if location(rec) != "/users" || !hasCookie(rec, flash.CookieName) {
		t.Fatalf("expected redirect with an error notice")
	}
}

func TestUsersHandler_List_ForbiddenEscalates(t *testing.T) {
	api := &stubAPI{listUsersFn: func(context.Context, url.Values) ([]domain.User, error) {
		return nil, &domain.APIError{Status: http.StatusForbidden}
	}}
	h := NewUsersHandler(&stubFactory{api: api}, zerolog.Nop())
	c, rec, r := newTestContext(t, testRequest{method: http.MethodGet, target: "/users", session: adminSession()})

	err := h.List(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for the error handler, got %v", err)
	}
	if rec.Code != http.StatusOK || r.name != "" {
		t.Fatalf("nothing may be written before the error handler runs, got %d %q", rec.Code, r.name)
	}
}
