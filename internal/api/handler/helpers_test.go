package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gerenciador/painel/internal/api/view"
	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/ports"
)

type stubRenderer struct {
	name string
	page view.Page
}

func (r *stubRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	r.name = name
	r.page, _ = data.(view.Page)
	_, err := io.WriteString(w, name)
	return err
}

// stubAPI implements ports.API; calling a method without its function field
// set panics through the nil embedded interface.
type stubAPI struct {
	ports.API
	listClientesFn  func(ctx context.Context) ([]domain.Cliente, error)
	getClienteFn    func(ctx context.Context, id int64) (*domain.Cliente, error)
	createClienteFn func(ctx context.Context, in domain.ClienteInput) (*domain.Cliente, error)
	updateClienteFn func(ctx context.Context, id int64, in domain.ClienteUpdate) (*domain.Cliente, error)
	deleteClienteFn func(ctx context.Context, id int64) error
	listUsersFn     func(ctx context.Context, q url.Values) ([]domain.User, error)
	getUserFn       func(ctx context.Context, id int64) (*domain.User, error)
	createUserFn    func(ctx context.Context, in domain.CreateUserInput) (*domain.User, error)
	updateUserFn    func(ctx context.Context, id int64, in domain.UpdateUserInput) (*domain.User, error)
	deleteUserFn    func(ctx context.Context, id int64) error
	listTasksFn     func(ctx context.Context) ([]domain.Task, error)
	createTaskFn    func(ctx context.Context, in domain.NewTask) (*domain.Task, error)
	patchTaskFn     func(ctx context.Context, id int64, p domain.TaskPatch) error
	deleteTaskFn    func(ctx context.Context, id int64) error
}

func (s *stubAPI) ListClientes(ctx context.Context) ([]domain.Cliente, error) {
	return s.listClientesFn(ctx)
}
func (s *stubAPI) GetCliente(ctx context.Context, id int64) (*domain.Cliente, error) {
	return s.getClienteFn(ctx, id)
}
func (s *stubAPI) CreateCliente(ctx context.Context, in domain.ClienteInput) (*domain.Cliente, error) {
	return s.createClienteFn(ctx, in)
}
func (s *stubAPI) UpdateCliente(ctx context.Context, id int64, in domain.ClienteUpdate) (*domain.Cliente, error) {
	return s.updateClienteFn(ctx, id, in)
}
func (s *stubAPI) DeleteCliente(ctx context.Context, id int64) error {
	return s.deleteClienteFn(ctx, id)
}
func (s *stubAPI) ListUsers(ctx context.Context, q url.Values) ([]domain.User, error) {
	return s.listUsersFn(ctx, q)
}
func (s *stubAPI) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.getUserFn(ctx, id)
}
func (s *stubAPI) CreateUser(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	return s.createUserFn(ctx, in)
}
func (s *stubAPI) UpdateUser(ctx context.Context, id int64, in domain.UpdateUserInput) (*domain.User, error) {
	return s.updateUserFn(ctx, id, in)
}
func (s *stubAPI) DeleteUser(ctx context.Context, id int64) error {
	return s.deleteUserFn(ctx, id)
}
func (s *stubAPI) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return s.listTasksFn(ctx)
}
func (s *stubAPI) CreateTask(ctx context.Context, in domain.NewTask) (*domain.Task, error) {
	return s.createTaskFn(ctx, in)
}
func (s *stubAPI) PatchTask(ctx context.Context, id int64, p domain.TaskPatch) error {
	return s.patchTaskFn(ctx, id, p)
}
func (s *stubAPI) DeleteTask(ctx context.Context, id int64) error {
	return s.deleteTaskFn(ctx, id)
}

type stubFactory struct {
	api *stubAPI
}

func (f *stubFactory) ForSession(context.Context, *domain.Session) ports.API { return f.api }

type stubAuthService struct {
	loginFn    func(ctx context.Context, in domain.LoginInput) (string, *domain.Session, error)
	registerFn func(ctx context.Context, in domain.RegisterInput) error
	logoutFn   func(ctx context.Context, sid string) error
}

func (s *stubAuthService) Login(ctx context.Context, in domain.LoginInput) (string, *domain.Session, error) {
	return s.loginFn(ctx, in)
}
func (s *stubAuthService) Register(ctx context.Context, in domain.RegisterInput) error {
	return s.registerFn(ctx, in)
}
func (s *stubAuthService) Logout(ctx context.Context, sid string) error {
	return s.logoutFn(ctx, sid)
}

func adminSession() *domain.Session {
	return &domain.Session{Token: "tok", User: domain.SessionUser{ID: 1, Email: "admin@x.com", Role: domain.RoleAdmin}}
}

func userSession() *domain.Session {
	return &domain.Session{Token: "tok", User: domain.SessionUser{ID: 5, Email: "user@x.com", Role: domain.RoleUser}}
}

type testRequest struct {
	method  string
	target  string
	form    url.Values
	session *domain.Session
	sid     string
	params  map[string]string
}

func newTestContext(t *testing.T, tr testRequest) (echo.Context, *httptest.ResponseRecorder, *stubRenderer) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	r := &stubRenderer{}
	e.Renderer = r

	var body io.Reader
	if tr.form != nil {
		body = strings.NewReader(tr.form.Encode())
	}
	req := httptest.NewRequest(tr.method, tr.target, body)
	if tr.form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if tr.session != nil {
		c.Set("session", tr.session)
	}
	if tr.sid != "" {
		c.Set("sid", tr.sid)
	}
	if len(tr.params) > 0 {
		names := make([]string, 0, len(tr.params))
		values := make([]string, 0, len(tr.params))
		for k, v := range tr.params {
			names = append(names, k)
			values = append(values, v)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec, r
}

func location(rec *httptest.ResponseRecorder) string {
	return rec.Header().Get(echo.HeaderLocation)
}

func hasCookie(rec *httptest.ResponseRecorder, name string) bool {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return true
		}
	}
	return false
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d", want, rec.Code)
	}
}

