package screen

import (
	"context"
	"net/url"

	"github.com/gerenciador/painel/internal/core/domain"
)

type stubClienteAPI struct {
	calls    int
	listFn   func(ctx context.Context) ([]domain.Cliente, error)
	getFn    func(ctx context.Context, id int64) (*domain.Cliente, error)
	createFn func(ctx context.Context, in domain.ClienteInput) (*domain.Cliente, error)
	updateFn func(ctx context.Context, id int64, in domain.ClienteUpdate) (*domain.Cliente, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubClienteAPI) ListClientes(ctx context.Context) ([]domain.Cliente, error) {
	s.calls++
	return s.listFn(ctx)
}

func (s *stubClienteAPI) GetCliente(ctx context.Context, id int64) (*domain.Cliente, error) {
	s.calls++
	return s.getFn(ctx, id)
}

func (s *stubClienteAPI) CreateCliente(ctx context.Context, in domain.ClienteInput) (*domain.Cliente, error) {
	s.calls++
	return s.createFn(ctx, in)
}

func (s *stubClienteAPI) UpdateCliente(ctx context.Context, id int64, in domain.ClienteUpdate) (*domain.Cliente, error) {
	s.calls++
	return s.updateFn(ctx, id, in)
}

func (s *stubClienteAPI) DeleteCliente(ctx context.Context, id int64) error {
	s.calls++
	return s.deleteFn(ctx, id)
}

type stubTaskAPI struct {
	calls    int
	listFn   func(ctx context.Context) ([]domain.Task, error)
	createFn func(ctx context.Context, in domain.NewTask) (*domain.Task, error)
	patchFn  func(ctx context.Context, id int64, p domain.TaskPatch) error
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubTaskAPI) ListTasks(ctx context.Context) ([]domain.Task, error) {
	s.calls++
	return s.listFn(ctx)
}

func (s *stubTaskAPI) CreateTask(ctx context.Context, in domain.NewTask) (*domain.Task, error) {
	s.calls++
	return s.createFn(ctx, in)
}

func (s *stubTaskAPI) PatchTask(ctx context.Context, id int64, p domain.TaskPatch) error {
	s.calls++
	return s.patchFn(ctx, id, p)
}

func (s *stubTaskAPI) DeleteTask(ctx context.Context, id int64) error {
	s.calls++
	return s.deleteFn(ctx, id)
}

type stubUserAPI struct {
	calls    int
	listFn   func(ctx context.Context, q url.Values) ([]domain.User, error)
	getFn    func(ctx context.Context, id int64) (*domain.User, error)
	createFn func(ctx context.Context, in domain.CreateUserInput) (*domain.User, error)
	updateFn func(ctx context.Context, id int64, in domain.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubUserAPI) ListUsers(ctx context.Context, q url.Values) ([]domain.User, error) {
	s.calls++
	return s.listFn(ctx, q)
}

func (s *stubUserAPI) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	s.calls++
	return s.getFn(ctx, id)
}

func (s *stubUserAPI) CreateUser(ctx context.Context, in domain.CreateUserInput) (*domain.User, error) {
	s.calls++
	return s.createFn(ctx, in)
}

func (s *stubUserAPI) UpdateUser(ctx context.Context, id int64, in domain.UpdateUserInput) (*domain.User, error) {
	s.calls++
	return s.updateFn(ctx, id, in)
}

func (s *stubUserAPI) DeleteUser(ctx context.Context, id int64) error {
	s.calls++
	return s.deleteFn(ctx, id)
}

type stubLookup struct {
	calls int
	addr  *domain.Address
	err   error
}

func (s *stubLookup) Lookup(context.Context, string) (*domain.Address, error) {
	s.calls++
	return s.addr, s.err
}

func adminSession() *domain.Session {
	return &domain.Session{Token: "tok", User: domain.SessionUser{ID: 1, Email: "admin@example.com", Role: domain.RoleAdmin}}
}

func userSession() *domain.Session {
	return &domain.Session{Token: "tok", User: domain.SessionUser{ID: 5, Email: "user@example.com", Role: domain.RoleUser}}
}

func sampleClientes() []domain.Cliente {
	return []domain.Cliente{
		{ID: 1, Codigo: "ABC-01", Nome: "Padaria Pão Quente", Cidade: "São Paulo", CEP: 1001000},
		{ID: 2, Codigo: "xyz-02", Nome: "Mercado Central", Cidade: "Curitiba", CEP: 80010000},
		{ID: 3, Codigo: "ABX-03", Nome: "Açougue São João", Cidade: "SÃO PAULO", CEP: 1310100},
	}
}
