package screen

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/ports"
)

// ClientesScreen is the cliente list with its filter and mutations.
type ClientesScreen struct {
	api    ports.ClienteAPI
	log    zerolog.Logger
	items  *Collection[domain.Cliente]
	Filter ClienteFilter
}

func NewClientesScreen(api ports.ClienteAPI, log zerolog.Logger) *ClientesScreen {
	return &ClientesScreen{
		api:   api,
		log:   log.With().Str("screen", "clientes").Logger(),
		items: NewCollection[domain.Cliente](nil),
	}
}

// Mount fetches the list. Without a session token no request is made.
func (s *ClientesScreen) Mount(ctx context.Context, sess *domain.Session) error {
	if !sess.Authenticated() {
		return domain.ErrNoSession
	}
	list, err := s.api.ListClientes(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list clientes")
		return fmt.Errorf("list clientes: %w", err)
	}
	s.items = NewCollection(list)
	return nil
}

func (s *ClientesScreen) All() []domain.Cliente { return s.items.Items() }

// Visible is the held list narrowed by the active filter.
func (s *ClientesScreen) Visible() []domain.Cliente {
	return s.Filter.Apply(s.items.Items())
}

// Get fetches one cliente for the profile and edit views.
func (s *ClientesScreen) Get(ctx context.Context, sess *domain.Session, id int64) (*domain.Cliente, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrNoSession
	}
	c, err := s.api.GetCliente(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Int64("cliente_id", id).Msg("get cliente")
		return nil, fmt.Errorf("get cliente %d: %w", id, err)
	}
	return c, nil
}

// Create submits form and appends the stored record.
func (s *ClientesScreen) Create(ctx context.Context, form ClienteForm) (Notice, error) {
	in, err := form.Input()
	if err != nil {
		return Notice{Kind: NoticeError, Message: msgRequired}, err
	}
	created, err := s.api.CreateCliente(ctx, in)
	if err != nil {
		s.log.Error().Err(err).Str("codigo", in.Codigo).Msg("create cliente")
		return Failure(err, "Erro ao adicionar cliente."), err
	}
	s.items.Append(*created)
	return Success("Cliente adicionado com sucesso!"), nil
}

// Update applies a submitted edit. A cancelled edit does nothing.
func (s *ClientesScreen) Update(ctx context.Context, edit ClienteEdit) (Notice, error) {
	if edit.Cancelled {
		return Notice{}, nil
	}
	up, err := edit.Update()
	if err != nil {
		return Failure(err, "Erro ao editar cliente."), err
	}
	updated, err := s.api.UpdateCliente(ctx, edit.ID, up)
	if err != nil {
		s.log.Error().Err(err).Int64("cliente_id", edit.ID).Msg("update cliente")
		return Failure(err, "Erro ao editar cliente."), err
	}
	s.items.Replace(s.merge(edit.ID, *updated))
	return Success("Cliente atualizado com sucesso!"), nil
}

// merge lays the API's answer over the held record; the API may answer with
// only the changed fields.
func (s *ClientesScreen) merge(id int64, updated domain.Cliente) domain.Cliente {
	held, ok := s.items.Find(id)
	if !ok || (updated.ID == id && updated.Codigo != "") {
		updated.ID = id
		return updated
	}
	held.Nome = updated.Nome
	held.Cidade = updated.Cidade
	held.LimiteCredito = updated.LimiteCredito
	return held
}

func (s *ClientesScreen) Delete(ctx context.Context, id int64) (Notice, error) {
	if err := s.api.DeleteCliente(ctx, id); err != nil {
		s.log.Error().Err(err).Int64("cliente_id", id).Msg("delete cliente")
		return Failure(err, "Erro ao excluir cliente."), err
	}
	s.items.Remove(id)
	return Success("Cliente excluído com sucesso!"), nil
}
