package screen

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/ports"
)

type TasksScreen struct {
	api    ports.TaskAPI
	log    zerolog.Logger
	items  *Collection[domain.Task]
	Filter TaskFilter
}

func NewTasksScreen(api ports.TaskAPI, log zerolog.Logger) *TasksScreen {
	return &TasksScreen{
		api:   api,
		log:   log.With().Str("screen", "tasks").Logger(),
		items: NewCollection[domain.Task](nil),
	}
}

func (s *TasksScreen) Mount(ctx context.Context, sess *domain.Session) error {
	if !sess.Authenticated() {
		return domain.ErrNoSession
	}
	list, err := s.api.ListTasks(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list tasks")
		return fmt.Errorf("list tasks: %w", err)
	}
	s.items = NewCollection(list)
	return nil
}

func (s *TasksScreen) All() []domain.Task { return s.items.Items() }

func (s *TasksScreen) Visible() []domain.Task {
	return s.Filter.Apply(s.items.Items())
}

// Add creates a task. Title and body must both be non-blank.
func (s *TasksScreen) Add(ctx context.Context, title, body string) (Notice, error) {
	title, body = strings.TrimSpace(title), strings.TrimSpace(body)
	if title == "" || body == "" {
		err := &FormError{Fields: map[string]string{"task": "Título e descrição são obrigatórios."}}
		return Failure(err, ""), err
	}
	created, err := s.api.CreateTask(ctx, domain.NewTask{Title: title, Body: body})
	if err != nil {
		s.log.Error().Err(err).Msg("create task")
		return Failure(err, "Erro ao adicionar tarefa."), err
	}
	s.items.Append(*created)
	return Success("Tarefa adicionada com sucesso!"), nil
}

// Toggle flips the completion flag of task id.
func (s *TasksScreen) Toggle(ctx context.Context, id int64) (Notice, error) {
	held, ok := s.items.Find(id)
	if !ok {
		return Failure(domain.ErrNotFound, "Tarefa não encontrada."), domain.ErrNotFound
	}
	done := !held.IsCompleted
	patch := domain.TaskPatch{IsCompleted: &done}
	if err := s.api.PatchTask(ctx, id, patch); err != nil {
		s.log.Error().Err(err).Int64("task_id", id).Msg("toggle task")
		return Failure(err, "Erro ao atualizar status da tarefa."), err
	}
	s.items.Replace(patch.Apply(held))
	return Success("Status da tarefa atualizado."), nil
}

// Edit rewrites title and body of task id.
func (s *TasksScreen) Edit(ctx context.Context, id int64, title, body string) (Notice, error) {
	if title == "" || body == "" {
		err := &FormError{Fields: map[string]string{"task": "Título e descrição são obrigatórios."}}
		return Failure(err, ""), err
	}
	held, ok := s.items.Find(id)
	if !ok {
		return Failure(domain.ErrNotFound, "Tarefa não encontrada."), domain.ErrNotFound
	}
	patch := domain.TaskPatch{Title: &title, Body: &body}
	if err := s.api.PatchTask(ctx, id, patch); err != nil {
		s.log.Error().Err(err).Int64("task_id", id).Msg("edit task")
		return Failure(err, "Erro ao editar tarefa."), err
	}
	s.items.Replace(patch.Apply(held))
	return Success("Tarefa atualizada com sucesso!"), nil
}

func (s *TasksScreen) Delete(ctx context.Context, id int64) (Notice, error) {
	if err := s.api.DeleteTask(ctx, id); err != nil {
		s.log.Error().Err(err).Int64("task_id", id).Msg("delete task")
		return Failure(err, "Erro ao excluir tarefa."), err
	}
	s.items.Remove(id)
	return Success("Tarefa excluída com sucesso!"), nil
}
