package screen

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/gerenciador/painel/internal/core/domain"
)

// ClienteFilter narrows the cliente list. Text fields match a case-folded
// substring, CEP matches exactly, and all set fields must match.
type ClienteFilter struct {
	Codigo string
	Nome   string
	Cidade string
	CEP    *int64
}

// ParseClienteFilter reads the filter from query parameters. A CEP that has
// no digits is ignored.
func ParseClienteFilter(v url.Values) ClienteFilter {
	f := ClienteFilter{
		Codigo: strings.TrimSpace(v.Get("codigo")),
		Nome:   strings.TrimSpace(v.Get("nome")),
		Cidade: strings.TrimSpace(v.Get("cidade")),
	}
	if digits := domain.DigitsOnly(v.Get("cep")); digits != "" {
		if n, err := strconv.ParseInt(digits, 10, 64); err == nil {
			f.CEP = &n
		}
	}
	return f
}

func (f ClienteFilter) IsZero() bool {
	return f.Codigo == "" && f.Nome == "" && f.Cidade == "" && f.CEP == nil
}

// CEPText renders the CEP filter for the filter form.
func (f ClienteFilter) CEPText() string {
	if f.CEP == nil {
		return ""
	}
	return domain.CEP(*f.CEP).String()
}

// Apply returns the matching records in their original order. An empty filter
// returns every record.
func (f ClienteFilter) Apply(items []domain.Cliente) []domain.Cliente {
	if f.IsZero() {
		out := make([]domain.Cliente, len(items))
		copy(out, items)
		return out
	}
	fold := cases.Fold()
	codigo, nome, cidade := fold.String(f.Codigo), fold.String(f.Nome), fold.String(f.Cidade)

	out := make([]domain.Cliente, 0, len(items))
	for _, c := range items {
		if codigo != "" && !strings.Contains(fold.String(c.Codigo), codigo) {
			continue
		}
		if nome != "" && !strings.Contains(fold.String(c.Nome), nome) {
			continue
		}
		if cidade != "" && !strings.Contains(fold.String(c.Cidade), cidade) {
			continue
		}
		if f.CEP != nil && int64(c.CEP) != *f.CEP {
			continue
		}
		out = append(out, c)
	}
	return out
}

// TaskFilter narrows the task list by completion.
type TaskFilter struct {
	Completed *bool
}

// ParseTaskFilter reads status=done|pending; anything else means all.
func ParseTaskFilter(v url.Values) TaskFilter {
	var done bool
	switch v.Get("status") {
	case "done":
		done = true
	case "pending":
		done = false
	default:
		return TaskFilter{}
	}
	return TaskFilter{Completed: &done}
}

// Status is the inverse of ParseTaskFilter.
func (f TaskFilter) Status() string {
	switch {
	case f.Completed == nil:
		return "all"
	case *f.Completed:
		return "done"
	}
	return "pending"
}

func (f TaskFilter) Apply(items []domain.Task) []domain.Task {
	out := make([]domain.Task, 0, len(items))
	for _, t := range items {
		if f.Completed != nil && t.IsCompleted != *f.Completed {
			continue
		}
		out = append(out, t)
	}
	return out
}
