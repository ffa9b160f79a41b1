package screen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gerenciador/painel/internal/core/domain"
)

// ClienteEdit is the three-field edit form of a cliente. It is submitted or
// cancelled as a whole; a partial edit never reaches the API.
type ClienteEdit struct {
	ID            int64
	Nome          string `form:"Nome"`
	Cidade        string `form:"Cidade"`
	LimiteCredito string `form:"LimiteCredito"`
	Cancelled     bool   `form:"-"`
}

// EditFor pre-fills the form from the current record.
func EditFor(c domain.Cliente) ClienteEdit {
	return ClienteEdit{
		ID:            c.ID,
		Nome:          c.Nome,
		Cidade:        c.Cidade,
		LimiteCredito: strconv.FormatFloat(c.LimiteCredito, 'f', 2, 64),
	}
}

// Update converts the form into the API payload. A comma is accepted as the
// decimal separator.
func (e ClienteEdit) Update() (domain.ClienteUpdate, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(e.LimiteCredito), ",", ".")
	limite, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return domain.ClienteUpdate{}, &FormError{Fields: map[string]string{
			"LimiteCredito": fmt.Sprintf("LimiteCredito inválido: %q", e.LimiteCredito),
		}}
	}
	up := domain.ClienteUpdate{
		Nome:          strings.TrimSpace(e.Nome),
		Cidade:        strings.TrimSpace(e.Cidade),
		LimiteCredito: limite,
	}
	if err := Validate(up); err != nil {
		return up, err
	}
	return up, nil
}
