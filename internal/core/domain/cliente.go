package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CEP is a Brazilian postal code held as a number. The API has served it both
// as a JSON number and as a digit string, so decoding accepts either.
type CEP int64

func (c *CEP) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*c = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = DigitsOnly(s)
		if s == "" {
			*c = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("cep %q: %w", s, err)
		}
		*c = CEP(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*c = CEP(n)
	return nil
}

// String renders the code zero-padded to eight digits.
func (c CEP) String() string {
	if c == 0 {
		return ""
	}
	return fmt.Sprintf("%08d", int64(c))
}

// DigitsOnly strips every non-digit rune.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Cliente is a customer record owned by the remote API.
type Cliente struct {
	ID               int64     `json:"id"`
	IDUsuario        int64     `json:"idUsuario"`
	DataHoraCadastro time.Time `json:"DataHoraCadastro"`
	Codigo           string    `json:"Codigo"`
	Nome             string    `json:"Nome"`
	CPFCNPJ          string    `json:"CPF_CNPJ"`
	CEP              CEP       `json:"CEP"`
	Logradouro       string    `json:"Logradouro"`
	Endereco         string    `json:"Endereco"`
	Numero           string    `json:"Numero"`
	Bairro           string    `json:"Bairro"`
	Cidade           string    `json:"Cidade"`
	UF               string    `json:"UF"`
	Complemento      string    `json:"Complemento,omitempty"`
	Fone             string    `json:"Fone,omitempty"`
	LimiteCredito    float64   `json:"LimiteCredito"`
	Validade         string    `json:"Validade"`
}

func (c Cliente) GetID() int64 { return c.ID }

// ClienteInput is the body of POST /clientes. Only presence and length are
// checked locally; everything else is the API's business.
type ClienteInput struct {
	IDUsuario     int64   `json:"idUsuario"`
	Codigo        string  `json:"Codigo"        form:"Codigo"        validate:"required,max=15"`
	Nome          string  `json:"Nome"          form:"Nome"          validate:"required,max=150"`
	Email         string  `json:"email"         form:"email"         validate:"omitempty,max=150"`
	Password      string  `json:"password"      form:"password"      validate:"omitempty,max=100"`
	CPFCNPJ       string  `json:"CPF_CNPJ"      form:"CPF_CNPJ"      validate:"required,max=40"`
	CEP           string  `json:"CEP"           form:"CEP"           validate:"omitempty,max=9"`
	Logradouro    string  `json:"Logradouro"    form:"Logradouro"    validate:"max=100"`
	Endereco      string  `json:"Endereco"      form:"Endereco"      validate:"max=120"`
	Numero        string  `json:"Numero"        form:"Numero"        validate:"max=20"`
	Bairro        string  `json:"Bairro"        form:"Bairro"        validate:"max=50"`
	Cidade        string  `json:"Cidade"        form:"Cidade"        validate:"required,max=60"`
	UF            string  `json:"UF"            form:"UF"            validate:"required,max=2"`
	Complemento   string  `json:"Complemento,omitempty" form:"Complemento" validate:"max=150"`
	Fone          string  `json:"Fone,omitempty"        form:"Fone"        validate:"max=15"`
	LimiteCredito float64 `json:"LimiteCredito" form:"LimiteCredito" validate:"finite,gte=0"`
	Validade      string  `json:"Validade"      form:"Validade"`
}

// ClienteUpdate is the partial body of PUT /clientes/:id sent by the edit form.
type ClienteUpdate struct {
	Nome          string  `json:"Nome"          validate:"required,max=150"`
	Cidade        string  `json:"Cidade"        validate:"required,max=60"`
	LimiteCredito float64 `json:"LimiteCredito" validate:"finite,gte=0"`
}
