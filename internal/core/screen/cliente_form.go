package screen

import (
	"context"
	"strings"
	"time"

	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/ports"
)

const (
	msgCEPNotFound = "CEP não encontrado ou inválido. Por favor, verifique e preencha o endereço manualmente."
	msgRequired    = "Por favor, preencha todos os campos obrigatórios."
)

// Address fields that a postal lookup fills in.
var autofillFields = map[string]struct{}{
	"Logradouro":  {},
	"Bairro":      {},
	"Cidade":      {},
	"UF":          {},
	"Complemento": {},
}

// ShouldLookup reports whether cep is worth a postal lookup: exactly eight
// digits once everything else is stripped, and not the literal "0".
func ShouldLookup(cep string) bool {
	return cep != "0" && len(domain.DigitsOnly(cep)) == 8
}

// ClienteForm is the create form of the cliente screen. AutofillCEP records
// the digits that produced the current autofill so a later edit of the CEP
// can be detected across requests.
type ClienteForm struct {
	domain.ClienteInput
	Autofilled  bool   `form:"autofilled"`
	AutofillCEP string `form:"autofill_cep"`
	Warning     string `form:"-"`
}

// NewClienteForm returns an empty form owned by userID.
func NewClienteForm(userID int64, now time.Time) ClienteForm {
	return ClienteForm{ClienteInput: domain.ClienteInput{
		IDUsuario: userID,
		Validade:  now.Format(time.DateOnly),
	}}
}

// ReadOnly reports whether field must be rendered non-editable.
func (f ClienteForm) ReadOnly(field string) bool {
	if !f.Autofilled {
		return false
	}
	_, ok := autofillFields[field]
	return ok
}

// SyncCEP drops the autofilled flag when the CEP no longer matches the one
// that was looked up. The address values themselves are kept.
func (f *ClienteForm) SyncCEP() {
	if f.Autofilled && domain.DigitsOnly(f.CEP) != f.AutofillCEP {
		f.Autofilled = false
		f.AutofillCEP = ""
	}
}

// Autofill looks the CEP up and rewrites the address block. It does nothing
// unless ShouldLookup holds. It reports whether a lookup was attempted.
func (f *ClienteForm) Autofill(ctx context.Context, lookup ports.PostalLookup) bool {
	f.SyncCEP()
	if !ShouldLookup(f.CEP) {
		return false
	}
	f.Warning = ""

	addr, err := lookup.Lookup(ctx, f.CEP)
	if err != nil {
		f.clearAddress()
		f.Warning = msgCEPNotFound
		return true
	}

	f.Logradouro = addr.Logradouro
	f.Bairro = addr.Bairro
	f.Cidade = addr.Cidade
	f.UF = addr.UF
	f.Complemento = addr.Complemento
	f.Autofilled = true
	f.AutofillCEP = domain.DigitsOnly(f.CEP)
	return true
}

func (f *ClienteForm) clearAddress() {
	f.Logradouro = ""
	f.Bairro = ""
	f.Cidade = ""
	f.UF = ""
	f.Complemento = ""
	f.Autofilled = false
	f.AutofillCEP = ""
}

// Input trims the form and checks presence and length. The returned input is
// what gets sent to the API.
func (f ClienteForm) Input() (domain.ClienteInput, error) {
	in := f.ClienteInput
	in.Codigo = strings.TrimSpace(in.Codigo)
	in.Nome = strings.TrimSpace(in.Nome)
	in.CPFCNPJ = strings.TrimSpace(in.CPFCNPJ)
	in.Cidade = strings.TrimSpace(in.Cidade)
	in.UF = strings.ToUpper(strings.TrimSpace(in.UF))
	in.CEP = domain.DigitsOnly(in.CEP)
	if err := Validate(in); err != nil {
		return in, err
	}
	return in, nil
}
