// Package view renders the panel's HTML pages. Every page is parsed together
// with the shared layout and executed through it.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/screen"
)

//go:embed templates/*.html
var files embed.FS

const layoutFile = "templates/layout.html"

// Page is the data every template receives.
type Page struct {
	Title   string
	Active  string
	Session *domain.Session
	Notice  screen.Notice
	CSRF    string
	Data    any
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

func New() (*Renderer, error) {
	names, err := fs.Glob(files, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		if name == layoutFile {
			continue
		}
		tpl, err := template.New(path.Base(layoutFile)).Funcs(funcs()).ParseFS(files, layoutFile, name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[path.Base(name)] = tpl
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return tpl.ExecuteTemplate(w, "layout", data)
}

var brazil = message.NewPrinter(language.BrazilianPortuguese)

func funcs() template.FuncMap {
	return template.FuncMap{
		"brl": func(v float64) string {
			return brazil.Sprintf("R$ %.2f", v)
		},
		"number": func(v float64) string {
			return brazil.Sprintf("%.2f", v)
		},
		"date": formatDate,
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Local().Format("02/01/2006 15:04")
		},
		"optdatetime": func(t *time.Time) string {
			if t == nil || t.IsZero() {
				return "-"
			}
			return t.Local().Format("02/01/2006 15:04")
		},
		"optid": func(id *int64) string {
			if id == nil {
				return ""
			}
			return strconv.FormatInt(*id, 10)
		},
		"field": clienteField,
	}
}

// formField is one text input of the cliente form.
type formField struct {
	Name     string
	Label    string
	Value    string
	ReadOnly bool
	Error    string
}

func clienteField(f screen.ClienteForm, name, label string, errs map[string]string) formField {
	var value string
	switch name {
	case "Codigo":
		value = f.Codigo
	case "Nome":
		value = f.Nome
	case "CPF_CNPJ":
		value = f.CPFCNPJ
	case "Logradouro":
		value = f.Logradouro
	case "Endereco":
		value = f.Endereco
	case "Numero":
		value = f.Numero
	case "Bairro":
		value = f.Bairro
	case "Cidade":
		value = f.Cidade
	case "UF":
		value = f.UF
	case "Complemento":
		value = f.Complemento
	case "Fone":
		value = f.Fone
	}
	return formField{Name: name, Label: label, Value: value, ReadOnly: f.ReadOnly(name), Error: errs[name]}
}

// formatDate renders an API date (date-only or RFC 3339) as dd/mm/yyyy.
func formatDate(raw string) string {
	for _, layout := range []string{time.DateOnly, time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return raw
}
