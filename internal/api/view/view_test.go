package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/screen"
)

func TestNew_ParsesEveryPage(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, name := range []string{"login.html", "register.html", "profile.html", "users.html", "clientes.html",
		"cliente.html", "cliente_edit.html", "tasks.html", "loading.html", "error.html"} {
		if _, ok := r.pages[name]; !ok {
			t.Fatalf("page %s not parsed", name)
		}
	}
}

func TestRender_LoadingPage(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, "loading.html", Page{Title: "Carregando"}, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "Carregando") {
		t.Fatalf("unexpected output %s", buf.String())
	}
}

func TestRender_ErrorPageWithNotice(t *testing.T) {
	r, _ := New()
	var buf bytes.Buffer
	page := Page{
		Title:   "Erro",
		Session: &domain.Session{Token: "t", User: domain.SessionUser{Email: "a@b.c", Role: domain.RoleAdmin}},
		Notice:  screen.Notice{Kind: screen.NoticeError, Message: "<script>x</script>"},
		Data:    map[string]any{"Status": 500},
	}
	if err := r.Render(&buf, "error.html", page, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<script>x</script>") {
		t.Fatalf("notice must be escaped")
	}
	if !strings.Contains(out, "a@b.c") {
		t.Fatalf("layout should show the signed-in user")
	}
}

func TestRender_UnknownPage(t *testing.T) {
	r, _ := New()
	if err := r.Render(&bytes.Buffer{}, "nope.html", Page{}, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestFuncs(t *testing.T) {
	f := funcs()
	if got := f["brl"].(func(float64) string)(1234.5); !strings.HasPrefix(got, "R$ ") || !strings.HasSuffix(got, "234,50") {
		t.Fatalf("brl: got %q", got)
	}
	if got := formatDate("2026-03-09"); got != "09/03/2026" {
		t.Fatalf("date: got %q", got)
	}
	if got := formatDate("2026-03-09T10:00:00Z"); got != "09/03/2026" {
		t.Fatalf("date rfc3339: got %q", got)
	}
	if got := formatDate("amanhã"); got != "amanhã" {
		t.Fatalf("unparsable date should pass through, got %q", got)
	}
}

func TestClienteField_ReadOnlyAfterAutofill(t *testing.T) {
	f := screen.ClienteForm{Autofilled: true}
	f.Cidade = "São Paulo"
	got := clienteField(f, "Cidade", "Cidade", map[string]string{"Cidade": "obrigatório"})
	if !got.ReadOnly || got.Value != "São Paulo" || got.Error != "obrigatório" {
		t.Fatalf("unexpected field %+v", got)
	}
	if clienteField(f, "Nome", "Nome", nil).ReadOnly {
		t.Fatalf("Nome is never autofilled")
	}
}
