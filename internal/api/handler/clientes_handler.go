package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gerenciador/painel/internal/api/flash"
	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/ports"
	"github.com/gerenciador/painel/internal/core/screen"
)

const clientesPath = "/clientes"

// ClientesHandler serves the cliente list, its create form, the cliente
// profile and the edit form.
type ClientesHandler struct {
	apis   ports.APIFactory
	postal ports.PostalLookup
	now    func() time.Time
	log    zerolog.Logger
}

func NewClientesHandler(apis ports.APIFactory, postal ports.PostalLookup, log zerolog.Logger) *ClientesHandler {
	return &ClientesHandler{apis: apis, postal: postal, now: time.Now, log: log}
}

type clientesPage struct {
	Filter   screen.ClienteFilter
	Clientes []domain.Cliente
	Total    int
	Form     screen.ClienteForm
	Errors   map[string]string
}

type clientePage struct {
	Cliente *domain.Cliente
}

type clienteEditPage struct {
	Edit   screen.ClienteEdit
	Errors map[string]string
}

// mount loads the list for the current session. A failed fetch is returned
// as a notice and the screen stays empty; access failures are errors.
func (h *ClientesHandler) mount(c echo.Context) (*screen.ClientesScreen, *domain.Session, screen.Notice, error) {
	sess, err := ctxSession(c)
	if err != nil {
		return nil, nil, screen.Notice{}, err
	}
	ctx := c.Request().Context()
	s := screen.NewClientesScreen(h.apis.ForSession(ctx, sess), h.log)
	s.Filter = screen.ParseClienteFilter(c.QueryParams())
	if err := s.Mount(ctx, sess); err != nil {
		if escalated(err) {
			return nil, nil, screen.Notice{}, err
		}
		return s, sess, screen.Failure(err, "Erro ao carregar clientes."), nil
	}
	return s, sess, screen.Notice{}, nil
}

func (h *ClientesHandler) renderList(c echo.Context, status int, s *screen.ClientesScreen, form screen.ClienteForm, errs map[string]string, n screen.Notice) error {
	data := clientesPage{
		Filter:   s.Filter,
		Clientes: s.Visible(),
		Total:    len(s.All()),
		Form:     form,
		Errors:   errs,
	}
	return render(c, status, "clientes.html", page(c, "Clientes", "clientes", data), n)
}

// List handles GET /clientes.
func (h *ClientesHandler) List(c echo.Context) error {
	s, sess, n, err := h.mount(c)
	if err != nil {
		return err
	}
	return h.renderList(c, http.StatusOK, s, screen.NewClienteForm(sess.User.ID, h.now()), nil, n)
}

// Create handles POST /clientes. action=lookup only runs the postal autofill
// and redraws the form.
func (h *ClientesHandler) Create(c echo.Context) error {
	s, sess, n, err := h.mount(c)
	if err != nil {
		return err
	}
	var form screen.ClienteForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form.IDUsuario = sess.User.ID
	ctx := c.Request().Context()

	if c.FormValue("action") == "lookup" {
		form.Autofill(ctx, h.postal)
		return h.renderList(c, http.StatusOK, s, form, nil, n)
	}

	form.SyncCEP()
	n, err = s.Create(ctx, form)
	if err != nil {
		if escalated(err) {
			return err
		}
		return h.renderList(c, statusFor(err), s, form, formErrors(err), n)
	}
	flash.Write(c.Response(), n)
	return c.Redirect(http.StatusFound, clientesPath)
}

// Show handles GET /clientes/:id. An unknown id goes back to the list.
func (h *ClientesHandler) Show(c echo.Context) error {
	cl, err := h.get(c)
	if errors.Is(err, domain.ErrNotFound) {
		flash.Write(c.Response(), screen.Notice{Kind: screen.NoticeError, Message: "Cliente não encontrado."})
		return c.Redirect(http.StatusFound, clientesPath)
	}
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "cliente.html", page(c, cl.Nome, "clientes", clientePage{Cliente: cl}))
}

// EditForm handles GET /clientes/:id/edit.
func (h *ClientesHandler) EditForm(c echo.Context) error {
	cl, err := h.get(c)
	if err != nil {
		return err
	}
	data := clienteEditPage{Edit: screen.EditFor(*cl)}
	return c.Render(http.StatusOK, "cliente_edit.html", page(c, "Editar cliente", "clientes", data))
}

// Edit handles POST /clientes/:id/edit. action=cancel drops the edit without
// calling the API.
func (h *ClientesHandler) Edit(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var edit screen.ClienteEdit
	if err := c.Bind(&edit); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	edit.ID = id
	edit.Cancelled = c.FormValue("action") == "cancel"

	ctx := c.Request().Context()
	s := screen.NewClientesScreen(h.apis.ForSession(ctx, sess), h.log)
	n, err := s.Update(ctx, edit)
	if err != nil {
		if escalated(err) {
			return err
		}
		data := clienteEditPage{Edit: edit, Errors: formErrors(err)}
		return render(c, statusFor(err), "cliente_edit.html", page(c, "Editar cliente", "clientes", data), n)
	}
	return settle(c, n, nil, clientesPath+"/"+strconv.FormatInt(id, 10))
}

// Delete handles POST /clientes/:id/delete.
func (h *ClientesHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if !confirmed(c) {
		return settle(c, screen.Warning(msgNotConfirmed), nil, clientesPath)
	}
	ctx := c.Request().Context()
	n, err := screen.NewClientesScreen(h.apis.ForSession(ctx, sess), h.log).Delete(ctx, id)
	return settle(c, n, err, clientesPath)
}

func (h *ClientesHandler) get(c echo.Context) (*domain.Cliente, error) {
	sess, err := ctxSession(c)
	if err != nil {
		return nil, err
	}
	id, err := paramID(c)
	if err != nil {
		return nil, err
	}
	ctx := c.Request().Context()
	return screen.NewClientesScreen(h.apis.ForSession(ctx, sess), h.log).Get(ctx, sess, id)
}
