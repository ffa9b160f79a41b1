package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gerenciador/painel/internal/core/domain"
	"github.com/gerenciador/painel/internal/core/ports"
	"github.com/gerenciador/painel/internal/core/screen"
)

// PostalHandler exposes postal-code lookups to the cliente form script.
type PostalHandler struct {
	lookup ports.PostalLookup
}

func NewPostalHandler(lookup ports.PostalLookup) *PostalHandler {
	return &PostalHandler{lookup: lookup}
}

type errorBody struct {
	Error string `json:"error"`
}

// Lookup handles GET /api/cep/:cep.
//
// @Summary      Look up a postal code
// @Tags         postal
// @Produce      json
// @Param        cep  path      string  true  "Postal code, 8 digits"
// @Success      200  {object}  domain.Address
// @Failure      400  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Failure      502  {object}  errorBody
// @Router       /api/cep/{cep} [get]
func (h *PostalHandler) Lookup(c echo.Context) error {
	cep := c.Param("cep")
	if !screen.ShouldLookup(cep) {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "cep must have 8 digits"})
	}
	addr, err := h.lookup.Lookup(c.Request().Context(), cep)
	if err != nil {
		if errors.Is(err, domain.ErrPostalNotFound) {
			return c.JSON(http.StatusNotFound, errorBody{Error: "cep not found"})
		}
		return c.JSON(http.StatusBadGateway, errorBody{Error: "postal service unavailable"})
	}
	return c.JSON(http.StatusOK, addr)
}
