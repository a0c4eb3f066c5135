package handler

import (
	"errors"
	"net/http"
	"strconv"

	"estoquecestas/internal/apierror"
	"estoquecestas/internal/dto"
	"estoquecestas/internal/model"
	"estoquecestas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type CestasHandler struct {
	cestas    service.CestaService
	historico service.HistoricoService
}

func NewCestasHandler(cestas service.CestaService, historico service.HistoricoService) *CestasHandler {
	return &CestasHandler{cestas: cestas, historico: historico}
}

func (h *CestasHandler) Montar(c *gin.Context) {
	var req dto.MontarCestaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewMessage(service.ErrTipoCestaInvalido.Mensagem))
		return
	}
	tipo := model.TipoCesta(req.Tipo)
	if !tipo.Valido() {
		c.JSON(http.StatusBadRequest, apierror.NewMessage(service.ErrTipoCestaInvalido.Mensagem))
		return
	}

	resp, err := h.cestas.Montar(c.Request.Context(), tipo)
	if err != nil {
		var falta *service.FaltaEstoqueError
		var invalido *service.EntradaInvalidaError
		switch {
		case errors.As(err, &falta):
			c.JSON(http.StatusBadRequest, apierror.NewFaltaEstoque(falta.Itens))
		case errors.As(err, &invalido):
			c.JSON(http.StatusBadRequest, apierror.NewMessage(invalido.Mensagem))
		default:
			// already logged by the service with the failing lots
			c.JSON(http.StatusInternalServerError, apierror.NewMessage("Erro ao montar a cesta."))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Itens lists the lines of one basket. Unknown or malformed ids yield [].
func (h *CestasHandler) Itens(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, []dto.ItemCestaResponse{})
		return
	}
	itens, err := h.historico.ItensDe(c.Request.Context(), uint(id))
	if err != nil {
		log.Error().Err(err).Uint64("cesta_id", id).Msg("falha ao listar itens da cesta")
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao consultar itens."))
		return
	}
	c.JSON(http.StatusOK, itens)
}
