package handler

import (
	"net/http"

	"estoquecestas/internal/apierror"
	"estoquecestas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type HistoricoHandler struct{ svc service.HistoricoService }

func NewHistoricoHandler(svc service.HistoricoService) *HistoricoHandler {
	return &HistoricoHandler{svc: svc}
}

func (h *HistoricoHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("falha ao listar histórico")
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao consultar histórico."))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BaixarRecibo serves a receipt file as an attachment.
func (h *HistoricoHandler) BaixarRecibo(c *gin.Context) {
	nome := c.Param("arquivo")
	path, err := h.svc.ObterRecibo(nome)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Recibo não encontrado."))
		return
	}
	c.FileAttachment(path, nome)
}
