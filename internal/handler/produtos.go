package handler

import (
	"errors"
	"net/http"

	"estoquecestas/internal/apierror"
	"estoquecestas/internal/dto"
	"estoquecestas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ProdutosHandler struct{ svc service.EstoqueService }

func NewProdutosHandler(svc service.EstoqueService) *ProdutosHandler {
	return &ProdutosHandler{svc: svc}
}

func (h *ProdutosHandler) Cadastrar(c *gin.Context) {
	var req dto.CadastrarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		var invalido *service.EntradaInvalidaError
		if errors.As(err, &invalido) {
			c.JSON(http.StatusBadRequest, apierror.New(invalido.Mensagem))
			return
		}
		log.Error().Err(err).Str("nome", req.Nome).Msg("falha ao cadastrar produto")
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao cadastrar produto."))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ProdutosHandler) ListarEstoque(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("falha ao listar estoque")
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao consultar estoque."))
		return
	}
	c.JSON(http.StatusOK, resp)
}
