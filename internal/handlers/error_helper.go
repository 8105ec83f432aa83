package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httperr"
)

// writeError traduz os erros dos use cases para HTTP: regra de negócio
// vira 400 com o código e a mensagem do erro; o resto cai nos genéricos.
func writeError(c *gin.Context, err error) {
	if be, ok := httperr.AsBusiness(err); ok {
		httperr.Write(c, http.StatusBadRequest, be.Code, be.Message)
		return
	}
	if httperr.IsNotFound(err) {
		httperr.NotFound(c, "not_found", err.Error())
		return
	}
	if httperr.IsForbidden(err) {
		httperr.Forbidden(c, "forbidden", err.Error())
		return
	}
	httperr.Internal(c, "internal_error", "Erro interno. Tente novamente.")
}
