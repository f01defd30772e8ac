package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/veve-booking/internal/httperr"
	"github.com/BruksfildServices01/veve-booking/internal/validators"
)

const (
	internalCode    = "internal_error"
	internalMessage = "Ocorreu um erro inesperado. Tente novamente."
)

// fail maps business errors through the code table and logs the rest.
func fail(c *gin.Context, err error) {
	httperr.Respond(c, err, internalCode, internalMessage)
}

// bind decodes the JSON body and answers 400 with the first rule violated.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", validators.FirstMessage(err))
		return false
	}
	return true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return uuid.Nil, false
	}
	return id, true
}
