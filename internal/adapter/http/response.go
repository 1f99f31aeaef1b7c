// Package http expõe os serviços da aplicação via gin com o envelope padrão de resposta.
package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/diillson/retail-admin-api/internal/domain/model"
	apperrors "github.com/diillson/retail-admin-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Envelope é o corpo de toda resposta da API
type Envelope struct {
	Success    bool              `json:"success"`
	Data       interface{}       `json:"data"`
	Message    string            `json:"message"`
	Pagination *model.Pagination `json:"pagination,omitempty"`
}

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Envelope{Success: true, Data: data, Message: message})
}

func respondList(c *gin.Context, data interface{}, pagination model.Pagination, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Message: message, Pagination: &pagination})
}

// respondError reflete o status de um APIError; qualquer outro erro vira 500 genérico
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	apiErr, ok := apperrors.As(err)
	if !ok {
		apiErr = apperrors.InternalServer("", err)
	}

	if apiErr.Code >= http.StatusInternalServerError {
		logger.Error("falha ao processar requisição",
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Error(err))
	}

	c.JSON(apiErr.Code, Envelope{Success: false, Data: nil, Message: apiErr.Message})
}

// bindJSON decodifica o corpo; corpo vazio segue para a validação e JSON malformado é erro do cliente
func bindJSON(c *gin.Context, dst interface{}) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.BadRequest("Invalid request data", err)
	}
	return nil
}

// listQuery lê page, limit e search; valores não numéricos caem nos padrões do recurso
func listQuery(c *gin.Context) model.ListQuery {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return model.ListQuery{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	}
}
