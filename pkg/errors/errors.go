package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError representa um erro da API com o status HTTP que a camada de transporte deve refletir
type APIError struct {
	Code        int    `json:"-"`
	Message     string `json:"message"`
	OriginalErr error  `json:"-"`
}

// Error implementa a interface error
func (e *APIError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.OriginalErr)
	}
	return e.Message
}

// Unwrap permite usar errors.Is e errors.As
func (e *APIError) Unwrap() error {
	return e.OriginalErr
}

// New cria um novo APIError
func New(code int, message string, err error) *APIError {
	return &APIError{
		Code:        code,
		Message:     message,
		OriginalErr: err,
	}
}

// NotFound cria um erro 404
func NotFound(message string, err error) *APIError {
	if message == "" {
		message = "Resource not found"
	}
	return New(http.StatusNotFound, message, err)
}

// BadRequest cria um erro 400
func BadRequest(message string, err error) *APIError {
	return New(http.StatusBadRequest, message, err)
}

// Unauthorized cria um erro 401
func Unauthorized(message string, err error) *APIError {
	if message == "" {
		message = "Authentication required"
	}
	return New(http.StatusUnauthorized, message, err)
}

// Forbidden cria um erro 403
func Forbidden(message string, err error) *APIError {
	if message == "" {
		message = "Access denied"
	}
	return New(http.StatusForbidden, message, err)
}

// InternalServer cria um erro 500
func InternalServer(message string, err error) *APIError {
	if message == "" {
		message = "Internal server error"
	}
	return New(http.StatusInternalServerError, message, err)
}

// As extrai o APIError da cadeia de erros, se houver
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// StatusCode retorna o status HTTP associado ao erro; erros desconhecidos viram 500
func StatusCode(err error) int {
	if apiErr, ok := As(err); ok {
		return apiErr.Code
	}
	return http.StatusInternalServerError
}
