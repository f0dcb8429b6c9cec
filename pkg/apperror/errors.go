package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// DefaultInternalMessage é a mensagem exposta quando nenhum contexto foi informado.
const DefaultInternalMessage = "An internal server error occurred."

// Error representa um erro tipado que carrega o status HTTP e a mensagem
// exibida ao chamador. A causa original fica disponível apenas para logs.
type Error struct {
	Code   int
	Detail string
	cause  error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.cause)
	}
	return e.Detail
}

// Unwrap expõe a causa para errors.Is / errors.As
func (e *Error) Unwrap() error {
	return e.cause
}

// New cria um erro com código e mensagem arbitrários.
func New(code int, detail string) *Error {
	return &Error{Code: code, Detail: detail}
}

// NotFound indica que o item solicitado não existe (404).
func NotFound(item string) *Error {
	return &Error{
		Code:   http.StatusNotFound,
		Detail: fmt.Sprintf("%s not found.", item),
	}
}

// Validation indica entrada inválida do chamador (400), sempre antes de qualquer I/O.
func Validation(field, message string) *Error {
	return &Error{
		Code:   http.StatusBadRequest,
		Detail: fmt.Sprintf("Validation error on %s: %s", field, message),
	}
}

// Internal encapsula falhas de SDK ou inesperadas (500) preservando a causa.
func Internal(message string, cause error) *Error {
	if message == "" {
		message = DefaultInternalMessage
	}
	return &Error{
		Code:   http.StatusInternalServerError,
		Detail: message,
		cause:  cause,
	}
}

// From converte qualquer erro em *Error. Erros desconhecidos viram 500 genérico.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("", err)
}

// StatusCode retorna o código HTTP associado ao erro.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return From(err).Code
}

func IsNotFound(err error) bool   { return hasCode(err, http.StatusNotFound) }
func IsValidation(err error) bool { return hasCode(err, http.StatusBadRequest) }
func IsInternal(err error) bool   { return hasCode(err, http.StatusInternalServerError) }

func hasCode(err error, code int) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == code
}
