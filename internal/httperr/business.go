package httperr

import "errors"

// BusinessError é uma violação de regra de negócio com mensagem voltada
// ao usuário final (a mensagem nomeia a data/sala/recurso ofendido).
type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func ErrBusiness(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

// NotFoundError distingue recurso inexistente de regra violada.
type NotFoundError struct {
	Message string
}

func (e NotFoundError) Error() string { return e.Message }

func ErrNotFound(message string) error {
	return NotFoundError{Message: message}
}

func IsNotFound(err error) bool {
	var ne NotFoundError
	return errors.As(err, &ne)
}

// ForbiddenError indica que o ator não tem direitos sobre a sala do
// agendamento. Verificado antes de qualquer mutação.
type ForbiddenError struct {
	Message string
}

func (e ForbiddenError) Error() string { return e.Message }

func ErrForbidden(message string) error {
	return ForbiddenError{Message: message}
}

func IsForbidden(err error) bool {
	var fe ForbiddenError
	return errors.As(err, &fe)
}
