// Package apierror provides the error envelopes returned to clients.
// Internal details (DB errors, stack traces) never reach these structs.
package apierror

// APIError is the envelope for /api/produtos and the read endpoints.
type APIError struct {
	Error string `json:"error"`
}

func New(msg string) *APIError {
	return &APIError{Error: msg}
}

// MessageError is the envelope for /api/cestas.
type MessageError struct {
	Message string `json:"message"`
}

func NewMessage(msg string) *MessageError {
	return &MessageError{Message: msg}
}

// FaltaEstoque lists the items that blocked a basket.
type FaltaEstoque struct {
	Message      string   `json:"message"`
	MissingItems []string `json:"missingItems"`
}

func NewFaltaEstoque(itens []string) *FaltaEstoque {
	return &FaltaEstoque{Message: "Estoque insuficiente para montar a cesta.", MissingItems: itens}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Error: "Dados inválidos.", Fields: fields}
}
