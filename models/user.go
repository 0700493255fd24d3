package models

// Identity é o sujeito autenticado extraído de um token verificado.
// Vive apenas durante a requisição e nunca é persistido.
type Identity struct {
	Subject string  `json:"id"`
	Email   *string `json:"email"`
	Name    *string `json:"name"`
}
