package auth

import (
	"errors"
	"fmt"
)

// Erros de verificação de credencial. Use errors.Is para distinguir cada caso.
var (
	// ErrUnauthenticated: nenhuma credencial foi apresentada.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrExpiredCredential: assinatura válida, mas o token já expirou.
	ErrExpiredCredential = errors.New("token has expired")

	// ErrInvalidCredential: token malformado, assinatura inválida ou algoritmo inesperado.
	ErrInvalidCredential = errors.New("could not validate credentials")

	// ErrMissingSubject é um caso de ErrInvalidCredential.
	ErrMissingSubject = fmt.Errorf("%w: token missing subject (sub) claim", ErrInvalidCredential)
)
