package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"

	authn "todo-api/auth"
	"todo-api/models"
)

// tokenVerifier é a parte do *auth.Client que usamos; isolada para os testes.
type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Verifier valida ID tokens do Firebase e traduz as falhas para a
// taxonomia de erros do pacote auth.
type Verifier struct {
	client    tokenVerifier
	isExpired func(error) bool
}

var _ authn.Verifier = (*Verifier)(nil)

func NewVerifier(ctx context.Context, credentialsPath string) (*Verifier, error) {
	client, err := NewAuthClient(ctx, credentialsPath)
	if err != nil {
		return nil, err
	}
	return newVerifier(client, auth.IsIDTokenExpired), nil
}

func newVerifier(client tokenVerifier, isExpired func(error) bool) *Verifier {
	return &Verifier{client: client, isExpired: isExpired}
}

func (v *Verifier) Verify(ctx context.Context, credential string) (models.Identity, error) {
	if credential == "" {
		return models.Identity{}, authn.ErrUnauthenticated
	}

	token, err := v.client.VerifyIDToken(ctx, credential)
	if err != nil {
		if v.isExpired(err) {
			return models.Identity{}, authn.ErrExpiredCredential
		}
		return models.Identity{}, fmt.Errorf("%w: %v", authn.ErrInvalidCredential, err)
	}
	if token == nil || token.UID == "" {
		return models.Identity{}, authn.ErrMissingSubject
	}

	// Mesmos claims que o cadastro local usava: email e name
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)

	return models.Identity{
		Subject: token.UID,
		Email:   optional(email),
		Name:    optional(name),
	}, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
