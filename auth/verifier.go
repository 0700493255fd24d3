package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"todo-api/models"

	"github.com/golang-jwt/jwt/v5"
)

// SigningAlgorithm é o único algoritmo aceito na verificação e na emissão.
const SigningAlgorithm = "HS256"

// Verifier valida uma credencial bearer e devolve a identidade do sujeito.
type Verifier interface {
	Verify(ctx context.Context, credential string) (models.Identity, error)
}

// tokenClaims são os claims que a API entende. Qualquer outro é ignorado.
type tokenClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock substitui time.Now, usado nos testes de expiração.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// JWTVerifier verifica tokens HS256 com um segredo compartilhado próprio da instância.
type JWTVerifier struct {
	secret []byte
	parser *jwt.Parser
}

var _ Verifier = (*JWTVerifier)(nil)

func NewJWTVerifier(secret []byte, opts ...Option) (*JWTVerifier, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: secret must not be empty")
	}
	o := buildOptions(opts)
	key := make([]byte, len(secret))
	copy(key, secret)
	return &JWTVerifier{
		secret: key,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{SigningAlgorithm}),
			jwt.WithTimeFunc(o.now),
		),
	}, nil
}

// Verify é uma função pura do token e do segredo.
func (v *JWTVerifier) Verify(_ context.Context, credential string) (models.Identity, error) {
	if credential == "" {
		return models.Identity{}, ErrUnauthenticated
	}

	var claims tokenClaims
	_, err := v.parser.ParseWithClaims(credential, &claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return models.Identity{}, ErrExpiredCredential
	default:
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	if claims.Subject == "" {
		return models.Identity{}, ErrMissingSubject
	}

	return models.Identity{
		Subject: claims.Subject,
		Email:   optional(claims.Email),
		Name:    optional(claims.Name),
	}, nil
}

// BearerToken extrai o token do header Authorization. Header ausente ou
// fora do formato "Bearer <token>" resulta em ErrUnauthenticated.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrUnauthenticated
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrUnauthenticated
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrUnauthenticated
	}
	return token, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
