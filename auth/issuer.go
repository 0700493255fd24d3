package auth

import (
	"errors"
	"time"

	"todo-api/models"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer emite tokens HS256 com o mesmo segredo aceito pelo JWTVerifier.
// É usado apenas pelos stubs de desenvolvimento e pelos testes.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret []byte, ttl time.Duration, opts ...Option) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: secret must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token ttl must be positive")
	}
	o := buildOptions(opts)
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Issuer{secret: key, ttl: ttl, now: o.now}, nil
}

// Issue assina um token para a identidade e devolve também a expiração.
func (i *Issuer) Issue(identity models.Identity) (string, time.Time, error) {
	if identity.Subject == "" {
		return "", time.Time{}, ErrMissingSubject
	}
	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.ttl)

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if identity.Email != nil {
		claims.Email = *identity.Email
	}
	if identity.Name != nil {
		claims.Name = *identity.Name
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
