package firebase

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authn "todo-api/auth"
)

var errExpired = errors.New("ID token has expired")

type stubClient struct {
	token *auth.Token
	err   error
}

func (s stubClient) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	return s.token, s.err
}

func isStubExpired(err error) bool { return errors.Is(err, errExpired) }

func TestVerifier_Success(t *testing.T) {
	v := newVerifier(stubClient{token: &auth.Token{
		UID:    "uid-123",
		Claims: map[string]interface{}{"email": "ana@example.com"},
	}}, isStubExpired)

	identity, err := v.Verify(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, "uid-123", identity.Subject)
	require.NotNil(t, identity.Email)
	assert.Equal(t, "ana@example.com", *identity.Email)
	assert.Nil(t, identity.Name)
}

func TestVerifier_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		credential string
		client     stubClient
		want       error
	}{
		{name: "missing", credential: "", want: authn.ErrUnauthenticated},
		{name: "expired", credential: "t", client: stubClient{err: errExpired}, want: authn.ErrExpiredCredential},
		{name: "invalid", credential: "t", client: stubClient{err: errors.New("bad signature")}, want: authn.ErrInvalidCredential},
		{name: "no uid", credential: "t", client: stubClient{token: &auth.Token{}}, want: authn.ErrMissingSubject},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newVerifier(tt.client, isStubExpired).Verify(context.Background(), tt.credential)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewAuthClient_RequiresCredentialsPath(t *testing.T) {
	_, err := NewAuthClient(context.Background(), "")
	assert.Error(t, err)
}
