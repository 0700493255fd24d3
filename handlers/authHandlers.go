package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"todo-api/models"
	"todo-api/utilities"
)

// Stubs de desenvolvimento: emitem um token para qualquer email/senha.
// Não há armazenamento de credenciais; só são registrados quando o
// servidor recebe WithDevIssuer.

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	User        models.Identity `json:"user"`
}

// SignUpHandler emite um token de desenvolvimento sem verificar senha.
func (s *Server) SignUpHandler(w http.ResponseWriter, r *http.Request) {
	var input signUpRequest
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err, "Erro ao decodificar corpo do signup")
		return
	}
	if err := requireEmail(input.Email); err != nil {
		writeError(w, r, err, "Signup inválido")
		return
	}

	name := input.Name
	if name == "" {
		name = localPart(input.Email)
	}
	s.issueDevToken(w, r, input.Email, name)
}

// SignInHandler emite um token de desenvolvimento sem verificar senha.
func (s *Server) SignInHandler(w http.ResponseWriter, r *http.Request) {
	var input signInRequest
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, r, err, "Erro ao decodificar corpo do signin")
		return
	}
	if err := requireEmail(input.Email); err != nil {
		writeError(w, r, err, "Signin inválido")
		return
	}
	s.issueDevToken(w, r, input.Email, localPart(input.Email))
}

func (s *Server) issueDevToken(w http.ResponseWriter, r *http.Request, email, name string) {
	identity := models.Identity{
		Subject: DevSubjectForEmail(email),
		Email:   &email,
		Name:    &name,
	}

	token, _, err := s.issuer.Issue(identity)
	if err != nil {
		writeError(w, r, err, "Erro ao emitir token de desenvolvimento")
		return
	}

	utilities.LogWarn("Token de desenvolvimento emitido para %s sem verificação de senha", identity.Subject)
	writeJSON(w, http.StatusOK, authResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        identity,
	})
}

// DevSubjectForEmail deriva o sujeito a partir do email: user_<email com @ e . trocados por _>.
func DevSubjectForEmail(email string) string {
	return "user_" + strings.NewReplacer("@", "_", ".", "_").Replace(email)
}

func requireEmail(email string) error {
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: a valid email is required", models.ErrValidation)
	}
	return nil
}

func localPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
