package http

import (
	"net/http"

	"go.uber.org/zap"
)

type TokenIssuer interface {
	Issue(claims map[string]interface{}) (string, error)
}

type AuthHandler struct {
	issuer TokenIssuer
	lg     *zap.Logger
}

func NewAuthHandler(issuer TokenIssuer, lg *zap.Logger) *AuthHandler {
	return &AuthHandler{issuer: issuer, lg: lg}
}

type LoginResponseDTO struct {
	AccessToken string `json:"accessToken"`
}

// Login signs the posted object as token claims. It does not check
// credentials.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var claims map[string]interface{}
	if err := decodeJSON(r, &claims); err != nil || claims == nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "body must be a JSON object")
		return
	}

	token, err := h.issuer.Issue(claims)
	if err != nil {
		logFailure(r, h.lg, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to issue token")
		return
	}
	respondJSON(w, http.StatusOK, LoginResponseDTO{AccessToken: token})
}
