package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shriajj/roster-backend-go/internal/domain/auth"
	"github.com/shriajj/roster-backend-go/internal/handler/http/response"
	"github.com/shriajj/roster-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	SSEToken(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService    jwt.Service
	authenticator auth.Authenticator
}

func NewAuthHandler(jwtService jwt.Service, authenticator auth.Authenticator) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:    jwtService,
		authenticator: authenticator,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resp, err := a.authenticator.Login(r.Context(), loginReq)
	if err != nil {
		slog.Warn("Login failed", "username", loginReq.Username)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Login successful", resp)
}

// SSEToken implements AuthHandler: it mints the short-lived token the event
// stream accepts as a query parameter, because EventSource cannot set an
// Authorization header.
func (a *AuthHandlerImpl) SSEToken(w http.ResponseWriter, r *http.Request) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	username, _ := claims["username"].(string)

	token, expiresIn, err := a.jwtService.GenerateSSEToken(username)
	if err != nil {
		slog.Error("SSEToken generate error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]any{
		"token":      token,
		"expires_in": expiresIn,
	})
}
