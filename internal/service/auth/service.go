package auth

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/shriajj/roster-backend-go/internal/domain/auth"
	"github.com/shriajj/roster-backend-go/internal/pkg/jwt"
)

type credentialAuthenticator struct {
	users      map[string]string
	jwtService jwt.Service
	logger     *slog.Logger
}

// NewAuthenticator builds an Authenticator over the configured
// username-to-bcrypt-hash table.
func NewAuthenticator(users map[string]string, jwtService jwt.Service, logger *slog.Logger) auth.Authenticator {
	return &credentialAuthenticator{
		users:      users,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login implements auth.Authenticator. Unknown usernames and wrong passwords
// return the same error so callers cannot probe the user table.
func (a *credentialAuthenticator) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	hash, ok := a.users[req.Username]
	if !ok {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwtService.GenerateAccessToken(req.Username)
	if err != nil {
		a.logger.Error("failed to issue access token", "username", req.Username, "error", err)
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{
		Username:    req.Username,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
