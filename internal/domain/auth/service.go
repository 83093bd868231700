package auth

import "context"

// Authenticator checks manager credentials and issues session tokens. The
// credential table is injected configuration; callers never compare
// passwords themselves.
type Authenticator interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
