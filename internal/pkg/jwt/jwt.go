package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	// GenerateAccessToken issues a manager session token for username.
	GenerateAccessToken(username string) (token string, expiresAt int64, err error)

	// GenerateSSEToken issues a short-lived token carried as a query
	// parameter by the event-stream endpoint, since EventSource cannot set
	// headers.
	GenerateSSEToken(username string) (token string, expiresIn int, err error)

	// ValidateSSEToken checks an SSE token and returns its username.
	ValidateSSEToken(tokenString string) (username string, err error)

	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(username string) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"username": username,
		"type":     "access",
		"exp":      expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, err
	}
	return tokenString, expiresAt, nil
}

func (j *JWTService) GenerateSSEToken(username string) (string, int, error) {
	const expiresIn = 60 // seconds

	claims := map[string]interface{}{
		"username": username,
		"type":     "sse",
		"exp":      time.Now().Add(expiresIn * time.Second).Unix(),
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, err
	}
	return tokenString, expiresIn, nil
}

func (j *JWTService) ValidateSSEToken(tokenString string) (string, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", fmt.Errorf("failed to decode sse token: %w", err)
	}
	if err := jwt.Validate(token); err != nil {
		return "", fmt.Errorf("invalid sse token: %w", err)
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", err
	}
	if tokenType, _ := claims["type"].(string); tokenType != "sse" {
		return "", fmt.Errorf("wrong token type %q", tokenType)
	}
	username, _ := claims["username"].(string)
	if username == "" {
		return "", fmt.Errorf("sse token missing username")
	}
	return username, nil
}
