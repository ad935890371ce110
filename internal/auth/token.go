package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"ms-parcels/internal/models"
)

var (
	ErrMissingAuthHeader = errors.New("authorization header is missing")
	ErrMalformedHeader   = errors.New("authorization header format must be 'Bearer {token}'")
)

// ExtractTokenFromRequest extracts the bearer token from an HTTP
// request's Authorization header.
func ExtractTokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}

	// Bearer token format: "Bearer {token}"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrMalformedHeader
	}

	return parts[1], nil
}

// InsecureVerifier parses claims without validating the signature. Only
// for local development behind AUTH_INSECURE_SKIP_VERIFY.
type InsecureVerifier struct{}

func (InsecureVerifier) Verify(_ context.Context, rawToken string) (*models.Principal, error) {
	if rawToken == "" {
		return nil, ErrInvalidToken
	}

	token, _, err := new(jwt.Parser).ParseUnverified(rawToken, jwt.MapClaims{})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)

	return &models.Principal{Email: email, Sub: sub}, nil
}
