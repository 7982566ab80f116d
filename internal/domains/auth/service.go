package auth

import (
	"context"
	"fmt"
	"time"

	"realestate-backend/pkg/jwt"
	"realestate-backend/pkg/logger"
)

// TokenResponse is returned by POST /auth/token
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	Scope       string    `json:"scope"`
}

type Verifier interface {
	Verify(username, password string) error
}

// TokenService issues bearer tokens for configured users
type TokenService struct {
	credentials Verifier
	jwt         *jwt.Manager
}

func NewTokenService(credentials Verifier, manager *jwt.Manager) *TokenService {
	return &TokenService{credentials: credentials, jwt: manager}
}

// IssueToken verifies the credentials and signs a token granting read and
// write access to properties.
func (s *TokenService) IssueToken(ctx context.Context, username, password string) (*TokenResponse, error) {
	log := logger.FromContext(ctx)

	if err := s.credentials.Verify(username, password); err != nil {
		log.Warn().Str("username", username).Msg("Token request rejected")
		return nil, err
	}

	scopes := []string{jwt.ScopeRead, jwt.ScopeWrite}
	token, expiresAt, err := s.jwt.GenerateAccessToken(username, scopes)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	log.Info().Str("username", username).Time("expires_at", expiresAt).Msg("Access token issued")
	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Scope:       jwt.ScopeRead + " " + jwt.ScopeWrite,
	}, nil
}
