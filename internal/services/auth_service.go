package services

import (
	"strings"
	"time"
)

// TokenSigner mints a session token for the dashboard after the shared
// secret checks out.
type TokenSigner func(subject string, ttl time.Duration) (string, error)

// AuthService gates reporting behind a single shared secret. The secret
// is compared as a plain string: no hashing, no rate limiting, no
// lockout. That weakness is part of the product as deployed.
type AuthService struct {
	secret    string
	signToken TokenSigner
	tokenTTL  time.Duration
}

type AuthResult struct {
	Token string
}

func NewAuthService(secret string, signer TokenSigner) *AuthService {
	return &AuthService{
		secret:    secret,
		signToken: signer,
		tokenTTL:  12 * time.Hour,
	}
}

// Login exchanges the shared secret for a dashboard session token.
func (s *AuthService) Login(secret string) (*AuthResult, error) {
	if strings.TrimSpace(s.secret) == "" {
		return nil, NewUnauthorizedError("dashboard access is not configured")
	}
	if secret != s.secret {
		return nil, NewUnauthorizedError("wrong password")
	}
	if s.signToken == nil {
		return nil, NewInvalidError("token signer not configured")
	}
	token, err := s.signToken("admin", s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token}, nil
}

func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}
