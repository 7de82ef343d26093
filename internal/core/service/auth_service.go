package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/jtrack/tracking-system/internal/core/domain"
	"github.com/jtrack/tracking-system/internal/core/ports"
)

type authService struct {
	clientID   string
	secretHash string
	jwtSecret  string
	tokenTTL   time.Duration
}

// NewAuthService verifies client credentials against a single configured
// client and issues HS256 tokens. secretHash is a bcrypt hash of the
// client secret.
func NewAuthService(clientID, secretHash, jwtSecret string, tokenTTL time.Duration) ports.AuthService {
	return &authService{
		clientID:   clientID,
		secretHash: secretHash,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
	}
}

func (s *authService) IssueToken(_ context.Context, clientID, clientSecret string) (string, int64, error) {
	if clientID != s.clientID {
		return "", 0, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.secretHash), []byte(clientSecret)); err != nil {
		return "", 0, domain.ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"client_id": clientID,
		"iat":       now.Unix(),
		"exp":       now.Add(s.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", 0, err
	}
	return token, int64(s.tokenTTL.Seconds()), nil
}
