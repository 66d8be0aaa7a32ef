package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/jamalben22/stadiumport/utils"
)

// AuthService authenticates the site administrator (flag uploads and other
// maintenance endpoints). A single credential pair comes from configuration;
// there is no user database behind the fan-facing game.
type AuthService interface {
	Login(email, password string) (string, error)
}

type authService struct {
	adminEmail        string
	adminPasswordHash string
	jwtSecret         []byte
	tokenTTL          time.Duration
}

func NewAuthService(adminEmail, adminPasswordHash string, jwtSecret []byte) AuthService {
	return &authService{
		adminEmail:        adminEmail,
		adminPasswordHash: adminPasswordHash,
		jwtSecret:         jwtSecret,
		tokenTTL:          24 * time.Hour,
	}
}

func (s *authService) Login(email, password string) (string, error) {
	if email != s.adminEmail || !utils.CheckPasswordHash(password, s.adminPasswordHash) {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  email,
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
