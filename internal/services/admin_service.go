package services

import (
	"crypto/subtle"
	"errors"
	"log"

	"github.com/pgf/backend/internal/config"
	"github.com/pgf/backend/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned on a failed admin login
var ErrInvalidCredentials = errors.New("invalid credentials")

type AdminService struct {
	cfg *config.Config
}

func NewAdminService(cfg *config.Config) *AdminService {
	return &AdminService{cfg: cfg}
}

// Login validates the admin password and issues a short-lived bearer token.
// When ADMIN_PASSWORD_HASH is configured the password is checked against the
// bcrypt hash, otherwise against the plain configured password in constant
// time.
func (s *AdminService) Login(password string) (string, error) {
	if !s.validatePassword(password) {
		log.Println("Failed admin login attempt")
		return "", ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken("admin", jwt.AdminToken, s.cfg.JWTSecret, s.cfg.AdminTokenExpiry)
	if err != nil {
		return "", err
	}
	log.Println("Admin authentication successful")
	return token, nil
}

func (s *AdminService) validatePassword(password string) bool {
	if s.cfg.AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.cfg.AdminPassword), []byte(password)) == 1
}
