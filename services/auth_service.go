package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dosada05/beach-tournament/models"
	"github.com/Dosada05/beach-tournament/utils"
)

type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (*LoginResult, error)
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Role      string    `json:"role"`
}

type AuthConfig struct {
	Username     string
	PasswordHash string
	Secret       []byte
	TTL          time.Duration
}

type authService struct {
	cfg AuthConfig
	now func() time.Time
}

func NewAuthService(cfg AuthConfig) AuthService {
	return &authService{cfg: cfg, now: time.Now}
}

// Login checks the organizer credentials and issues a signed token.
func (s *authService) Login(ctx context.Context, creds models.Credentials) (*LoginResult, error) {
	if s.cfg.PasswordHash == "" {
		return nil, fmt.Errorf("%w: organizer login is disabled", ErrAuthenticationFailed)
	}
	if creds.Username != s.cfg.Username {
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(creds.Password, s.cfg.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	role := string(models.RoleOrganizer)
	token, expires, err := utils.GenerateJWT(s.cfg.Secret, creds.Username, role, s.cfg.TTL, s.now())
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expires, Role: role}, nil
}
