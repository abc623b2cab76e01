package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/beach-tournament/models"
	"github.com/Dosada05/beach-tournament/utils"
	"golang.org/x/crypto/bcrypt"
)

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("sand-and-sun"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	secret := []byte("test-secret")
	svc := NewAuthService(AuthConfig{Username: "organizer", PasswordHash: string(hash), Secret: secret, TTL: time.Hour})

	tests := []struct {
		name  string
		creds models.Credentials
		want  error
	}{
		{"wrong user", models.Credentials{Username: "someone", Password: "sand-and-sun"}, ErrInvalidCredentials},
		{"wrong password", models.Credentials{Username: "organizer", Password: "nope"}, ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(context.Background(), tt.creds); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	result, err := svc.Login(context.Background(), models.Credentials{Username: "organizer", Password: "sand-and-sun"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := utils.ParseJWT(secret, result.Token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Role != string(models.RoleOrganizer) || claims.Subject != "organizer" {
		t.Errorf("unexpected claims %+v", claims)
	}
	if !result.ExpiresAt.After(time.Now()) {
		t.Errorf("token already expired at %s", result.ExpiresAt)
	}
}

func TestLoginDisabledWithoutHash(t *testing.T) {
	svc := NewAuthService(AuthConfig{Username: "organizer", Secret: []byte("s"), TTL: time.Hour})
	_, err := svc.Login(context.Background(), models.Credentials{Username: "organizer", Password: "x"})
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
}
