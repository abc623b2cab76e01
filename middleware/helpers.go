package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/beach-tournament/models"
	"github.com/Dosada05/beach-tournament/utils"
)

func GetClaimsFromContext(ctx context.Context) (*utils.Claims, error) {
	claims, ok := ctx.Value(userContextKey).(*utils.Claims)
	if !ok || claims == nil {
		return nil, errors.New("user claims not found in context")
	}
	return claims, nil
}

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	claims, err := GetClaimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	role := models.UserRole(claims.Role)
	switch role {
	case models.RoleOrganizer, models.RoleViewer:
		return role, nil
	default:
		return "", fmt.Errorf("invalid role value in claim: %q", claims.Role)
	}
}
