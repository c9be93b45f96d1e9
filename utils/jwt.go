package utils

import (
	"errors"
	"fmt"
	"time"

	"shelfspace/config"
	"shelfspace/models"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "shelfspace-dev"
	}
	return []byte(secret)
}

// GenerateActorToken creates a signed JWT for the given profile and role.
// The token expires after the specified duration.
func GenerateActorToken(profileID, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  profileID,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ResolveActor parses and validates a token string and resolves it into a
// typed actor. This is the single place dynamic role dispatch happens;
// everything downstream works with the closed Actor variant.
func ResolveActor(tokenString string) (models.Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil || !token.Valid {
		return models.Actor{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Actor{}, errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return models.Actor{}, errors.New("token missing subject")
	}
	switch role {
	case models.RoleStoreOwner, models.RoleBrandOwner, models.RoleAdmin:
	default:
		return models.Actor{}, fmt.Errorf("unknown role %q", role)
	}
	return models.Actor{ProfileID: sub, Role: role}, nil
}
