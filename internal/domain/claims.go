package domain

import "github.com/golang-jwt/jwt/v5"

type Claims struct {
	OwnerID string `json:"owner_id"`
	RoleID  int    `json:"role_id"`
	Email   string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
