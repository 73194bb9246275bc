package identity

import "github.com/golang-jwt/jwt/v5"

// Claims claims токена, выданного сервисом идентификации.
// Subject содержит ID пользователя в десятичной записи.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
