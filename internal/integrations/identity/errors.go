package identity

import "errors"

var (
	// ErrMissingToken возвращается, когда токен не передан
	ErrMissingToken = errors.New("identity: missing token")

	// ErrInvalidToken возвращается, когда подпись, формат или срок действия токена некорректны
	ErrInvalidToken = errors.New("identity: invalid token")

	// ErrInvalidClaims возвращается, когда в токене нет корректного пользователя или роли
	ErrInvalidClaims = errors.New("identity: invalid token claims")
)
