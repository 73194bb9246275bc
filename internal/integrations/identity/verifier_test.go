package identity

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SpaceBookingService/internal/domain"
)

// issueToken подписывает токен так, как это делает сервис идентификации
func issueToken(t *testing.T, secret, issuer string, actor domain.Actor, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := Claims{
		Role: string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(actor.UserID, 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerifier_RoundTrip(t *testing.T) {
	v := NewVerifier("secret", "identity")
	actor := domain.Actor{UserID: 42, Role: domain.RoleAdministrator}

	token := issueToken(t, "secret", "identity", actor, time.Hour)

	got, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, actor, got)
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier("secret", "identity")
	now := time.Now()

	sign := func(claims jwt.Claims, method jwt.SigningMethod, key interface{}) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	valid := func() Claims {
		return Claims{
			Role: "requester",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "7",
				Issuer:    "identity",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
	}

	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))

	noExp := valid()
	noExp.ExpiresAt = nil

	wrongIssuer := valid()
	wrongIssuer.Issuer = "someone-else"

	badSubject := valid()
	badSubject.Subject = "alice"

	badRole := valid()
	badRole.Role = "system"

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "empty", token: "  ", wantErr: ErrMissingToken},
		{name: "garbage", token: "not-a-jwt", wantErr: ErrInvalidToken},
		{name: "wrong key", token: sign(valid(), jwt.SigningMethodHS256, []byte("other")), wantErr: ErrInvalidToken},
		{name: "wrong algorithm", token: sign(valid(), jwt.SigningMethodHS512, []byte("secret")), wantErr: ErrInvalidToken},
		{name: "expired", token: sign(expired, jwt.SigningMethodHS256, []byte("secret")), wantErr: ErrInvalidToken},
		{name: "no expiry", token: sign(noExp, jwt.SigningMethodHS256, []byte("secret")), wantErr: ErrInvalidToken},
		{name: "wrong issuer", token: sign(wrongIssuer, jwt.SigningMethodHS256, []byte("secret")), wantErr: ErrInvalidToken},
		{name: "non numeric subject", token: sign(badSubject, jwt.SigningMethodHS256, []byte("secret")), wantErr: ErrInvalidClaims},
		{name: "system role cannot be claimed", token: sign(badRole, jwt.SigningMethodHS256, []byte("secret")), wantErr: ErrInvalidClaims},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerifier_IssuerOptional(t *testing.T) {
	token := issueToken(t, "secret", "identity", domain.Actor{UserID: 1, Role: domain.RoleRequester}, time.Minute)

	actor, err := NewVerifier("secret", "").Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), actor.UserID)
}
