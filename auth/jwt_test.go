package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validClaims() jwt.RegisteredClaims {
	return jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
}

func TestVerify(t *testing.T) {
	v := NewTokenVerifier("secret")
	token, err := v.Sign(Principal{UserID: "user-1", Username: "ana"}, TokenTypeAccess, validClaims())
	require.NoError(t, err)

	p, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, Principal{UserID: "user-1", Username: "ana"}, p)
}

func TestVerifyRejects(t *testing.T) {
	v := NewTokenVerifier("secret")

	expired, _ := v.Sign(Principal{UserID: "u"}, TokenTypeAccess,
		jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))})
	refresh, _ := v.Sign(Principal{UserID: "u"}, "refresh", validClaims())
	noSub, _ := v.Sign(Principal{}, TokenTypeAccess, validClaims())
	otherKey, _ := NewTokenVerifier("other").Sign(Principal{UserID: "u"}, TokenTypeAccess, validClaims())
	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{Type: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u"}}).SignedString([]byte("secret"))

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"expired", expired, ErrInvalidToken},
		{"refresh token", refresh, ErrInvalidToken},
		{"missing subject", noSub, ErrMissingSub},
		{"wrong key", otherKey, ErrInvalidToken},
		{"wrong algorithm", hs512, ErrInvalidToken},
		{"garbage", "a.b.c", ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Verify(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestVerifyHeader(t *testing.T) {
	v := NewTokenVerifier("secret")
	token, _ := v.Sign(Principal{UserID: "user-1"}, TokenTypeAccess, validClaims())

	p, err := v.VerifyHeader("bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.UserID)

	_, err = v.VerifyHeader("")
	assert.ErrorIs(t, err, ErrMissingHeader)
	_, err = v.VerifyHeader(token)
	assert.ErrorIs(t, err, ErrMalformed)
	_, err = v.VerifyHeader("Token " + token)
	assert.ErrorIs(t, err, ErrMalformed)
}
