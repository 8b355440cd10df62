// Package auth verifies bearer tokens issued by the user service.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const TokenTypeAccess = "access"

var (
	ErrMissingHeader = errors.New("authorization header is missing")
	ErrMalformed     = errors.New("authorization header is not a bearer token")
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrMissingSub    = errors.New("token has no subject")
)

// Principal is the identity carried by a verified token.
type Principal struct {
	UserID   string
	Username string
}

// Claims are the fields the user service puts in its tokens.
type Claims struct {
	Username string `json:"username,omitempty"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// TokenVerifier checks HS256 tokens signed with a shared secret.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify parses token and requires it to be an access token with a subject.
func (v *TokenVerifier) Verify(token string) (Principal, error) {
	var c Claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return Principal{}, ErrInvalidToken
	}
	if c.Type != TokenTypeAccess {
		return Principal{}, ErrInvalidToken
	}
	if c.Subject == "" {
		return Principal{}, ErrMissingSub
	}
	return Principal{UserID: c.Subject, Username: c.Username}, nil
}

// VerifyHeader extracts the token from an "Authorization: Bearer <token>"
// header value and verifies it.
func (v *TokenVerifier) VerifyHeader(header string) (Principal, error) {
	if header == "" {
		return Principal{}, ErrMissingHeader
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return Principal{}, ErrMalformed
	}
	return v.Verify(parts[1])
}

// Sign issues a token for p. The service itself never issues tokens; this
// exists for local tooling and tests.
func (v *TokenVerifier) Sign(p Principal, tokenType string, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = p.UserID
	c := Claims{Username: p.Username, Type: tokenType, RegisteredClaims: claims}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(v.secret)
}
