// Package token mints and verifies the signed identity tokens returned by the
// authentication service. Tokens are compact JWTs signed with HMAC-SHA256 and
// carry the subject (username), a role claim, issuer, audience and expiry.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Parse for tokens that fail verification:
// bad signature, wrong issuer or audience, expired, or malformed.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the claim set embedded in every issued token: the registered
// claims plus the user's role.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Signer holds the immutable signing configuration. It is created once at
// startup and is safe for concurrent use.
type Signer struct {
	key      []byte
	issuer   string
	audience string
	validity time.Duration
}

// NewSigner validates the signing configuration and returns a Signer.
// Missing key material or issuance parameters is a configuration error and
// must abort startup; it is never surfaced per request.
func NewSigner(key []byte, issuer, audience string, validity time.Duration) (*Signer, error) {
	if len(key) == 0 {
		return nil, errors.New("token: signing key is required")
	}
	if issuer == "" {
		return nil, errors.New("token: issuer is required")
	}
	if audience == "" {
		return nil, errors.New("token: audience is required")
	}
	if validity <= 0 {
		return nil, fmt.Errorf("token: validity must be positive, got %s", validity)
	}

	return &Signer{key: key, issuer: issuer, audience: audience, validity: validity}, nil
}

// Sign issues a token for the given username and role. The token expires
// exactly one validity duration after issuance.
func (s *Signer) Sign(username, role string) (string, error) {
	now := time.Now()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
		Role: role,
	})

	signed, err := t.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}

	return signed, nil
}

// Parse verifies a token string and returns its claims. The signature,
// signing method, issuer, audience and expiry are all checked.
func (s *Signer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !t.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
