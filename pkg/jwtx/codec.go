package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrAlgMismatch = errors.New("jwtx: algorithm mismatch")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")

	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrAudience     = errors.New("jwtx: audience mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// Codec is a pure claims <-> token-string transform bound to one HMAC-SHA256
// secret, one issuer and one audience, configured once at process start. It
// knows nothing about users, salts or caching.
type Codec struct {
	secret   []byte
	issuer   string
	audience []string
}

// NewCodec creates a Codec for the given shared secret.
func NewCodec(secret []byte, issuer string, audience []string) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty signing secret")
	}
	return &Codec{secret: secret, issuer: issuer, audience: audience}, nil
}

// Encode signs the claims and returns the compact token string. It fails only
// on programmer error (the HMAC path has no runtime failure modes for
// well-formed claims).
func (c *Codec) Encode(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Issue builds claims bound to the codec's issuer and audience and encodes
// them in one step.
func (c *Codec) Issue(subject, username, role, tokenType, salt string, ttl time.Duration) (string, error) {
	claims := NewClaims(subject, username, role, tokenType, salt, ttl, c.issuer, c.audience, time.Now().UTC())
	return c.Encode(claims)
}

// Decode parses and verifies a token string and returns its Claims.
// Signature mismatch, structural corruption, expiry and issuer/audience
// mismatch all surface as jwtx sentinel errors.
func (c *Codec) Decode(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrAlgMismatch
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		default:
			return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidClaim
	}

	// Now check all the claim requirements
	if err := claims.ValidateIssuer(c.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateAudience(c.audience); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
