package sessions

import (
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

const keyInfo = "diplomats-site session v1"

// DeriveKey stretches the configured secret into a 256-bit HMAC key.
func DeriveKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, fmt.Errorf("derive session key: empty secret")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	return key, nil
}

type sessionClaims struct {
	jwtlib.RegisteredClaims
	Session
}

// Codec turns a Session into a signed, client-held token and back.
type Codec struct {
	key    []byte
	issuer string
	maxAge time.Duration
}

func NewCodec(key []byte, issuer string, maxAge time.Duration) (*Codec, error) {
	if len(key) < 32 {
		return nil, fmt.Errorf("session key must be at least 32 bytes")
	}
	if maxAge <= 0 {
		return nil, fmt.Errorf("session max age must be positive")
	}
	return &Codec{key: key, issuer: issuer, maxAge: maxAge}, nil
}

// MaxAge is the lifetime given to every encoded session.
func (c *Codec) MaxAge() time.Duration {
	return c.maxAge
}

// Encode signs the session with HS256. The token expires MaxAge after encoding.
func (c *Codec) Encode(s *Session) (string, error) {
	now := NowTimeFunc()
	claims := sessionClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    c.issuer,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(c.maxAge)),
		},
		Session: *s,
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	return token, nil
}

// Decode verifies the token and returns the session it carries.
// Any failure (bad signature, expiry, wrong issuer) is returned as an error;
// callers treat that as an anonymous visitor.
func (c *Codec) Decode(token string) (*Session, error) {
	claims := &sessionClaims{}
	_, err := jwtlib.ParseWithClaims(token, claims,
		func(*jwtlib.Token) (interface{}, error) { return c.key, nil },
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(c.issuer),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(NowTimeFunc),
	)
	if err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	s := claims.Session
	// A token carrying only half of an authorization is never trusted.
	if (s.TokenDigest == "") != (s.Principal == nil) {
		s.TokenDigest = ""
		s.Principal = nil
	}
	return &s, nil
}
