package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret    = errors.New("session: signing secret is empty")
	ErrInvalidSignature = errors.New("session: invalid token signature")
	ErrExpired          = errors.New("session: token expired")
)

// Codec signs claims into HS256 tokens with an absolute expiry and verifies
// them without any server-side lookup. It is safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type CodecOption func(*Codec)

// WithClock overrides the wall clock used for expiry.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) {
		c.now = now
	}
}

type tokenClaims struct {
	Identity Claim `json:"idn"`
	jwt.RegisteredClaims
}

func NewCodec(secret []byte, ttl time.Duration, opts ...CodecOption) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session: invalid token ttl %s", ttl)
	}

	c := &Codec{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TTL reports the validity window applied to issued tokens.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

func (c *Codec) Issue(claim Claim) (string, error) {
	if claim == nil {
		claim = Claim{}
	}
	now := c.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Identity: claim,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claim.Email(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("session: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature first and the expiry second. Signature
// comparison is the constant-time HMAC check of golang-jwt.
func (c *Codec) Verify(raw string) (Claim, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)

	var claims tokenClaims
	token, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if !token.Valid {
		return nil, ErrInvalidSignature
	}

	if claims.Identity == nil {
		return Claim{}, nil
	}
	return claims.Identity, nil
}
