package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainErrors "github.com/mkravets/accounts/internal/domain/accounts/errors"
)

// Class is the credential kind. Access and refresh tokens are signed with
// distinct secrets and carry the class as an explicit claim, so a token of
// one class can never verify as the other even if a secret leaks.
type Class string

const (
	ClassAccess  Class = "access"
	ClassRefresh Class = "refresh"
)

// Claims is the signed payload: standard registered claims plus the
// credential class.
type Claims struct {
	jwt.RegisteredClaims
	TokenType Class `json:"token_type"`
}

// Codec issues and verifies signed, time-bound credentials. It is a pure
// function of (token, current time, secret) and safe for concurrent use.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
}

func NewCodec(accessSecret, refreshSecret []byte, issuer string) *Codec {
	return &Codec{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		issuer:        issuer,
	}
}

func (c *Codec) secretFor(class Class) []byte {
	if class == ClassRefresh {
		return c.refreshSecret
	}
	return c.accessSecret
}

// Issue mints a signed token binding subjectID and class, expiring after ttl.
func (c *Codec) Issue(subjectID uuid.UUID, class Class, ttl time.Duration) (token string, exp time.Time, jti string, err error) {
	jti = uuid.NewString()
	now := time.Now()
	expires := now.Add(ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			Issuer:    c.issuer,
			ID:        jti,
		},
		TokenType: class,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secretFor(class))
	if err != nil {
		return "", time.Time{}, "", domainErrors.WrapInternal(err, "sign token")
	}
	return signed, expires, jti, nil
}

// Verify checks signature, expiry and class, in that order of severity, and
// returns the subject id on success.
func (c *Codec) Verify(raw string, want Class) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, domainErrors.ErrSignatureInvalid
		}
		return c.secretFor(want), nil
	})
	if err != nil {
		return Claims{}, classifyParseError(err)
	}
	if !parsed.Valid {
		return Claims{}, domainErrors.ErrSignatureInvalid
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return Claims{}, domainErrors.ErrTokenMalformed
	}
	if claims.TokenType != want {
		return Claims{}, domainErrors.ErrWrongClass
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return Claims{}, domainErrors.ErrTokenMalformed
	}
	return *claims, nil
}

// Subject is Verify reduced to the resolved subject id.
func (c *Codec) Subject(raw string, want Class) (uuid.UUID, error) {
	claims, err := c.Verify(raw, want)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.MustParse(claims.Subject), nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domainErrors.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, domainErrors.ErrSignatureInvalid):
		return domainErrors.ErrSignatureInvalid
	default:
		return domainErrors.ErrTokenMalformed
	}
}
