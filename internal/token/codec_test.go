package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainErrors "github.com/mkravets/accounts/internal/domain/accounts/errors"
)

func testCodec() *Codec {
	return NewCodec([]byte("access-secret"), []byte("refresh-secret"), "accounts-test")
}

func TestCodec_IssueVerify(t *testing.T) {
	c := testCodec()
	uid := uuid.New()

	for _, class := range []Class{ClassAccess, ClassRefresh} {
		tok, exp, jti, err := c.Issue(uid, class, time.Minute)
		if err != nil || exp.IsZero() || jti == "" {
			t.Fatalf("bad issue for %s: %v", class, err)
		}
		claims, err := c.Verify(tok, class)
		if err != nil {
			t.Fatalf("verify %s: %v", class, err)
		}
		if claims.Subject != uid.String() {
			t.Fatalf("want subject %s got %s", uid, claims.Subject)
		}
		if claims.TokenType != class {
			t.Fatalf("want class %s got %s", class, claims.TokenType)
		}
	}
}

func TestCodec_Expired(t *testing.T) {
	c := testCodec()
	tok, _, _, err := c.Issue(uuid.New(), ClassAccess, -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Verify(tok, ClassAccess); !errors.Is(err, domainErrors.ErrTokenExpired) {
		t.Fatalf("want ErrTokenExpired, got %v", err)
	}
}

func TestCodec_ClassIsolation(t *testing.T) {
	c := testCodec()
	uid := uuid.New()

	at, _, _, _ := c.Issue(uid, ClassAccess, time.Minute)
	rt, _, _, _ := c.Issue(uid, ClassRefresh, time.Minute)

	if _, err := c.Verify(at, ClassRefresh); err == nil {
		t.Fatal("access token must not verify as refresh")
	}
	if _, err := c.Verify(rt, ClassAccess); err == nil {
		t.Fatal("refresh token must not verify as access")
	}
}

func TestCodec_WrongClassWithSharedSecret(t *testing.T) {
	// Even when both classes share a secret, the class claim alone must
	// reject cross-use.
	shared := NewCodec([]byte("s"), []byte("s"), "accounts-test")
	at, _, _, _ := shared.Issue(uuid.New(), ClassAccess, time.Minute)
	if _, err := shared.Verify(at, ClassRefresh); !errors.Is(err, domainErrors.ErrWrongClass) {
		t.Fatalf("want ErrWrongClass, got %v", err)
	}
}

func TestCodec_ForeignSecret(t *testing.T) {
	c := testCodec()
	other := NewCodec([]byte("other-access"), []byte("other-refresh"), "accounts-test")

	tok, _, _, _ := other.Issue(uuid.New(), ClassAccess, time.Minute)
	if _, err := c.Verify(tok, ClassAccess); !errors.Is(err, domainErrors.ErrSignatureInvalid) {
		t.Fatalf("want ErrSignatureInvalid, got %v", err)
	}
}

func TestCodec_Malformed(t *testing.T) {
	c := testCodec()
	if _, err := c.Verify("not-a-token", ClassAccess); !errors.Is(err, domainErrors.ErrTokenMalformed) {
		t.Fatalf("want ErrTokenMalformed, got %v", err)
	}
}

func TestCodec_RejectsForeignAlg(t *testing.T) {
	c := testCodec()
	tok, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := c.Verify(tok, ClassAccess); err == nil {
		t.Fatal("unsigned token must not verify")
	}
}

func TestCodec_SubjectMustBeUUID(t *testing.T) {
	c := testCodec()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		TokenType: ClassAccess,
	}
	tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("access-secret"))
	if _, err := c.Verify(tok, ClassAccess); !errors.Is(err, domainErrors.ErrTokenMalformed) {
		t.Fatalf("want ErrTokenMalformed, got %v", err)
	}
}
