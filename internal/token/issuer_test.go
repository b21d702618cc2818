package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestIssuer_IssuePair(t *testing.T) {
	c := testCodec()
	issuer := NewIssuer(c, 15*time.Minute, 7*24*time.Hour)
	uid := uuid.New()

	pair, err := issuer.IssuePair(uid)
	if err != nil {
		t.Fatal(err)
	}
	if pair.UserID != uid {
		t.Fatalf("pair bound to %s, want %s", pair.UserID, uid)
	}
	if pair.RefreshTokenJTI == "" {
		t.Fatal("refresh jti missing")
	}

	accessUID, err := c.Subject(pair.AccessToken, ClassAccess)
	if err != nil || accessUID != uid {
		t.Fatalf("access member: uid=%s err=%v", accessUID, err)
	}
	refreshUID, err := c.Subject(pair.RefreshToken, ClassRefresh)
	if err != nil || refreshUID != uid {
		t.Fatalf("refresh member: uid=%s err=%v", refreshUID, err)
	}

	if pair.AccessTTL <= 0 || pair.AccessTTL > 15*time.Minute {
		t.Fatalf("access ttl out of range: %v", pair.AccessTTL)
	}
	if pair.RefreshTTL <= pair.AccessTTL {
		t.Fatalf("refresh ttl %v must outlive access ttl %v", pair.RefreshTTL, pair.AccessTTL)
	}
}

func TestIssuer_MembersNotInterchangeable(t *testing.T) {
	c := testCodec()
	issuer := NewIssuer(c, time.Minute, time.Hour)

	pair, err := issuer.IssuePair(uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Verify(pair.AccessToken, ClassRefresh); err == nil {
		t.Fatal("access member verified as refresh")
	}
	if _, err := c.Verify(pair.RefreshToken, ClassAccess); err == nil {
		t.Fatal("refresh member verified as access")
	}
}
