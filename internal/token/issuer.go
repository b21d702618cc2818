package token

import (
	"time"

	"github.com/google/uuid"

	"github.com/mkravets/accounts/internal/domain/accounts/model"
)

// Issuer mints paired access/refresh credentials for an already verified
// identity. It never persists anything; recording the refresh session is the
// caller's job.
type Issuer struct {
	codec      *Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewIssuer(codec *Codec, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{codec: codec, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssuePair produces one access and one refresh credential bound to
// subjectID. Both members always share the subject; each is signed with its
// class secret.
func (i *Issuer) IssuePair(subjectID uuid.UUID) (model.TokenPair, error) {
	at, atExp, _, err := i.codec.Issue(subjectID, ClassAccess, i.accessTTL)
	if err != nil {
		return model.TokenPair{}, err
	}
	rt, rtExp, jti, err := i.codec.Issue(subjectID, ClassRefresh, i.refreshTTL)
	if err != nil {
		return model.TokenPair{}, err
	}

	now := time.Now()
	return model.TokenPair{
		AccessToken:     at,
		RefreshToken:    rt,
		AccessTTL:       atExp.Sub(now),
		RefreshTTL:      rtExp.Sub(now),
		RefreshExpires:  rtExp,
		RefreshTokenJTI: jti,
		UserID:          subjectID,
	}, nil
}
