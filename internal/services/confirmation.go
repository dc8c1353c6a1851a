package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"review-backend/internal/models"
)

// CodeSigner issues and checks confirmation codes. A code is
// "<expiryUnix>-<hex hmac>" where the mac covers the user's identity,
// role and code version, so it stops verifying the moment any of those
// change. Consuming a code bumps the user's code version, which
// invalidates every code issued before the bump.
type CodeSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodeSigner(secret string, ttl time.Duration) *CodeSigner {
	// The code mac and the access-token signature must not share a key,
	// so derive a separate one for this domain.
	kdf := hmac.New(sha256.New, []byte(secret))
	kdf.Write([]byte("confirmation-code"))

	return &CodeSigner{
		secret: kdf.Sum(nil),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *CodeSigner) Generate(user *models.User) string {
	expiry := s.now().Add(s.ttl).Unix()
	return fmt.Sprintf("%d-%s", expiry, s.mac(user, expiry))
}

func (s *CodeSigner) Verify(user *models.User, code string) bool {
	parts := strings.SplitN(code, "-", 2)
	if len(parts) != 2 {
		return false
	}

	expiry, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || s.now().Unix() > expiry {
		return false
	}

	expected := s.mac(user, expiry)
	return hmac.Equal([]byte(expected), []byte(parts[1]))
}

func (s *CodeSigner) mac(user *models.User, expiry int64) string {
	h := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(h, "%s|%s|%s|%s|%d|%d",
		user.ID, user.Username, user.Email, user.Role, user.CodeVersion, expiry)
	return hex.EncodeToString(h.Sum(nil))
}
