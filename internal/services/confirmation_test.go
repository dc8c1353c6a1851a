package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"
	"time"

	"review-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{
		ID:       uuid.New(),
		Username: "capote",
		Email:    "capote@example.com",
		Role:     models.RoleUser,
	}
}

func TestCodeSigner_GenerateVerify(t *testing.T) {
	signer := NewCodeSigner("secret", time.Hour)
	user := testUser()

	code := signer.Generate(user)
	require.NotEmpty(t, code)
	assert.True(t, signer.Verify(user, code))
}

func TestCodeSigner_RejectsTamperedCode(t *testing.T) {
	signer := NewCodeSigner("secret", time.Hour)
	user := testUser()

	code := signer.Generate(user)

	tampered := code[:len(code)-1]
	if strings.HasSuffix(code, "0") {
		tampered += "1"
	} else {
		tampered += "0"
	}
	assert.False(t, signer.Verify(user, tampered))
}

func TestCodeSigner_RejectsMalformedCode(t *testing.T) {
	signer := NewCodeSigner("secret", time.Hour)
	user := testUser()

	for _, code := range []string{"", "garbage", "12345", "notanumber-abcdef"} {
		assert.False(t, signer.Verify(user, code), "code %q should not verify", code)
	}
}

func TestCodeSigner_RejectsExpiredCode(t *testing.T) {
	signer := NewCodeSigner("secret", time.Hour)
	user := testUser()

	code := signer.Generate(user)

	signer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.False(t, signer.Verify(user, code))
}

func TestCodeSigner_RejectsWrongSecret(t *testing.T) {
	user := testUser()
	code := NewCodeSigner("secret", time.Hour).Generate(user)

	other := NewCodeSigner("different", time.Hour)
	assert.False(t, other.Verify(user, code))
}

func TestCodeSigner_KeyIsNotTheRawSecret(t *testing.T) {
	signer := NewCodeSigner("secret", time.Hour)
	user := testUser()
	expiry := time.Now().Add(time.Hour).Unix()

	// A mac computed directly under the shared secret must not pass,
	// otherwise the code domain and the token domain share a key.
	h := hmac.New(sha256.New, []byte("secret"))
	fmt.Fprintf(h, "%s|%s|%s|%s|%d|%d",
		user.ID, user.Username, user.Email, user.Role, user.CodeVersion, expiry)
	forged := fmt.Sprintf("%d-%s", expiry, hex.EncodeToString(h.Sum(nil)))

	assert.False(t, signer.Verify(user, forged))
}

func TestCodeSigner_InvalidatedByUserChanges(t *testing.T) {
	signer := NewCodeSigner("secret", time.Hour)

	t.Run("code version bump", func(t *testing.T) {
		user := testUser()
		code := signer.Generate(user)

		user.CodeVersion++
		assert.False(t, signer.Verify(user, code))
	})

	t.Run("role change", func(t *testing.T) {
		user := testUser()
		code := signer.Generate(user)

		user.Role = models.RoleAdmin
		assert.False(t, signer.Verify(user, code))
	})

	t.Run("email change", func(t *testing.T) {
		user := testUser()
		code := signer.Generate(user)

		user.Email = "other@example.com"
		assert.False(t, signer.Verify(user, code))
	})
}
