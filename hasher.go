package blog

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/goliatone/go-errors"
)

const saltLength = 16

// HashPassword generates a fresh random salt and the keyed digest for the
// given password. Both values are stored together or not at all.
func HashPassword(password string) (salt, digest string, err error) {
	if password == "" {
		return "", "", ErrNoEmptyPassword
	}

	buf := make([]byte, saltLength)
	if _, err := rand.Read(buf); err != nil {
		return "", "", errors.Wrap(err, errors.CategoryInternal, "failed to generate salt")
	}

	salt = hex.EncodeToString(buf)
	return salt, computeDigest(password, salt), nil
}

// VerifyPassword recomputes the digest with the stored salt and compares it
// against the stored digest in constant time.
func VerifyPassword(password, salt, digest string) bool {
	if password == "" || salt == "" || digest == "" {
		return false
	}
	return hmac.Equal([]byte(computeDigest(password, salt)), []byte(digest))
}

func computeDigest(password, salt string) string {
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(password))
	return hex.EncodeToString(mac.Sum(nil))
}
