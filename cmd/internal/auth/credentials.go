package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashAlgo = "pbkdf2_sha256"
	saltLen  = 16
	keyLen   = 32
)

// Hasher derives and checks password hashes. The iteration count is
// embedded in the encoded output, so old hashes stay verifiable after
// a policy bump.
type Hasher struct {
	iterations int
}

func NewHasher() *Hasher {
	return &Hasher{iterations: 29000}
}

// Hash derives a salted PBKDF2-SHA256 key from the password. Each call
// draws a fresh salt, so two hashes of the same password never match
// byte-for-byte. Encoded form: pbkdf2_sha256$<iter>$<salt>$<key>.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := pbkdf2.Key([]byte(password), salt, h.iterations, keyLen, sha256.New)
	return fmt.Sprintf("%s$%d$%s$%s",
		hashAlgo,
		h.iterations,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether encoded was derived from password. Any malformed
// encoding verifies as false; the key comparison is constant-time.
func (h *Hasher) Verify(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 || parts[0] != hashAlgo {
		return false
	}

	iter, err := strconv.Atoi(parts[1])
	if err != nil || iter <= 0 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[2])
	if err != nil {
		return false
	}

	want, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil || len(want) == 0 {
		return false
	}

	got := pbkdf2.Key([]byte(password), salt, iter, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
