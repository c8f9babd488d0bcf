package crypto

import (
	"io"

	"github.com/backkem/sha1kit/pkg/sha1"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
)

// HKDFSHA1 derives key material using HKDF-SHA1 (RFC 5869).
//
// Parameters:
//   - inputKey: Input keying material (IKM)
//   - salt: Optional salt value (can be nil or empty)
//   - info: Optional context/application-specific info (can be nil or empty)
//   - length: Number of bytes to derive (at most 255*20)
//
// Returns the derived key material of the specified length.
func HKDFSHA1(inputKey, salt, info []byte, length int) ([]byte, error) {
	reader := hkdf.New(sha1.NewHash, inputKey, salt, info)
	result := make([]byte, length)
	if _, err := io.ReadFull(reader, result); err != nil {
		return nil, err
	}
	return result, nil
}

// HKDFExtractSHA1 performs only the HKDF-Extract operation.
// A nil salt defaults to 20 zero bytes.
//
// Returns a 20-byte pseudorandom key.
func HKDFExtractSHA1(inputKey, salt []byte) []byte {
	return hkdf.Extract(sha1.NewHash, inputKey, salt)
}

// HKDFExpandSHA1 performs only the HKDF-Expand operation on a pseudorandom
// key produced by HKDFExtractSHA1 or another source.
func HKDFExpandSHA1(prk, info []byte, length int) ([]byte, error) {
	reader := hkdf.Expand(sha1.NewHash, prk, info)
	result := make([]byte, length)
	if _, err := io.ReadFull(reader, result); err != nil {
		return nil, err
	}
	return result, nil
}

// PBKDF2SHA1 derives a key from a password using PBKDF2-HMAC-SHA1
// (RFC 8018 Section 5.2).
func PBKDF2SHA1(password, salt []byte, iterations, keyLen int) []byte {
	return pbkdf2.Key(password, salt, iterations, keyLen, sha1.NewHash)
}
