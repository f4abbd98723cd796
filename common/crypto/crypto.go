package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"hash"
)

// HashSHA256 selects SHA256 for GetHMAC. Both exchanges sign with it.
const HashSHA256 = iota

var errUnsupportedHashType = errors.New("unsupported hash type")

// HexEncodeToString takes in a hexadecimal byte array and returns a lowercase
// hex string
func HexEncodeToString(input []byte) string {
	return hex.EncodeToString(input)
}

// GetSHA256 returns a SHA256 hash of a byte array
func GetSHA256(input []byte) []byte {
	sha := sha256.New()
	sha.Write(input)
	return sha.Sum(nil)
}

// GetHMAC returns a keyed-hash message authentication code using the desired
// hashtype
func GetHMAC(hashType int, input, key []byte) ([]byte, error) {
	var hasher func() hash.Hash

	switch hashType {
	case HashSHA256:
		hasher = sha256.New
	default:
		return nil, errUnsupportedHashType
	}

	h := hmac.New(hasher, key)
	h.Write(input)
	return h.Sum(nil), nil
}
