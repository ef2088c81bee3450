// Package security implements the per-message symmetric codec for chat bodies.
//
// Every message is encrypted under a fresh random key which the caller
// persists next to the ciphertext. The counter seed is a fixed constant; that
// is only safe because the key never repeats across messages, and the two
// choices must stay coupled. Stored records depend on this exact construction,
// so neither side can change independently.
package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
)

// PlaceholderText substitutes a message body whose ciphertext could not be
// decrypted, so one corrupt record never blocks the rest of a listing.
const PlaceholderText = "[decryption failed]"

// keySize is the size of freshly generated keys (AES-192).
const keySize = 24

// counterSeed is the initial CTR counter value shared by every message.
const counterSeed = 5

// ErrInvalidKeySize reports a key that is not 16, 24 or 32 bytes long.
var ErrInvalidKeySize = errors.New("security: key must be 16, 24 or 32 bytes")

// Encrypt encrypts plainText under a fresh random key and returns the key with
// the hex-encoded ciphertext. The codec retains nothing; losing the returned
// key makes the ciphertext unrecoverable.
func Encrypt(plainText string) (key []byte, cipherHex string, err error) {
	key = make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, "", fmt.Errorf("security: generate key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, "", fmt.Errorf("security: new cipher: %w", err)
	}

	in := []byte(plainText)
	out := make([]byte, len(in))
	cipher.NewCTR(block, counterBlock()).XORKeyStream(out, in)

	return key, hex.EncodeToString(out), nil
}

// Decrypt reverses Encrypt given the exact key persisted with the ciphertext.
func Decrypt(key []byte, cipherHex string) (string, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return "", ErrInvalidKeySize
	}

	in, err := hex.DecodeString(cipherHex)
	if err != nil {
		return "", fmt.Errorf("security: decode ciphertext: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("security: new cipher: %w", err)
	}

	out := make([]byte, len(in))
	cipher.NewCTR(block, counterBlock()).XORKeyStream(out, in)
	return string(out), nil
}

// counterBlock encodes counterSeed as a big-endian 128-bit counter.
func counterBlock() []byte {
	iv := make([]byte, aes.BlockSize)
	binary.BigEndian.PutUint64(iv[8:], counterSeed)
	return iv
}
