package security

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	for _, text := range []string{
		"hello",
		"",
		"a longer message that spans more than one aes block to exercise the counter",
		"unicode: привіт 你好 🙂",
	} {
		key, cipherHex, err := Encrypt(text)
		if err != nil {
			t.Fatalf("Encrypt(%q): %v", text, err)
		}
		if len(key) != 24 {
			t.Fatalf("expected a 24-byte key, got %d", len(key))
		}

		got, err := Decrypt(key, cipherHex)
		if err != nil {
			t.Fatalf("Decrypt(%q): %v", text, err)
		}
		if got != text {
			t.Fatalf("round trip mismatch: want %q, got %q", text, got)
		}
	}
}

func TestEncryptUsesFreshKeyPerMessage(t *testing.T) {
	k1, c1, err := Encrypt("same text")
	if err != nil {
		t.Fatal(err)
	}
	k2, c2, err := Encrypt("same text")
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(k1, k2) {
		t.Fatal("two encryptions reused the same key")
	}
	if c1 == c2 {
		t.Fatal("same plaintext under different keys produced identical ciphertext")
	}
}

func TestDecryptRejectsBadKeySizes(t *testing.T) {
	_, cipherHex, err := Encrypt("hello")
	if err != nil {
		t.Fatal(err)
	}
	for _, size := range []int{0, 1, 15, 17, 23, 33} {
		if _, err := Decrypt(make([]byte, size), cipherHex); err != ErrInvalidKeySize {
			t.Fatalf("key size %d: want ErrInvalidKeySize, got %v", size, err)
		}
	}
}

func TestDecryptAcceptsAllAESKeySizes(t *testing.T) {
	// Decrypt must accept 16 and 32 byte keys even though Encrypt only
	// generates 24-byte ones; stored records may predate the current size.
	for _, size := range []int{16, 24, 32} {
		if _, err := Decrypt(make([]byte, size), "00ff"); err != nil {
			t.Fatalf("key size %d: %v", size, err)
		}
	}
}

func TestDecryptRejectsMalformedHex(t *testing.T) {
	key := make([]byte, 24)
	if _, err := Decrypt(key, "not-hex!"); err == nil {
		t.Fatal("expected an error for malformed hex ciphertext")
	}
}

func TestDecryptWithWrongKeyGarbles(t *testing.T) {
	key, cipherHex, err := Encrypt("sensitive message body")
	if err != nil {
		t.Fatal(err)
	}

	wrong := make([]byte, len(key))
	copy(wrong, key)
	wrong[0] ^= 0xff

	got, err := Decrypt(wrong, cipherHex)
	if err != nil {
		t.Fatalf("CTR decryption never fails on wrong keys, got %v", err)
	}
	if got == "sensitive message body" {
		t.Fatal("wrong key reproduced the plaintext")
	}
}
