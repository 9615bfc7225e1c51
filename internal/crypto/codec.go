package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
)

// documentCodec is the private implementation of [DocumentCodec].
type documentCodec struct {
	// key is the 256-bit AES key derived once from the configured secret.
	key []byte
}

// NewDocumentCodec constructs a [DocumentCodec] from the deployment-wide
// encryption secret. The AES-256 key is SHA-256(secret), so any secret
// length is accepted while the cipher always receives exactly 32 bytes.
func NewDocumentCodec(secret string) DocumentCodec {
	key := sha256.Sum256([]byte(secret))
	return &documentCodec{key: key[:]}
}

// Encrypt implements [DocumentCodec]. It marshals data to JSON, then
// encrypts it with AES-256-GCM. The output is a Base64 (standard encoding)
// string of the blob: nonce (12 bytes) ‖ ciphertext.
// Returns an error if marshalling, cipher creation, or nonce generation fails.
func (c *documentCodec) Encrypt(data any) (string, error) {
	plaintext, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal data: %w", err)
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("create gcm: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// Prepend the nonce so Decrypt can split it out.
	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	blob := append(nonce, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [DocumentCodec]. It Base64-decodes the blob, splits out
// the nonce, decrypts the ciphertext via AES-256-GCM, and unmarshals the
// resulting JSON into target. target must be a non-nil pointer, identical to
// the requirement of [encoding/json.Unmarshal]. Returns an error if any step
// (decoding, cipher creation, decryption, or unmarshalling) fails — in
// particular when the blob was written under a different secret or was
// modified in storage (authentication-tag mismatch).
func (c *documentCodec) Decrypt(encryptedB64 string, target any) error {
	blob, err := base64.StdEncoding.DecodeString(encryptedB64)
	if err != nil {
		return fmt.Errorf("decode base64: %w", err)
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return fmt.Errorf("create gcm: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return fmt.Errorf("decrypt data: %w", err)
	}

	if err := json.Unmarshal(plaintext, target); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}

	return nil
}
