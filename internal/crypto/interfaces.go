// Package crypto provides the two cryptographic primitives the server
// needs: symmetric encryption of stored documents and password hashing for
// credential checks. Keys are derived from the deployment-wide encryption
// secret; no per-user key material is kept.
package crypto

// DocumentCodec encrypts structured documents into opaque text blobs for
// storage and decrypts them back. Implementations must guarantee that a
// tampered blob fails to decrypt rather than producing garbage.
type DocumentCodec interface {
	// Encrypt serializes data and returns an encrypted, text-safe blob
	// suitable for storing in a database column.
	Encrypt(data any) (string, error)

	// Decrypt reverses Encrypt, unmarshalling the recovered document into
	// target. target must be a non-nil pointer.
	Decrypt(blob string, target any) error
}

// CredentialVerifier hashes passwords for storage and checks candidate
// passwords against stored hashes. It also generates the short numeric
// codes used for email verification.
type CredentialVerifier interface {
	// Hash derives a storable hash from a plaintext password.
	Hash(password string) (string, error)

	// Verify reports whether password matches the stored hash.
	Verify(hash, password string) bool

	// GenerateAccessCode returns a random six-digit verification code.
	GenerateAccessCode() (string, error)
}
