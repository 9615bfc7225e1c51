package crypto

import (
	"strings"
	"testing"
)

func TestCredentialVerifier_HashAndVerify(t *testing.T) {
	v := NewCredentialVerifier()

	hash, err := v.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "" {
		t.Fatalf("expected non-empty hash")
	}

	if !v.Verify(hash, "correct horse battery staple") {
		t.Fatalf("expected matching password to verify")
	}
	if v.Verify(hash, "wrong password") {
		t.Fatalf("expected mismatched password to fail verification")
	}
}

func TestCredentialVerifier_HashesDifferPerCall(t *testing.T) {
	v := NewCredentialVerifier()

	h1, err := v.Hash("same password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	h2, err := v.Hash("same password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	// bcrypt salts each hash, so equal passwords still hash differently.
	if h1 == h2 {
		t.Fatalf("expected distinct hashes for repeated hashing of same password")
	}
}

func TestCredentialVerifier_MalformedHash(t *testing.T) {
	v := NewCredentialVerifier()

	if v.Verify("not a bcrypt hash", "anything") {
		t.Fatalf("expected malformed hash to fail verification")
	}
}

func TestGenerateAccessCode_Format(t *testing.T) {
	v := NewCredentialVerifier()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := v.GenerateAccessCode()
		if err != nil {
			t.Fatalf("GenerateAccessCode error: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code length = %d, want 6", len(code))
		}
		if strings.Trim(code, "0123456789") != "" {
			t.Fatalf("code %q contains non-digit characters", code)
		}
		seen[code] = true
	}

	// 20 draws from a million values colliding down to one code would
	// indicate a broken generator.
	if len(seen) < 2 {
		t.Fatalf("expected varied codes, got %d distinct out of 20", len(seen))
	}
}
