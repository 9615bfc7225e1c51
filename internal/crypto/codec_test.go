package crypto

import (
	"encoding/base64"
	"testing"
)

type sampleDocument struct {
	Name    string   `json:"name"`
	Amounts []string `json:"amounts"`
}

func TestDocumentCodec_RoundTrip(t *testing.T) {
	codec := NewDocumentCodec("test-secret")

	original := sampleDocument{
		Name:    "September groceries",
		Amounts: []string{"120.50", "43.10"},
	}

	blob, err := codec.Encrypt(original)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if blob == "" {
		t.Fatalf("expected non-empty blob")
	}

	var got sampleDocument
	if err := codec.Decrypt(blob, &got); err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if got.Name != original.Name {
		t.Fatalf("Name = %q, want %q", got.Name, original.Name)
	}
	if len(got.Amounts) != 2 || got.Amounts[0] != "120.50" || got.Amounts[1] != "43.10" {
		t.Fatalf("Amounts = %v, want %v", got.Amounts, original.Amounts)
	}
}

func TestDocumentCodec_BlobsDifferPerCall(t *testing.T) {
	codec := NewDocumentCodec("test-secret")

	doc := sampleDocument{Name: "same document"}

	b1, err := codec.Encrypt(doc)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	b2, err := codec.Encrypt(doc)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	// A fresh nonce per call means identical plaintexts never collide.
	if b1 == b2 {
		t.Fatalf("expected distinct blobs for repeated encryption of same document")
	}
}

func TestDocumentCodec_WrongSecretFails(t *testing.T) {
	writer := NewDocumentCodec("secret-one")
	reader := NewDocumentCodec("secret-two")

	blob, err := writer.Encrypt(sampleDocument{Name: "private"})
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	var got sampleDocument
	if err := reader.Decrypt(blob, &got); err == nil {
		t.Fatalf("expected decryption with wrong secret to fail")
	}
}

func TestDocumentCodec_TamperedBlobFails(t *testing.T) {
	codec := NewDocumentCodec("test-secret")

	blob, err := codec.Encrypt(sampleDocument{Name: "private"})
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		t.Fatalf("decode blob: %v", err)
	}
	raw[len(raw)-1] ^= 0xFF
	tampered := base64.StdEncoding.EncodeToString(raw)

	var got sampleDocument
	if err := codec.Decrypt(tampered, &got); err == nil {
		t.Fatalf("expected tampered blob to fail authentication")
	}
}

func TestDocumentCodec_MalformedInputs(t *testing.T) {
	codec := NewDocumentCodec("test-secret")

	var got sampleDocument
	if err := codec.Decrypt("%%% not base64 %%%", &got); err == nil {
		t.Fatalf("expected error for non-base64 input")
	}

	short := base64.StdEncoding.EncodeToString([]byte{0x01, 0x02})
	if err := codec.Decrypt(short, &got); err == nil {
		t.Fatalf("expected error for blob shorter than nonce")
	}
}
