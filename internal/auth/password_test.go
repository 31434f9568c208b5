package auth

import (
	"errors"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(0)

	hash, err := hasher.Hash("pw1-secret")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "pw1-secret" {
		t.Fatal("hash must not equal the plaintext password")
	}

	ok, err := hasher.Verify("pw1-secret", hash)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatal("expected password verification to succeed")
	}
}

func TestVerifyWrongPassword(t *testing.T) {
	hasher := NewPasswordHasher(0)

	hash, err := hasher.Hash("correct-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := hasher.Verify("wrong-password", hash)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password verification to fail")
	}
}

func TestHashSaltsPerCall(t *testing.T) {
	hasher := NewPasswordHasher(0)

	first, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password must differ")
	}

	for _, hash := range []string{first, second} {
		ok, err := hasher.Verify("same-password", hash)
		if err != nil {
			t.Fatalf("Verify error: %v", err)
		}
		if !ok {
			t.Fatalf("hash %q does not verify against its password", hash)
		}
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	hasher := NewPasswordHasher(0)

	ok, err := hasher.Verify("whatever", "not-a-bcrypt-hash")
	if ok {
		t.Fatal("malformed hash must not verify")
	}
	if !errors.Is(err, ErrHashing) {
		t.Fatalf("expected ErrHashing, got %v", err)
	}
}
