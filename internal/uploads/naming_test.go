package uploads

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestGenerateNameUnique(t *testing.T) {
	first, err := GenerateName(".png")
	if err != nil {
		t.Fatalf("GenerateName error: %v", err)
	}
	second, err := GenerateName(".png")
	if err != nil {
		t.Fatalf("GenerateName error: %v", err)
	}

	if first == second {
		t.Fatalf("two generated names collided: %q", first)
	}
	for _, name := range []string{first, second} {
		if !strings.HasSuffix(name, ".png") {
			t.Fatalf("name %q does not keep the extension", name)
		}
	}
}

func TestGenerateNameEncoding(t *testing.T) {
	name, err := GenerateName("")
	if err != nil {
		t.Fatalf("GenerateName error: %v", err)
	}
	raw, err := hex.DecodeString(name)
	if err != nil {
		t.Fatalf("name %q is not hex: %v", name, err)
	}
	if len(raw) != nameEntropyBytes {
		t.Fatalf("expected %d bytes of entropy, got %d", nameEntropyBytes, len(raw))
	}
}

func TestGenerateNameNormalizesExtension(t *testing.T) {
	name, err := GenerateName("jpg")
	if err != nil {
		t.Fatalf("GenerateName error: %v", err)
	}
	if !strings.HasSuffix(name, ".jpg") {
		t.Fatalf("expected bare extension to gain a dot, got %q", name)
	}
}
