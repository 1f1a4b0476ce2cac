package impl

import (
	"strings"
	"testing"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	svc := NewPasswordServiceArgon2id()

	encoded, err := svc.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$") {
		t.Fatalf("unexpected encoding: %q", encoded)
	}
	if !svc.Verify("correct horse battery staple", encoded) {
		t.Fatalf("expected matching password to verify")
	}
	if svc.Verify("wrong password", encoded) {
		t.Fatalf("expected mismatch to fail")
	}
}

func TestPasswordHashUniqueSalts(t *testing.T) {
	svc := NewPasswordServiceArgon2id()

	a, err := svc.Hash("same password")
	if err != nil {
		t.Fatalf("hash a: %v", err)
	}
	b, err := svc.Hash("same password")
	if err != nil {
		t.Fatalf("hash b: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of one password must differ by salt")
	}
}

func TestPasswordEdgeCases(t *testing.T) {
	svc := NewPasswordServiceArgon2id()

	if _, err := svc.Hash(""); err == nil {
		t.Fatalf("expected empty password rejection")
	}
	if svc.Verify("anything", "not-an-encoded-hash") {
		t.Fatalf("expected malformed hash to fail verification")
	}
	if svc.Verify("anything", "$argon2id$v=19$m=65536,t=3,p=1$notbase64!!$alsonot!!") {
		t.Fatalf("expected undecodable hash to fail verification")
	}
}
