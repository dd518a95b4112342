package token

import (
	"strings"
	"testing"
	"time"

	"github.com/akti/portal-api/internal/core/domain"
)

func testPrincipal() *domain.Principal {
	return &domain.Principal{
		ID:         "64f1c0ffee0000000000abcd",
		Kind:       domain.KindCSR,
		Username:   "sana.khan",
		IsActive:   true,
		IsLeadRole: true,
	}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	verifier := NewVerifier("secret")

	raw, issued, err := issuer.Issue(testPrincipal(), time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if issued.ID == "" {
		t.Fatalf("expected a jti on issued claims")
	}

	claims, err := verifier.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.PrincipalID != "64f1c0ffee0000000000abcd" {
		t.Fatalf("unexpected principal id: %s", claims.PrincipalID)
	}
	if claims.Username != "sana.khan" {
		t.Fatalf("unexpected username: %s", claims.Username)
	}
	if claims.IsAdmin || !claims.IsCSR {
		t.Fatalf("role flags do not reflect the principal kind: %+v", claims)
	}
	if !claims.IsActive || !claims.IsLeadRole {
		t.Fatalf("csr flags lost in transit: %+v", claims)
	}
	if claims.ID != issued.ID {
		t.Fatalf("jti changed between issue and verify")
	}
}

func TestIssue_AdminFlags(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	p := &domain.Principal{ID: "a1", Kind: domain.KindAdmin, Username: "rahul12345", IsActive: true}

	raw, _, err := issuer.Issue(p, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := NewVerifier("secret").Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !claims.IsAdmin || claims.IsCSR {
		t.Fatalf("expected admin claims, got %+v", claims)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	raw, _, err := NewIssuer("secret-a", time.Hour).Issue(testPrincipal(), time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewVerifier("secret-b").Verify(raw); err != ErrInvalid {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	raw, _, err := NewIssuer("secret", time.Minute).Issue(testPrincipal(), time.Now().Add(-2*time.Minute))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewVerifier("secret").Verify(raw); err != ErrInvalid {
		t.Fatalf("expected ErrInvalid for expired token, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := NewVerifier("secret").Verify(raw); err != ErrInvalid {
			t.Fatalf("expected ErrInvalid for %q, got %v", raw, err)
		}
	}
}

// Flipping any single bit of a valid token must break verification.
func TestVerify_BitFlip(t *testing.T) {
	raw, _, err := NewIssuer("secret", time.Hour).Issue(testPrincipal(), time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	verifier := NewVerifier("secret")

	for pos := 0; pos < len(raw); pos++ {
		if raw[pos] == '.' {
			continue
		}
		mutated := raw[:pos] + flip(raw[pos]) + raw[pos+1:]
		if mutated == raw {
			continue
		}
		if _, err := verifier.Verify(mutated); err == nil {
			t.Fatalf("mutation at position %d verified", pos)
		}
	}
}

// flip inverts the high bit of the character's 6-bit base64url group.
// The high bit is always significant, even in a segment's final
// character where the low bits may be padding.
func flip(b byte) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	idx := strings.IndexByte(alphabet, b)
	return string(alphabet[idx^0x20])
}
