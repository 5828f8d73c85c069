package validation

import (
	"strings"
	"testing"
)

func TestSerial_Bounds(t *testing.T) {
	if Serial("") {
		t.Fatalf("empty serial must be invalid")
	}
	if !Serial("SERIAL123") {
		t.Fatalf("plain serial should be valid")
	}
	if !Serial(strings.Repeat("s", MaxSerialLen)) {
		t.Fatalf("serial at the bound should be valid")
	}
	if Serial(strings.Repeat("s", MaxSerialLen+1)) {
		t.Fatalf("serial over the bound must be invalid")
	}
}

func TestSerial_ByteLength(t *testing.T) {
	// Bounds are byte lengths, not rune counts: 26 three-byte runes = 78 bytes.
	if Serial(strings.Repeat("€", 26)) {
		t.Fatalf("multi-byte serial exceeding the byte bound must be invalid")
	}
}

func TestDescription_Bounds(t *testing.T) {
	if !Description("") {
		t.Fatalf("empty description is a valid present value")
	}
	if !Description(strings.Repeat("d", MaxDescriptionLen)) {
		t.Fatalf("description at the bound should be valid")
	}
	if Description(strings.Repeat("d", MaxDescriptionLen+1)) {
		t.Fatalf("description over the bound must be invalid")
	}
}

func TestLogDescription_Bounds(t *testing.T) {
	if !LogDescription("") {
		t.Fatalf("empty log description should be valid")
	}
	if !LogDescription(strings.Repeat("x", MaxLogDescriptionLen)) {
		t.Fatalf("log description at the bound should be valid")
	}
	if LogDescription(strings.Repeat("x", MaxLogDescriptionLen+1)) {
		t.Fatalf("log description over the bound must be invalid")
	}
}

func TestIdentity(t *testing.T) {
	const system = "registry"

	if Identity("", system) {
		t.Fatalf("empty identity must be rejected")
	}
	if Identity(system, system) {
		t.Fatalf("the system identity must be rejected in every role")
	}
	if !Identity("alice", system) {
		t.Fatalf("ordinary identity should be accepted")
	}
	// No trimming: identities are opaque byte strings.
	if !Identity(" registry", system) {
		t.Fatalf("identity comparison must be exact, not trimmed")
	}
}
