package main

import (
	"encoding/hex"
	"testing"
)

func TestIsPublicPath(t *testing.T) {
	cases := []struct {
		path   string
		public bool
	}{
		{"/register", true},
		{"/login", true},
		{"/LOGIN", false},
		{"/logout", false},
		{"/meetings", false},
		{"/teams", false},
		{"/", false},
	}
	for _, tc := range cases {
		if got := isPublicPath(tc.path); got != tc.public {
			t.Errorf("isPublicPath(%q) = %v, want %v", tc.path, got, tc.public)
		}
	}
}

func TestRandomHex(t *testing.T) {
	token := randomHex(32)
	if len(token) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(token))
	}
	if _, err := hex.DecodeString(token); err != nil {
		t.Fatalf("token is not valid hex: %v", err)
	}
	if randomHex(32) == token {
		t.Fatal("expected distinct tokens across calls")
	}
	if fallback := randomHex(0); len(fallback) != 32 {
		t.Fatalf("expected default sizing for non-positive input, got %d chars", len(fallback))
	}
}
