package identity_test

import (
	"testing"

	"verihub/internal/core/identity"
)

func TestCanonicalText_CollapsesWhitespaceAndTrims(t *testing.T) {
	got := identity.CanonicalText("  hello \t world\n\nagain  ")
	if got != "hello world again" {
		t.Fatalf("got %q", got)
	}
}

func TestCanonicalText_StripsZeroWidthAndFoldsWidth(t *testing.T) {
	// zero width joiner inside, fullwidth latin letters
	in := "ab‍c ａｂ"
	got := identity.CanonicalText(in)
	if got != "abc ab" {
		t.Fatalf("got %q", got)
	}
}

func TestCanonicalText_RepairsInvalidUTF8(t *testing.T) {
	in := "ok" + string([]byte{0xff, 0xfe}) + "go"
	got := identity.CanonicalText(in)
	if got != "okgo" {
		t.Fatalf("got %q", got)
	}
}

func TestCanonicalURL_NormalizesEquivalentLinks(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://WWW.Example.com/a/?utm_source=x&id=1#frag", "https://example.com/a?id=1"},
		{"https://example.com:443/a", "https://example.com/a"},
		{"http://example.com:8080/a", "http://example.com:8080/a"},
		{"https://example.com/path/", "https://example.com/path"},
		{"https://example.com/", "https://example.com/"},
		{"https://example.com/x?fbclid=abc", "https://example.com/x"},
	}
	for _, tc := range cases {
		if got := identity.CanonicalURL(tc.in); got != tc.want {
			t.Fatalf("CanonicalURL(%q) = %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanonicalURL_UnparseableFallsBackToTrimmedRaw(t *testing.T) {
	if got := identity.CanonicalURL("  not a url  "); got != "not a url" {
		t.Fatalf("got %q", got)
	}
}

func TestKey_StableAndKindScoped(t *testing.T) {
	a := identity.Key("text", "hello world")
	b := identity.Key("text", "hello world")
	if a != b {
		t.Fatal("same input must produce the same key")
	}
	if identity.Key("video", "hello world") == a {
		t.Fatal("kind must scope the key")
	}
	if len(a) != 64 {
		t.Fatalf("expected sha256 hex, got len %d", len(a))
	}

	// equivalent raw inputs meet at one key once canonicalized
	k1 := identity.Key("text", identity.CanonicalText("hello   world"))
	k2 := identity.Key("text", identity.CanonicalText("hello world "))
	if k1 != k2 {
		t.Fatal("canonical forms must collide for equivalent text")
	}
}
