package common

import "testing"

func TestHasAnyFold(t *testing.T) {
	ua := "Mozilla/5.0 (X11; U; Linux armv7l like Android; en-us) AppleWebKit/531.2+ Version/5.0 Safari/533.2+ Kindle/3.0+"

	if !HasAnyFold(ua, "kindle", "silk") {
		t.Fatalf("expected kindle user agent to match")
	}
	if HasAny(ua, "kindle") {
		t.Fatalf("expected case-sensitive HasAny not to match")
	}
	if HasAnyFold("Mozilla/5.0 (Linux; Android 10; Google Nest Hub)", "kindle", "silk") {
		t.Fatalf("expected nest user agent not to match")
	}
	if HasAnyFold("anything") {
		t.Fatalf("expected no substrings to never match")
	}
}
