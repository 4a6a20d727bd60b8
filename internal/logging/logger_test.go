package logging

import "testing"

func TestNew(t *testing.T) {
	for _, lvl := range []string{"", "debug", "INFO", "warn", "error"} {
		l, err := New(lvl)
		if err != nil {
			t.Fatalf("level %q: unexpected error: %v", lvl, err)
		}
		if l == nil {
			t.Fatalf("level %q: nil logger", lvl)
		}
	}
	if _, err := New("chatty"); err == nil {
		t.Error("expected error for unknown level")
	}
}
