package envutil

import (
	"testing"
	"time"
)

func TestEnvReaders(t *testing.T) {
	t.Setenv("CP_TEST_INT", "7")
	t.Setenv("CP_TEST_BAD_INT", "seven")
	t.Setenv("CP_TEST_BOOL", "on")
	t.Setenv("CP_TEST_SECONDS", "90")
	t.Setenv("CP_TEST_LIST", " a, ,b ")

	if got := Int("CP_TEST_INT", 1); got != 7 {
		t.Fatalf("Int: want=7 got=%d", got)
	}
	if got := Int("CP_TEST_BAD_INT", 1); got != 1 {
		t.Fatalf("Int fallback: want=1 got=%d", got)
	}
	if !Bool("CP_TEST_BOOL", false) {
		t.Fatalf("Bool: want=true")
	}
	if got := Seconds("CP_TEST_SECONDS", time.Second); got != 90*time.Second {
		t.Fatalf("Seconds: want=90s got=%s", got)
	}
	if got := List("CP_TEST_LIST", nil); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List: got=%v", got)
	}
	if got := String("CP_TEST_MISSING", "def"); got != "def" {
		t.Fatalf("String: want=def got=%q", got)
	}
}

func TestDuration(t *testing.T) {
	t.Setenv("CP_TEST_DUR", "15m")
	t.Setenv("CP_TEST_DUR_INT", "30")
	t.Setenv("CP_TEST_DUR_BAD", "soon")

	if got := Duration("CP_TEST_DUR", time.Second); got != 15*time.Minute {
		t.Fatalf("Duration: want=15m got=%s", got)
	}
	if got := Duration("CP_TEST_DUR_INT", time.Second); got != 30*time.Second {
		t.Fatalf("Duration seconds: want=30s got=%s", got)
	}
	if got := Duration("CP_TEST_DUR_BAD", time.Hour); got != time.Hour {
		t.Fatalf("Duration fallback: want=1h got=%s", got)
	}
}
