package logger

import "testing"

func TestSanitizeKVsRedactsSecretsAndHashesIDs(t *testing.T) {
	out := sanitizeKVs([]interface{}{
		"access_token", "abc",
		"user_id", "4b1c0a52-6b9e-4a39-8d0b-1f1c5f8a0f11",
		"path", "/api/quiz",
	})
	if len(out) != 6 {
		t.Fatalf("len: want=6 got=%d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("token: want=[REDACTED] got=%v", out[1])
	}
	hashed, ok := out[3].(string)
	if !ok || len(hashed) != len("hash:")+12 {
		t.Fatalf("user_id: unexpected hash %v", out[3])
	}
	if out[5] != "/api/quiz" {
		t.Fatalf("path: want=/api/quiz got=%v", out[5])
	}
}

func TestSanitizeKVsKeepsDanglingKey(t *testing.T) {
	out := sanitizeKVs([]interface{}{"status", 200, "orphan"})
	if len(out) != 3 || out[2] != "orphan" {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestLooksLikeJWT(t *testing.T) {
	if !looksLikeJWT("eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxMjM0NTY3ODkwIn0.sig") {
		t.Fatalf("expected jwt-shaped string to match")
	}
	if looksLikeJWT("not.a.jwt") {
		t.Fatalf("short segments should not match")
	}
}

func TestConfigForTestModeIsQuiet(t *testing.T) {
	cfg := configFor("test")
	if !cfg.DisableStacktrace {
		t.Fatalf("test mode: want stack traces disabled")
	}
	if got := cfg.Level.Level().String(); got != "warn" {
		t.Fatalf("test mode level: want=warn got=%s", got)
	}
	if configFor("dev").DisableStacktrace {
		t.Fatalf("dev mode: want stack traces kept")
	}
}
