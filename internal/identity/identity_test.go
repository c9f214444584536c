package identity

import (
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/avolkov/snakeboard/internal/leaderboard"
)

func TestGenerateShape(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		nick := Generate(rng)
		if !leaderboard.ValidNickname(nick) {
			t.Fatalf("Generated invalid nickname %q", nick)
		}
	}
}

func TestLoadCreatesAndReuses(t *testing.T) {
	dir := t.TempDir()

	nick, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !leaderboard.ValidNickname(nick) {
		t.Fatalf("Loaded invalid nickname %q", nick)
	}

	// Second load returns the same identity.
	again, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if again != nick {
		t.Errorf("Identity not stable: %q then %q", nick, again)
	}

	// The nickname is persisted on disk.
	data, err := os.ReadFile(filepath.Join(dir, nickFile))
	if err != nil {
		t.Fatalf("Nick file missing: %v", err)
	}
	if strings.TrimSpace(string(data)) != nick {
		t.Errorf("Persisted %q, expected %q", strings.TrimSpace(string(data)), nick)
	}
}

func TestLoadIgnoresEmptyFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, nickFile), []byte("  \n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	nick, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if !leaderboard.ValidNickname(nick) {
		t.Errorf("Expected a fresh nickname, got %q", nick)
	}
}

func TestBestScoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	if got := BestScore(dir); got != 0 {
		t.Errorf("Expected 0 with no file, got %d", got)
	}

	SaveBestScore(dir, 57)
	if got := BestScore(dir); got != 57 {
		t.Errorf("Expected 57, got %d", got)
	}

	// Garbage degrades to zero instead of failing.
	if err := os.WriteFile(filepath.Join(dir, bestFile), []byte("nope"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if got := BestScore(dir); got != 0 {
		t.Errorf("Expected 0 for garbage, got %d", got)
	}
}

func TestCookie(t *testing.T) {
	c := Cookie("1.2.3.ABC", false)
	if c.Name != CookieName || c.Value != "1.2.3.ABC" {
		t.Errorf("Unexpected cookie %v", c)
	}
	if c.Path != "/" {
		t.Errorf("Cookie path %q, want /", c.Path)
	}
	if c.MaxAge != int(365*24*time.Hour/time.Second) {
		t.Errorf("Cookie max age %d, want one year", c.MaxAge)
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Error("Cookie is not SameSite=Lax")
	}
	if c.Secure {
		t.Error("Cookie Secure without TLS")
	}

	if !Cookie("1.2.3.ABC", true).Secure {
		t.Error("Cookie not Secure with TLS")
	}
}
