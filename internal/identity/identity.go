// Package identity manages the pseudonymous player identity: a
// generated nickname of the shape A.B.C.XXX reused across runs, and the
// locally persisted best score. The nickname is cosmetic, not a
// credential; the server validates its shape independently.
package identity

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// CookieName is the cookie carrying the nickname for HTTP callers.
	CookieName = "snake_nick"

	// CookieMaxAge is the nickname cookie lifetime.
	CookieMaxAge = 365 * 24 * time.Hour

	nickFile = "nick"
	bestFile = "best"
)

// alphabet is the fixed pool for the three-character nickname suffix.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generate produces a fresh nickname: three integers in [0, 999] and a
// three-character suffix drawn from the uppercase alphanumeric alphabet.
func Generate(rng *rand.Rand) string {
	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return fmt.Sprintf("%d.%d.%d.%s",
		rng.Intn(1000), rng.Intn(1000), rng.Intn(1000), suffix)
}

// DefaultDir returns the per-user state directory (~/.snakeboard).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("identity: cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, ".snakeboard"), nil
}

// Load returns the nickname stored in dir, creating and persisting a
// new one on first use. The identity is stable across runs after that.
func Load(dir string) (string, error) {
	path := filepath.Join(dir, nickFile)
	if data, err := os.ReadFile(path); err == nil {
		nick := strings.TrimSpace(string(data))
		if nick != "" {
			return nick, nil
		}
	}

	nick := Generate(rand.New(rand.NewSource(time.Now().UnixNano())))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("identity: cannot create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(nick+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("identity: cannot persist nickname: %w", err)
	}
	return nick, nil
}

// BestScore returns the locally persisted best score, 0 when absent.
func BestScore(dir string) int {
	data, err := os.ReadFile(filepath.Join(dir, bestFile))
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SaveBestScore persists the best score. Best-effort: the caller keeps
// the in-memory value either way.
func SaveBestScore(dir string, score int) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	//nolint:errcheck // Best-effort save
	os.WriteFile(filepath.Join(dir, bestFile), []byte(strconv.Itoa(score)+"\n"), 0o600)
}

// Cookie builds the long-lived nickname cookie: Lax same-site, Secure
// when the request arrived over TLS.
func Cookie(nick string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    nick,
		Path:     "/",
		MaxAge:   int(CookieMaxAge / time.Second),
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
}
