// Package flash carries one notice across a redirect in a short-lived cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gerenciador/painel/internal/core/screen"
)

const CookieName = "painel_flash"

// Write stores n for the next page render.
func Write(w http.ResponseWriter, n screen.Notice) {
	if n.IsZero() {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ReadAndClear returns the pending notice, if any, and expires the cookie.
func ReadAndClear(w http.ResponseWriter, r *http.Request) (screen.Notice, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return screen.Notice{}, false
	}
	Clear(w)
	n, ok := decode(cookie.Value)
	if !ok {
		return screen.Notice{}, false
	}
	return n, true
}

func Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func decode(raw string) (screen.Notice, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return screen.Notice{}, false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return screen.Notice{}, false
	}
	var n screen.Notice
	if err := json.Unmarshal(decoded, &n); err != nil || n.IsZero() {
		return screen.Notice{}, false
	}
	switch n.Kind {
	case screen.NoticeSuccess, screen.NoticeError, screen.NoticeWarning:
	default:
		n.Kind = screen.NoticeWarning
	}
	return n, true
}
