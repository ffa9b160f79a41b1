// Package sessioncookie binds a browser to its server-side session. The cookie
// carries only the session id, signed so it cannot be forged or altered.
package sessioncookie

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultName = "painel_session"

var ErrInvalid = errors.New("invalid session cookie")

type claims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session cookies with HS256.
type Codec struct {
	name   string
	secret []byte
	secure bool
}

func NewCodec(name, secret string, secure bool) *Codec {
	if name == "" {
		name = DefaultName
	}
	return &Codec{name: name, secret: []byte(secret), secure: secure}
}

func (c *Codec) Name() string { return c.name }

// Encode returns the signed cookie value for sid.
func (c *Codec) Encode(sid string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{SID: sid})
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}
	return signed, nil
}

// Decode verifies value and returns the session id it carries.
func (c *Codec) Decode(value string) (string, error) {
	var cl claims
	tkn, err := jwt.ParseWithClaims(value, &cl, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid || cl.SID == "" {
		return "", ErrInvalid
	}
	return cl.SID, nil
}

// Read extracts the session id from r. A missing or tampered cookie yields "".
func (c *Codec) Read(r *http.Request) string {
	ck, err := r.Cookie(c.name)
	if err != nil {
		return ""
	}
	sid, err := c.Decode(ck.Value)
	if err != nil {
		return ""
	}
	return sid
}

// Write binds sid to the browser.
func (c *Codec) Write(w http.ResponseWriter, sid string) error {
	value, err := c.Encode(sid)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Expire removes the cookie from the browser.
func (c *Codec) Expire(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
