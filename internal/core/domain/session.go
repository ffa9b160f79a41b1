package domain

import "context"

// SessionUser is the slice of the user record the panel keeps after login.
type SessionUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Session is the authenticated state of one browser. The token is trusted
// until the remote API rejects it; there is no local expiry.
type Session struct {
	Token string
	User  SessionUser
}

// NewSession builds a Session from a login response.
func NewSession(res LoginResult) Session {
	return Session{
		Token: res.AccessToken,
		User: SessionUser{
			ID:    res.ID,
			Email: res.Email,
			Role:  res.Role,
		},
	}
}

// Authenticated reports whether s carries a token. A nil session is anonymous.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

func (s *Session) IsAdmin() bool {
	return s.Authenticated() && s.User.Role == RoleAdmin
}

// LandingPath is where a freshly logged-in user is sent.
func (s *Session) LandingPath() string {
	if s.IsAdmin() {
		return "/users"
	}
	return "/profile"
}

type sidKey struct{}

// WithSessionID returns a copy of ctx carrying the browser's session id.
func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, sidKey{}, sid)
}

// SessionIDFromContext returns the id stored by WithSessionID, or "".
func SessionIDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(sidKey{}).(string)
	return sid
}
