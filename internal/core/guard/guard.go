// Package guard decides whether a navigation target may be rendered for the
// current session.
package guard

import "github.com/gerenciador/painel/internal/core/domain"

const (
	LoginPath   = "/login"
	LandingPath = "/profile"
)

type State string

const (
	StateLoading          State = "loading"
	StateUnauthenticated  State = "unauthenticated"
	StateInsufficientRole State = "insufficient-role"
	StateAuthorized       State = "authorized"
)

type Action string

const (
	ActionPlaceholder     Action = "placeholder"
	ActionRedirectLogin   Action = "redirect-login"
	ActionRedirectLanding Action = "redirect-landing"
	ActionRender          Action = "render"
)

// Input is everything a decision depends on. It is evaluated afresh on every
// navigation.
type Input struct {
	// Loading is true while the session has not been resolved yet.
	Loading       bool
	Session       *domain.Session
	RequiresAdmin bool
}

type Decision struct {
	State  State
	Action Action
	// Location is set for redirect actions.
	Location string
}

func (d Decision) Redirect() bool {
	return d.Action == ActionRedirectLogin || d.Action == ActionRedirectLanding
}

// Evaluate never redirects while loading.
func Evaluate(in Input) Decision {
	switch {
	case in.Loading:
		return Decision{State: StateLoading, Action: ActionPlaceholder}
	case !in.Session.Authenticated():
		return Decision{State: StateUnauthenticated, Action: ActionRedirectLogin, Location: LoginPath}
	case in.RequiresAdmin && !in.Session.IsAdmin():
		return Decision{State: StateInsufficientRole, Action: ActionRedirectLanding, Location: LandingPath}
	}
	return Decision{State: StateAuthorized, Action: ActionRender}
}
