package screen

import (
	"errors"

	"github.com/gerenciador/painel/internal/core/domain"
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeWarning NoticeKind = "warning"
)

// Notice is the user-visible outcome of a mutation.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

func (n Notice) IsZero() bool { return n.Message == "" }

func Success(msg string) Notice {
	return Notice{Kind: NoticeSuccess, Message: msg}
}

func Warning(msg string) Notice {
	return Notice{Kind: NoticeWarning, Message: msg}
}

// Failure describes err, preferring the API's own wording over fallback.
func Failure(err error, fallback string) Notice {
	var fe *FormError
	if errors.As(err, &fe) {
		return Notice{Kind: NoticeError, Message: fe.Summary()}
	}
	return Notice{Kind: NoticeError, Message: domain.UserMessage(err, fallback)}
}
