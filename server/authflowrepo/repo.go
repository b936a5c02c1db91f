package authflowrepo

import (
	"time"

	"github.com/jrsteele09/promptshare/internal/errors"
)

// ErrStateNotFound is returned for unknown, expired or already consumed states
var ErrStateNotFound = errors.ErrInvalidState

// AuthFlowState is a pending OAuth login, keyed by the state sent to the provider
type AuthFlowState struct {
	Namespace string // Browser that started the login
	Provider  string
	CreatedAt time.Time
}

type Repo interface {
	Upsert(state string, authState *AuthFlowState) error
	// Consume returns the pending flow and removes it so it can only be used once
	Consume(state string) (*AuthFlowState, error)
	Delete(state string) error
}
