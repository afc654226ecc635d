package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	apperrors "github.com/basebase-ai/basebase-go/internal/errors"
	"github.com/basebase-ai/basebase-go/session"
)

// State is the flow's position in the sign-in state machine. There is no
// "loading" flag: a transition either happens or it doesn't.
type State string

const (
	StateIdle          State = "idle"
	StateAwaitingCode  State = "awaiting_code"
	StateAuthenticated State = "authenticated"
)

// Flow is the two-step challenge/response state machine that turns a
// username and phone number into a verified session. Every transition is
// caller-triggered; there are no retries or timeouts in the flow itself.
//
//	Idle -> AwaitingCode -> Authenticated -> Idle (sign-out)
//
// A failed verification stays in AwaitingCode so the caller can correct
// the code and try again.
type Flow struct {
	mu      sync.Mutex
	service Service
	store   *session.Store
	state   State
}

// NewFlow initializes a flow against the authentication service and the
// session store. A store that hydrated as authenticated starts the flow
// in Authenticated.
func NewFlow(service Service, store *session.Store) (*Flow, error) {
	if service == nil {
		return nil, errors.New("[NewFlow] service is required")
	}
	if store == nil {
		return nil, errors.New("[NewFlow] store is required")
	}

	state := StateIdle
	if store.Get().IsAuthenticated {
		state = StateAuthenticated
	}

	return &Flow{
		service: service,
		store:   store,
		state:   state,
	}, nil
}

// State returns the flow's current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// RequestCode validates the username and phone and asks the service to
// send a one-time code. Valid only from Idle. Validation failures return
// a ValidationError and make no remote call; remote failures are surfaced
// verbatim and leave the flow in Idle.
func (f *Flow) RequestCode(ctx context.Context, username, phone string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateIdle {
		return errors.Wrapf(InvalidTransitionErr, "[Flow.RequestCode] not valid from %q", f.state)
	}

	username = strings.TrimSpace(username)
	phone = strings.TrimSpace(phone)
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if err := ValidatePhone(phone); err != nil {
		return err
	}

	if err := f.service.RequestCode(ctx, username, phone); err != nil {
		return &apperrors.RemoteError{Op: "request code", Err: err}
	}

	f.state = StateAwaitingCode
	return nil
}

// VerifyCode exchanges the one-time code for a session. Valid only from
// AwaitingCode. On success the session store is replaced in a single Set
// and the flow becomes Authenticated. On failure the flow stays in
// AwaitingCode for another attempt.
func (f *Flow) VerifyCode(ctx context.Context, phone, code, projectID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateAwaitingCode {
		return errors.Wrapf(InvalidTransitionErr, "[Flow.VerifyCode] not valid from %q", f.state)
	}

	phone = strings.TrimSpace(phone)
	code = strings.TrimSpace(code)
	if err := ValidateCode(code); err != nil {
		return err
	}

	result, err := f.service.VerifyCode(ctx, phone, code, projectID)
	if err != nil {
		return &apperrors.RemoteError{Op: "verify code", Err: err}
	}

	f.store.Set(session.Authenticated(result.User, result.Project, result.Token))
	f.state = StateAuthenticated
	log.Info().Str("user_id", result.User.ID).Msg("signed in")
	return nil
}

// SignOut clears the session and returns the flow to Idle. Valid only
// from Authenticated. The token is cleared locally; no remote
// invalidation call is made.
func (f *Flow) SignOut() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateAuthenticated {
		return errors.Wrapf(InvalidTransitionErr, "[Flow.SignOut] not valid from %q", f.state)
	}

	f.store.Set(session.Anonymous())
	f.state = StateIdle
	return nil
}
