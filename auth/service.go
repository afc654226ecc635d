package auth

import (
	"context"
	"encoding/json"

	"github.com/basebase-ai/basebase-go/session"
)

// Service is the remote authentication service contract. Implementations
// own the wire format; the flow only cares about success or failure.
type Service interface {
	// RequestCode asks the service to send a one-time code to phone.
	RequestCode(ctx context.Context, username, phone string) error

	// VerifyCode exchanges the one-time code for a verified identity and
	// an access token scoped to projectID.
	VerifyCode(ctx context.Context, phone, code, projectID string) (*VerifyResult, error)
}

// VerifyResult is what a successful code verification yields.
type VerifyResult struct {
	User    session.User
	Project json.RawMessage
	Token   string
}
