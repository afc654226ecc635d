package session

import (
	"encoding/json"

	"github.com/basebase-ai/basebase-go/internal/utils"
)

// User identifies the account a session is bound to.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Session is the authentication state of the running process. It is always
// replaced as a whole unit, never partially updated. The zero value is the
// anonymous session.
type Session struct {
	IsAuthenticated bool            `json:"isAuthenticated"`
	User            *User           `json:"user"`
	Project         json.RawMessage `json:"project,omitempty"` // opaque, owned by the platform
	Token           string          `json:"token,omitempty"`
}

// Anonymous returns the unauthenticated session value.
func Anonymous() Session {
	return Session{}
}

// Authenticated builds the session for a verified user.
func Authenticated(user User, project json.RawMessage, token string) Session {
	return Session{
		IsAuthenticated: true,
		User:            utils.Ptr(user),
		Project:         project,
		Token:           token,
	}
}

// Valid reports whether the session honours its invariant: a token and a
// user exist if and only if the session is authenticated.
func (s Session) Valid() bool {
	if s.IsAuthenticated {
		return s.User != nil && s.Token != ""
	}
	return s.User == nil && s.Token == ""
}

// clone returns a copy that shares no mutable state with the receiver.
func (s Session) clone() Session {
	out := s
	if s.User != nil {
		out.User = utils.Ptr(utils.Value(s.User))
	}
	if s.Project != nil {
		out.Project = append(json.RawMessage(nil), s.Project...)
	}
	return out
}
