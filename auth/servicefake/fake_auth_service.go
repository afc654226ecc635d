package servicefake

import (
	"context"
	"sync"

	"github.com/basebase-ai/basebase-go/auth"
)

var _ auth.Service = (*FakeAuthService)(nil)

// FakeAuthService is a scriptable auth.Service for tests.
type FakeAuthService struct {
	mu sync.Mutex

	RequestCodeErr error
	VerifyCodeErr  error
	VerifyResult   *auth.VerifyResult

	RequestCodeCalls int
	VerifyCodeCalls  int

	LastUsername  string
	LastPhone     string
	LastCode      string
	LastProjectID string
}

func NewFakeAuthService() *FakeAuthService {
	return &FakeAuthService{}
}

func (f *FakeAuthService) RequestCode(_ context.Context, username, phone string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.RequestCodeCalls++
	f.LastUsername = username
	f.LastPhone = phone
	return f.RequestCodeErr
}

func (f *FakeAuthService) VerifyCode(_ context.Context, phone, code, projectID string) (*auth.VerifyResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.VerifyCodeCalls++
	f.LastPhone = phone
	f.LastCode = code
	f.LastProjectID = projectID

	if f.VerifyCodeErr != nil {
		return nil, f.VerifyCodeErr
	}
	return f.VerifyResult, nil
}
