package apifake

import (
	"context"
	"sync"

	"github.com/basebase-ai/basebase-go/provision"
)

var _ provision.API = (*FakePlatformAPI)(nil)

// FakePlatformAPI is a scriptable provision.API for tests. It records the
// stored metadata per project so idempotency can be asserted.
type FakePlatformAPI struct {
	mu sync.Mutex

	CreateRecordErr     error
	CreateRepositoryErr error
	CreateServiceErr    error
	UpdateRecordErr     error

	RepositoryURL string
	DeploymentURL string

	CreateRecordCalls     int
	CreateRepositoryCalls int
	CreateServiceCalls    int
	UpdateRecordCalls     int

	Documents map[string]provision.Metadata
}

func NewFakePlatformAPI() *FakePlatformAPI {
	return &FakePlatformAPI{
		RepositoryURL: "https://github.com/basebase-ai/fake",
		DeploymentURL: "https://fake.basebase.live",
		Documents:     make(map[string]provision.Metadata),
	}
}

func (f *FakePlatformAPI) CreateProjectRecord(_ context.Context, projectID string, meta provision.Metadata) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.CreateRecordCalls++
	if f.CreateRecordErr != nil {
		return f.CreateRecordErr
	}
	f.Documents[projectID] = meta
	return nil
}

func (f *FakePlatformAPI) CreateRepository(_ context.Context, projectID string) (*provision.Repository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.CreateRepositoryCalls++
	if f.CreateRepositoryErr != nil {
		return nil, f.CreateRepositoryErr
	}
	return &provision.Repository{URL: f.RepositoryURL}, nil
}

func (f *FakePlatformAPI) CreateService(_ context.Context, projectID string) (*provision.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.CreateServiceCalls++
	if f.CreateServiceErr != nil {
		return nil, f.CreateServiceErr
	}
	return &provision.Service{DeploymentURL: f.DeploymentURL}, nil
}

func (f *FakePlatformAPI) UpdateProjectRecord(_ context.Context, projectID string, meta provision.Metadata) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.UpdateRecordCalls++
	if f.UpdateRecordErr != nil {
		return f.UpdateRecordErr
	}
	f.Documents[projectID] = meta
	return nil
}
