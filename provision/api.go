package provision

import "context"

// Metadata is the project document stored by the platform.
type Metadata struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	OwnerID     string   `json:"ownerId,omitempty"`
}

// Repository describes the source repository created for a project.
type Repository struct {
	URL string `json:"url"`
}

// Service describes the deployment created for a project. DeploymentURL
// is a polling target: the deployment is still in progress when the
// create call returns.
type Service struct {
	DeploymentURL string `json:"deploymentUrl"`
}

// API is the platform provisioning contract.
type API interface {
	// CreateProjectRecord stores the project document keyed by projectID.
	CreateProjectRecord(ctx context.Context, projectID string, meta Metadata) error

	// CreateRepository creates the source repository scoped to projectID.
	CreateRepository(ctx context.Context, projectID string) (*Repository, error)

	// CreateService requests a deployment scoped to projectID.
	CreateService(ctx context.Context, projectID string) (*Service, error)

	// UpdateProjectRecord replaces the stored document for an existing
	// project. Idempotent on the platform side.
	UpdateProjectRecord(ctx context.Context, projectID string, meta Metadata) error
}
