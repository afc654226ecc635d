package provision

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	apperrors "github.com/basebase-ai/basebase-go/internal/errors"
	"github.com/basebase-ai/basebase-go/session"
)

// Advisory progress strings, emitted before each remote step. They carry
// no control-flow meaning.
const (
	ProgressDocument   = "Creating project document..."
	ProgressRepository = "Setting up repository..."
	ProgressService    = "Deploying service..."
	ProgressUpdate     = "Updating project information..."
)

// Result is what a successful create run returns. The deployment behind
// DeploymentURL is still in progress; callers must treat it as such.
type Result struct {
	RepositoryURL string
	DeploymentURL string
	EditorURL     string
}

// Orchestrator drives the sequential creation of a project through its
// three dependent remote steps (document, repository, service), or a
// single-step edit of an existing one. Steps run strictly in order, the
// first failure aborts the run, and nothing already created is rolled
// back: a document without a repository is an accepted recoverable state,
// and re-running with the same id is expected to fail fast with a
// conflict at the document step.
type Orchestrator struct {
	api           API
	store         *session.Store
	progress      func(string)
	editorBaseURL string
}

// OrchestratorOption modifies an Orchestrator instance.
type OrchestratorOption func(*Orchestrator)

// WithProgress registers a callback for the advisory progress strings.
func WithProgress(fn func(string)) OrchestratorOption {
	return func(o *Orchestrator) {
		o.progress = fn
	}
}

// WithEditorBaseURL sets the base used to compose Result.EditorURL.
func WithEditorBaseURL(baseURL string) OrchestratorOption {
	return func(o *Orchestrator) {
		o.editorBaseURL = strings.TrimRight(baseURL, "/")
	}
}

// New initializes an orchestrator against the provisioning API and the
// session store (the owner of every provisioned project).
func New(api API, store *session.Store, options ...OrchestratorOption) (*Orchestrator, error) {
	if api == nil {
		return nil, errors.New("[provision.New] api is required")
	}
	if store == nil {
		return nil, errors.New("[provision.New] store is required")
	}

	orch := &Orchestrator{
		api:           api,
		store:         store,
		progress:      func(string) {},
		editorBaseURL: "https://editor.basebase.ai",
	}
	for _, opt := range options {
		opt(orch)
	}
	return orch, nil
}

// Provision runs one create or edit submission. Validation happens before
// any remote call; failures are classified as ValidationError,
// ConflictError or RemoteError. There are no retries and no compensating
// actions.
func (o *Orchestrator) Provision(ctx context.Context, req Request, mode Mode) (*Result, error) {
	req = req.trimmed()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if sess := o.store.Get(); sess.IsAuthenticated {
		req.OwnerID = sess.User.ID
	} else {
		req.OwnerID = ""
	}

	logger := log.With().
		Str("attempt_id", uuid.New().String()).
		Str("project_id", req.ProjectID).
		Str("mode", string(mode)).
		Logger()

	switch mode {
	case ModeCreate:
		return o.create(ctx, req, logger)
	case ModeEdit:
		return o.edit(ctx, req, logger)
	default:
		return nil, apperrors.NewValidation("unknown provisioning mode %q", mode)
	}
}

func (o *Orchestrator) create(ctx context.Context, req Request, logger zerolog.Logger) (*Result, error) {
	meta := Metadata{
		Name:        req.Name,
		Description: req.Description,
		Categories:  req.Categories,
		OwnerID:     req.OwnerID,
	}

	o.progress(ProgressDocument)
	if err := o.api.CreateProjectRecord(ctx, req.ProjectID, meta); err != nil {
		logger.Err(err).Str("step", "document").Msg("provisioning aborted")
		return nil, classify(req.ProjectID, "document", err)
	}

	o.progress(ProgressRepository)
	repo, err := o.api.CreateRepository(ctx, req.ProjectID)
	if err != nil {
		// The document from the previous step stays in place.
		logger.Err(err).Str("step", "repository").Msg("provisioning aborted")
		return nil, classify(req.ProjectID, "repository", err)
	}

	o.progress(ProgressService)
	svc, err := o.api.CreateService(ctx, req.ProjectID)
	if err != nil {
		logger.Err(err).Str("step", "service").Msg("provisioning aborted")
		return nil, classify(req.ProjectID, "service", err)
	}

	logger.Info().Msg("project provisioned")
	return &Result{
		RepositoryURL: repo.URL,
		DeploymentURL: svc.DeploymentURL,
		EditorURL:     o.editorBaseURL + "/" + req.ProjectID,
	}, nil
}

func (o *Orchestrator) edit(ctx context.Context, req Request, logger zerolog.Logger) (*Result, error) {
	meta := Metadata{
		Name:        req.Name,
		Description: req.Description,
		Categories:  req.Categories,
		OwnerID:     req.OwnerID,
	}

	o.progress(ProgressUpdate)
	if err := o.api.UpdateProjectRecord(ctx, req.ProjectID, meta); err != nil {
		logger.Err(err).Str("step", "update").Msg("edit aborted")
		return nil, classify(req.ProjectID, "update", err)
	}

	logger.Info().Msg("project updated")
	return &Result{
		EditorURL: o.editorBaseURL + "/" + req.ProjectID,
	}, nil
}

// classify maps a raw step failure onto the error taxonomy. The platform
// reports duplicate identifiers only through message text, so conflicts
// are detected by content inspection.
func classify(projectID, step string, err error) error {
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "already exists") || strings.Contains(msg, "duplicate") {
		return &apperrors.ConflictError{ID: projectID, Err: err}
	}
	return &apperrors.RemoteError{Op: step, Err: err}
}
