package ports

import (
	"context"
	"errors"
	"maps"

	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/zerr"
)

//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks

// Resolver is the Maven repository system: graph collection, artifact resolution,
// model building, installation and deployment.
type Resolver interface {
	// NewLocalRepositoryManager returns a manager for the local repository at baseDir.
	NewLocalRepositoryManager(baseDir string) LocalRepositoryManager
	// CollectDependencies resolves the dependency graph of req.
	CollectDependencies(ctx context.Context, s *Session, req CollectRequest) (*DependencyNode, error)
	// ResolveArtifacts fetches the files of a batch of artifacts. Per-artifact failures are
	// reported in the results; the error is only non-nil when the batch as a whole failed.
	ResolveArtifacts(ctx context.Context, s *Session, reqs []ArtifactRequest) ([]ArtifactResult, error)
	// BuildModel builds the effective model of a project.
	BuildModel(ctx context.Context, s *Session, req ModelBuildingRequest) (*domain.ProjectModel, error)
	// Install copies artifacts into the local repository.
	Install(ctx context.Context, s *Session, req InstallRequest) error
	// Deploy uploads artifacts to a remote repository.
	Deploy(ctx context.Context, s *Session, req DeployRequest) error
}

// LocalRepositoryManager maps artifacts to files in a local repository. All returned paths are absolute.
type LocalRepositoryManager interface {
	// BaseDir returns the root of the local repository.
	BaseDir() string
	// PathForLocalArtifact returns where the artifact lives in the local repository.
	PathForLocalArtifact(c domain.ArtifactCoordinates) string
	// PathForRemoteArtifact returns where a download of the artifact from repo is staged.
	PathForRemoteArtifact(c domain.ArtifactCoordinates, repo RemoteRepository) string
	// PathForMetadata returns where the metadata of a group/artifact from repo is kept.
	PathForMetadata(groupID, artifactID string, repo RemoteRepository) string
}

// RepositoryPolicy is a fully defaulted repository policy.
type RepositoryPolicy struct {
	Enabled        bool
	UpdatePolicy   string
	ChecksumPolicy domain.ChecksumPolicy
}

// Credentials authenticate against a remote repository.
type Credentials struct {
	Username       string
	Password       string
	PrivateKeyPath string
	Passphrase     string
}

// RemoteRepository is a remote repository with all defaults applied.
type RemoteRepository struct {
	ID          string
	URL         string
	Layout      domain.RepositoryLayout
	Releases    RepositoryPolicy
	Snapshots   RepositoryPolicy
	Credentials *Credentials
}

// Policy returns the policy governing artifacts of the given kind.
func (r RemoteRepository) Policy(snapshot bool) RepositoryPolicy {
	if snapshot {
		return r.Snapshots
	}
	return r.Releases
}

// RepositoryEventType enumerates repository events.
type RepositoryEventType int

const (
	// EventArtifactDownloading is sent before a transfer from a remote starts.
	EventArtifactDownloading RepositoryEventType = iota
	// EventArtifactDownloaded is sent after a transfer attempt ends, successfully or not.
	EventArtifactDownloaded
	// EventArtifactResolved is sent when an artifact was satisfied from the local repository.
	EventArtifactResolved
	// EventArtifactInstalled is sent after an artifact was written into the local repository.
	EventArtifactInstalled
	// EventArtifactDeployed is sent after an artifact was uploaded.
	EventArtifactDeployed
	// EventMetadataDeployed is sent after repository metadata was uploaded.
	EventMetadataDeployed
	// EventChecksumFailed is sent when checksum verification failed.
	EventChecksumFailed
	// EventFileTouched is sent whenever a file in the local repository was written or removed.
	EventFileTouched
)

// RepositoryEvent describes something the resolver did.
type RepositoryEvent struct {
	Type       RepositoryEventType
	Artifact   domain.ArtifactCoordinates
	Repository string
	File       string
	Err        error
}

// RepositoryListener observes repository events. Implementations must be safe for concurrent use.
type RepositoryListener interface {
	OnEvent(ctx context.Context, e RepositoryEvent)
}

// ChecksumHandler applies a checksum policy to one repository.
type ChecksumHandler interface {
	// Verify reports whether checksums should be fetched and compared.
	Verify() bool
	// OnFailure handles a checksum failure. A non-nil result aborts the transfer.
	OnFailure(ctx context.Context, repo RemoteRepository, artifact domain.ArtifactCoordinates, cause error) error
}

// ChecksumPolicyProvider selects the checksum handler for a repository and artifact kind.
type ChecksumPolicyProvider interface {
	ChecksumHandler(repo RemoteRepository, snapshot bool) ChecksumHandler
}

// Session carries the state shared by the calls of one operation.
// A session is mutable until SetReadOnly is called.
type Session struct {
	local                 LocalRepositoryManager
	listener              RepositoryListener
	checksums             ChecksumPolicyProvider
	properties            map[string]string
	ignoreDescriptorRepos bool
	readOnly              bool
}

// NewSession creates a mutable session for the given local repository.
func NewSession(local LocalRepositoryManager) *Session {
	return &Session{local: local, properties: make(map[string]string)}
}

// LocalRepositoryManager returns the local repository of the session.
func (s *Session) LocalRepositoryManager() LocalRepositoryManager { return s.local }

// Listener returns the repository listener, or nil.
func (s *Session) Listener() RepositoryListener { return s.listener }

// Notify delivers an event to the listener, if any.
func (s *Session) Notify(ctx context.Context, e RepositoryEvent) {
	if s.listener != nil {
		s.listener.OnEvent(ctx, e)
	}
}

// ChecksumHandler returns the checksum handler for repo, or nil when none is configured.
func (s *Session) ChecksumHandler(repo RemoteRepository, snapshot bool) ChecksumHandler {
	if s.checksums == nil {
		return nil
	}
	return s.checksums.ChecksumHandler(repo, snapshot)
}

// Properties returns a copy of the session properties used for model interpolation.
func (s *Session) Properties() map[string]string { return maps.Clone(s.properties) }

// IgnoreArtifactDescriptorRepositories reports whether repositories declared in POMs are ignored.
func (s *Session) IgnoreArtifactDescriptorRepositories() bool { return s.ignoreDescriptorRepos }

// ReadOnly reports whether the session was sealed.
func (s *Session) ReadOnly() bool { return s.readOnly }

// SetListener installs the repository listener.
func (s *Session) SetListener(l RepositoryListener) error {
	if err := s.checkWritable("listener"); err != nil {
		return err
	}
	s.listener = l
	return nil
}

// SetChecksumPolicyProvider installs the checksum policy.
func (s *Session) SetChecksumPolicyProvider(p ChecksumPolicyProvider) error {
	if err := s.checkWritable("checksum_policy"); err != nil {
		return err
	}
	s.checksums = p
	return nil
}

// SetProperties replaces the session properties.
func (s *Session) SetProperties(props map[string]string) error {
	if err := s.checkWritable("properties"); err != nil {
		return err
	}
	s.properties = maps.Clone(props)
	if s.properties == nil {
		s.properties = make(map[string]string)
	}
	return nil
}

// SetIgnoreArtifactDescriptorRepositories controls whether POM-declared repositories are used.
func (s *Session) SetIgnoreArtifactDescriptorRepositories(ignore bool) error {
	if err := s.checkWritable("ignore_descriptor_repositories"); err != nil {
		return err
	}
	s.ignoreDescriptorRepos = ignore
	return nil
}

// SetReadOnly seals the session.
func (s *Session) SetReadOnly() { s.readOnly = true }

func (s *Session) checkWritable(field string) error {
	if s.readOnly {
		return zerr.With(zerr.Wrap(domain.ErrSessionReadOnly, "update session"), "field", field)
	}
	return nil
}

// Dependency is a node payload of a dependency graph.
type Dependency struct {
	Artifact domain.ArtifactCoordinates
	Scope    string
	Optional bool
	// Exclusions are wildcard patterns (see domain.ExclusionOption.Pattern).
	Exclusions []domain.ExclusionOption
}

// CollectRequest asks for the dependency graph below a set of direct dependencies.
type CollectRequest struct {
	// Root is the dependency owning the graph; nil for a synthetic root.
	Root         *Dependency
	Dependencies []Dependency
	Repositories []RemoteRepository
}

// DependencyNode is a node of a collected dependency graph.
// The root node of a request without Root has a nil Dependency.
type DependencyNode struct {
	Dependency *Dependency
	Children   []*DependencyNode
}

// ArtifactRequest asks for the file of one artifact.
type ArtifactRequest struct {
	Artifact     domain.ArtifactCoordinates
	Repositories []RemoteRepository
}

// ArtifactResult is the outcome of one ArtifactRequest.
type ArtifactResult struct {
	Request ArtifactRequest
	// File is the resolved file in the local repository, empty on failure.
	File string
	// Repository is the id of the repository the file came from, empty for local hits.
	Repository string
	Errors     []error
}

// Resolved reports whether the artifact file is available.
func (r ArtifactResult) Resolved() bool { return r.File != "" }

// Err returns the failure of the result, or nil when resolved.
func (r ArtifactResult) Err() error {
	if r.Resolved() {
		return nil
	}
	err := zerr.With(zerr.Wrap(domain.ErrResolution, "resolve "+r.Request.Artifact.String()), "artifact", r.Request.Artifact.String())
	if len(r.Errors) == 0 {
		return err
	}
	return errors.Join(append([]error{err}, r.Errors...)...)
}

// InstallRequest installs artifacts into the session's local repository.
type InstallRequest struct {
	Artifacts []domain.PublishArtifact
}

// DeployRequest uploads artifacts to a remote repository.
type DeployRequest struct {
	Artifacts  []domain.PublishArtifact
	Repository RemoteRepository
}

// ModelSource is the content of a POM and where it came from.
type ModelSource struct {
	Location string
	Content  []byte
}

// ModelResolver locates the POMs referenced by a model (parents and imports).
type ModelResolver interface {
	ResolveModel(ctx context.Context, groupID, artifactID, version string) (ModelSource, error)
}

// ModelValidator checks models during building. It may modify the model it is given.
type ModelValidator interface {
	// ValidateRaw is called on each model as read, before inheritance.
	ValidateRaw(model *domain.ProjectModel) error
	// ValidateEffective is called on the final model.
	ValidateEffective(model *domain.ProjectModel) error
}

// ModelBuildingRequest asks for the effective model of a POM.
type ModelBuildingRequest struct {
	Source ModelSource
	// Resolver locates parents and imported POMs; required when the model references any.
	Resolver ModelResolver
	// Validator replaces the default validation when set.
	Validator ModelValidator
	// Properties are added to interpolation after the model's own properties.
	Properties map[string]string
}
