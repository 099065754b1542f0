// Package session builds resolver sessions from operation configurations.
//
// A session is created per operation, rooted at one local repository, and sealed
// read-only before it is handed to the resolver. Repositories declared inside POMs are
// ignored and no environment-derived properties reach model interpolation, so the
// configuration alone decides where artifacts come from.
package session

import (
	"os"
	"path/filepath"

	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/zerr"
)

// Factory creates resolver sessions.
type Factory struct {
	resolver    ports.Resolver
	descriptors ports.ContentDescriptors
	reporter    ports.TransferReporter
	logger      ports.Logger
	home        func() (string, error)
}

// Option configures a Factory.
type Option func(*Factory)

// WithHomeDir replaces the lookup of the user home directory used for the default local repository.
func WithHomeDir(home func() (string, error)) Option {
	return func(f *Factory) { f.home = home }
}

// NewFactory creates a Factory. A nil reporter disables transfer reporting.
func NewFactory(
	resolver ports.Resolver,
	descriptors ports.ContentDescriptors,
	reporter ports.TransferReporter,
	logger ports.Logger,
	opts ...Option,
) *Factory {
	f := &Factory{
		resolver:    resolver,
		descriptors: descriptors,
		reporter:    reporter,
		logger:      logger,
		home:        os.UserHomeDir,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Resolver returns the resolver sessions are created for.
func (f *Factory) Resolver() ports.Resolver { return f.resolver }

// Resolution is what an operation needs to call the resolver for one configuration.
type Resolution struct {
	Session         *ports.Session
	Repositories    []ports.RemoteRepository
	LocalRepository string
}

// Open translates cfg into remote repositories, locates the local repository, creates
// it if needed and opens a sealed session on it.
func (f *Factory) Open(cfg *domain.OperationConfiguration) (*Resolution, error) {
	repos, err := f.RemoteRepositories(cfg)
	if err != nil {
		return nil, err
	}
	local, err := f.LocalRepositoryPath(cfg)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(local, domain.DirPerm); err != nil {
		return nil, zerr.With(domain.Fail(domain.ErrLockAcquisition, err), "path", local)
	}
	s, err := f.NewSession(local)
	if err != nil {
		return nil, err
	}
	return &Resolution{Session: s, Repositories: repos, LocalRepository: local}, nil
}

// LocalRepositoryPath returns the configured local repository, or the default below the
// user home directory.
func (f *Factory) LocalRepositoryPath(cfg *domain.OperationConfiguration) (string, error) {
	if path, ok := orEmpty(cfg).LocalRepositoryPath(); ok {
		if !filepath.IsAbs(path) {
			return "", zerr.With(zerr.Wrap(domain.ErrRelativeLocalRepository, "locate local repository"), "path", path)
		}
		return filepath.Clean(path), nil
	}

	home, err := f.home()
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrHomeDirectoryUnavailable, "locate local repository"), "cause", err.Error())
	}
	if home == "" {
		return "", zerr.Wrap(domain.ErrHomeDirectoryUnavailable, "locate local repository")
	}
	return domain.DefaultLocalRepositoryPath(home), nil
}

// RemoteRepositories returns the remote repositories of cfg in declaration order.
// An unset repository list yields Maven Central for releases only; an explicitly
// empty list yields no repositories.
func (f *Factory) RemoteRepositories(cfg *domain.OperationConfiguration) ([]ports.RemoteRepository, error) {
	cfg = orEmpty(cfg)
	repos, set := cfg.Repositories()
	if !set {
		repos = []domain.RepositoryConfiguration{CentralRepository()}
	}

	out := make([]ports.RemoteRepository, 0, len(repos))
	for _, rc := range repos {
		repo, err := remoteRepository(cfg, rc)
		if err != nil {
			return nil, zerr.With(err, "repository", rc.ID)
		}
		out = append(out, repo)
	}
	return out, nil
}

// CentralRepository is the repository used when a configuration names none.
func CentralRepository() domain.RepositoryConfiguration {
	return domain.RepositoryConfiguration{
		ID:        domain.CentralRepositoryID,
		Layout:    domain.LayoutDefault,
		URL:       domain.CentralRepositoryURL,
		Snapshots: domain.DisabledPolicy,
	}
}

// RemoteRepository translates one configured repository, applying defaults and the
// authentication configured for its id.
func RemoteRepository(cfg *domain.OperationConfiguration, rc domain.RepositoryConfiguration) (ports.RemoteRepository, error) {
	return remoteRepository(orEmpty(cfg), rc)
}

func remoteRepository(cfg *domain.OperationConfiguration, rc domain.RepositoryConfiguration) (ports.RemoteRepository, error) {
	layout, err := domain.ParseRepositoryLayout(string(rc.Layout))
	if err != nil {
		return ports.RemoteRepository{}, err
	}
	if layout == domain.LayoutUnspecified {
		layout = domain.LayoutDefault
	}
	releases, err := repositoryPolicy(rc.Releases)
	if err != nil {
		return ports.RemoteRepository{}, zerr.With(err, "policy", "releases")
	}
	snapshots, err := repositoryPolicy(rc.Snapshots)
	if err != nil {
		return ports.RemoteRepository{}, zerr.With(err, "policy", "snapshots")
	}

	repo := ports.RemoteRepository{
		ID:        rc.ID,
		URL:       rc.URL,
		Layout:    layout,
		Releases:  releases,
		Snapshots: snapshots,
	}
	if auth, ok := cfg.Authentication(rc.ID); ok {
		v := &credentialsVisitor{}
		auth.Accept(v)
		repo.Credentials = &v.credentials
	}
	return repo, nil
}

func repositoryPolicy(p *domain.RepositoryPolicyConfiguration) (ports.RepositoryPolicy, error) {
	update := p.UpdatePolicy()
	if update == "" {
		update = domain.UpdateDaily
	}
	if _, err := domain.ParseUpdatePolicy(update); err != nil {
		return ports.RepositoryPolicy{}, err
	}
	checksum, err := domain.ParseChecksumPolicy(string(p.ChecksumPolicy()))
	if err != nil {
		return ports.RepositoryPolicy{}, err
	}
	if checksum == domain.ChecksumUnspecified {
		checksum = domain.ChecksumWarn
	}
	return ports.RepositoryPolicy{Enabled: p.Enabled(), UpdatePolicy: update, ChecksumPolicy: checksum}, nil
}

type credentialsVisitor struct {
	credentials ports.Credentials
}

func (v *credentialsVisitor) VisitAccount(a domain.AccountAuthentication) {
	v.credentials = ports.Credentials{Username: a.Username, Password: a.Password}
}

func (v *credentialsVisitor) VisitPrivateKey(a domain.PrivateKeyAuthentication) {
	v.credentials = ports.Credentials{PrivateKeyPath: a.KeyPath, Passphrase: a.Passphrase}
}

// NewSession opens a session on the local repository at local. The session has no
// properties, ignores repositories declared in POMs, reports transfers, invalidates
// content descriptors of touched files and applies repository checksum policies.
// It is sealed before it is returned.
func (f *Factory) NewSession(local string) (*ports.Session, error) {
	s := ports.NewSession(f.resolver.NewLocalRepositoryManager(local))
	if err := s.SetProperties(map[string]string{}); err != nil {
		return nil, err
	}
	if err := s.SetIgnoreArtifactDescriptorRepositories(true); err != nil {
		return nil, err
	}
	if err := s.SetListener(newListener(f.logger, f.reporter, f.descriptors)); err != nil {
		return nil, err
	}
	if err := s.SetChecksumPolicyProvider(checksumPolicies{logger: f.logger}); err != nil {
		return nil, err
	}
	s.SetReadOnly()
	return s, nil
}

func orEmpty(cfg *domain.OperationConfiguration) *domain.OperationConfiguration {
	if cfg == nil {
		return domain.NewOperationConfigurationBuilder().Build()
	}
	return cfg
}
