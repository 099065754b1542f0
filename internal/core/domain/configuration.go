package domain

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// RepositoryLayout selects how coordinates map to paths in a remote repository.
type RepositoryLayout string

const (
	// LayoutUnspecified defers to LayoutDefault at the point of use.
	LayoutUnspecified RepositoryLayout = ""
	// LayoutDefault is the Maven 2+ layout.
	LayoutDefault RepositoryLayout = "default"
	// LayoutLegacy is the Maven 1 layout.
	LayoutLegacy RepositoryLayout = "legacy"
)

// ParseRepositoryLayout validates a layout name. The empty string is accepted.
func ParseRepositoryLayout(s string) (RepositoryLayout, error) {
	switch l := RepositoryLayout(s); l {
	case LayoutUnspecified, LayoutDefault, LayoutLegacy:
		return l, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidLayout, "parse layout"), "layout", s)
	}
}

// ChecksumPolicy decides what happens when checksum verification fails.
type ChecksumPolicy string

const (
	// ChecksumUnspecified defers to ChecksumWarn at the point of use.
	ChecksumUnspecified ChecksumPolicy = ""
	// ChecksumIgnore skips verification.
	ChecksumIgnore ChecksumPolicy = "ignore"
	// ChecksumWarn reports failures and continues.
	ChecksumWarn ChecksumPolicy = "warn"
	// ChecksumFail aborts the transfer.
	ChecksumFail ChecksumPolicy = "fail"
)

// ParseChecksumPolicy validates a checksum policy name. The empty string is accepted.
func ParseChecksumPolicy(s string) (ChecksumPolicy, error) {
	switch p := ChecksumPolicy(s); p {
	case ChecksumUnspecified, ChecksumIgnore, ChecksumWarn, ChecksumFail:
		return p, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrInvalidChecksumPolicy, "parse checksum policy"), "policy", s)
	}
}

// Update policies understood by ParseUpdatePolicy.
const (
	UpdateAlways   = "always"
	UpdateDaily    = "daily"
	UpdateNever    = "never"
	UpdateInterval = "interval"
)

// ParseUpdatePolicy validates an update policy and returns the staleness window.
// A zero window means "always", a negative window means "never".
func ParseUpdatePolicy(s string) (time.Duration, error) {
	switch s {
	case "", UpdateDaily:
		return 24 * time.Hour, nil
	case UpdateAlways:
		return 0, nil
	case UpdateNever:
		return -1, nil
	}
	if minutes, ok := strings.CutPrefix(s, UpdateInterval+":"); ok {
		n, err := strconv.Atoi(minutes)
		if err == nil && n >= 0 {
			return time.Duration(n) * time.Minute, nil
		}
	}
	return 0, zerr.With(zerr.Wrap(ErrInvalidUpdatePolicy, "parse update policy"), "policy", s)
}

// RepositoryPolicyConfiguration describes how releases or snapshots are fetched from a repository.
// Empty fields are defaulted when the policy is used.
type RepositoryPolicyConfiguration struct {
	enabled        *bool
	updatePolicy   string
	checksumPolicy ChecksumPolicy
}

// DisabledPolicy is the canonical disabled policy.
var DisabledPolicy = NewRepositoryPolicyConfiguration(new(bool), "", ChecksumUnspecified)

// NewRepositoryPolicyConfiguration creates a policy. A nil enabled pointer means "enabled".
func NewRepositoryPolicyConfiguration(enabled *bool, updatePolicy string, checksum ChecksumPolicy) *RepositoryPolicyConfiguration {
	var e *bool
	if enabled != nil {
		v := *enabled
		e = &v
	}
	return &RepositoryPolicyConfiguration{enabled: e, updatePolicy: updatePolicy, checksumPolicy: checksum}
}

// Enabled reports whether the policy is enabled. Defaults to true.
func (p *RepositoryPolicyConfiguration) Enabled() bool {
	return p == nil || p.enabled == nil || *p.enabled
}

// UpdatePolicy returns the configured update policy, or "" when unset.
func (p *RepositoryPolicyConfiguration) UpdatePolicy() string {
	if p == nil {
		return ""
	}
	return p.updatePolicy
}

// ChecksumPolicy returns the configured checksum policy, or ChecksumUnspecified when unset.
func (p *RepositoryPolicyConfiguration) ChecksumPolicy() ChecksumPolicy {
	if p == nil {
		return ChecksumUnspecified
	}
	return p.checksumPolicy
}

// Equal reports structural equality. A nil policy equals only another nil policy.
func (p *RepositoryPolicyConfiguration) Equal(o *RepositoryPolicyConfiguration) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.Enabled() == o.Enabled() && (p.enabled == nil) == (o.enabled == nil) &&
		p.updatePolicy == o.updatePolicy && p.checksumPolicy == o.checksumPolicy
}

func (p *RepositoryPolicyConfiguration) String() string {
	if p == nil {
		return "<default>"
	}
	enabled := "unset"
	if p.enabled != nil {
		enabled = strconv.FormatBool(*p.enabled)
	}
	return fmt.Sprintf("enabled=%s,update=%s,checksum=%s", enabled, p.updatePolicy, p.checksumPolicy)
}

// RepositoryConfiguration describes one remote repository.
type RepositoryConfiguration struct {
	ID        string
	Layout    RepositoryLayout
	URL       string
	Snapshots *RepositoryPolicyConfiguration
	Releases  *RepositoryPolicyConfiguration
}

// Equal reports structural equality.
func (r RepositoryConfiguration) Equal(o RepositoryConfiguration) bool {
	return r.ID == o.ID && r.Layout == o.Layout && r.URL == o.URL &&
		r.Snapshots.Equal(o.Snapshots) && r.Releases.Equal(o.Releases)
}

func (r RepositoryConfiguration) String() string {
	return fmt.Sprintf("%s(%s,%s,snapshots[%s],releases[%s])", r.ID, r.URL, r.Layout, r.Snapshots, r.Releases)
}

// OperationConfiguration is the immutable configuration of a repository operation.
type OperationConfiguration struct {
	localRepository string
	repositories    []RepositoryConfiguration
	repositoriesSet bool
	authentication  map[string]Authentication
}

// LocalRepositoryPath returns the configured local repository path.
func (c *OperationConfiguration) LocalRepositoryPath() (string, bool) {
	return c.localRepository, c.localRepository != ""
}

// Repositories returns the configured remote repositories. The boolean is false
// when no repository set was configured, in which case defaults apply.
func (c *OperationConfiguration) Repositories() ([]RepositoryConfiguration, bool) {
	return slices.Clone(c.repositories), c.repositoriesSet
}

// Authentication returns the authentication configured for a repository id.
func (c *OperationConfiguration) Authentication(repositoryID string) (Authentication, bool) {
	a, ok := c.authentication[repositoryID]
	return a, ok
}

// AuthenticatedRepositories returns the sorted ids that have authentication configured.
func (c *OperationConfiguration) AuthenticatedRepositories() []string {
	return slices.Sorted(maps.Keys(c.authentication))
}

// Repository returns the configured repository with the given id.
func (c *OperationConfiguration) Repository(id string) (RepositoryConfiguration, error) {
	for _, r := range c.repositories {
		if r.ID == id {
			return r, nil
		}
	}
	return RepositoryConfiguration{}, zerr.With(zerr.Wrap(ErrMissingRepository, "lookup repository"), "repository", id)
}

// WithoutRepositories returns a copy whose remote repository set is explicitly empty.
func (c *OperationConfiguration) WithoutRepositories() *OperationConfiguration {
	cp := *c
	cp.repositories = nil
	cp.repositoriesSet = true
	cp.authentication = maps.Clone(c.authentication)
	return &cp
}

// Equal reports structural equality. Repositories compare as a set.
func (c *OperationConfiguration) Equal(o *OperationConfiguration) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.localRepository != o.localRepository || c.repositoriesSet != o.repositoriesSet ||
		len(c.repositories) != len(o.repositories) || len(c.authentication) != len(o.authentication) {
		return false
	}
	for _, r := range c.repositories {
		if !slices.ContainsFunc(o.repositories, r.Equal) {
			return false
		}
	}
	for id, a := range c.authentication {
		b, ok := o.authentication[id]
		if !ok || a != b {
			return false
		}
	}
	return true
}

// Key returns a stable digest of the configuration, equal for equal configurations.
func (c *OperationConfiguration) Key() string {
	h := xxhash.New()
	_, _ = h.WriteString(c.localRepository)
	_, _ = h.Write([]byte{0})
	if c.repositoriesSet {
		_, _ = h.WriteString("repositories")
	}
	repos := make([]string, 0, len(c.repositories))
	for _, r := range c.repositories {
		repos = append(repos, r.String())
	}
	slices.Sort(repos)
	for _, r := range repos {
		_, _ = h.WriteString(r)
		_, _ = h.Write([]byte{0})
	}
	for _, id := range c.AuthenticatedRepositories() {
		_, _ = h.WriteString(id)
		_, _ = h.WriteString(c.authentication[id].String())
		_, _ = h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// OperationConfigurationBuilder assembles an OperationConfiguration.
type OperationConfigurationBuilder struct {
	cfg OperationConfiguration
}

// NewOperationConfigurationBuilder returns an empty builder.
func NewOperationConfigurationBuilder() *OperationConfigurationBuilder {
	return &OperationConfigurationBuilder{}
}

// LocalRepository sets the local repository path.
func (b *OperationConfigurationBuilder) LocalRepository(path string) *OperationConfigurationBuilder {
	b.cfg.localRepository = path
	return b
}

// Repositories sets the remote repository set. Passing no repositories configures an
// explicitly empty set. Identical entries are collapsed.
func (b *OperationConfigurationBuilder) Repositories(repos ...RepositoryConfiguration) *OperationConfigurationBuilder {
	b.cfg.repositoriesSet = true
	b.cfg.repositories = b.cfg.repositories[:0:0]
	for _, r := range repos {
		if !slices.ContainsFunc(b.cfg.repositories, r.Equal) {
			b.cfg.repositories = append(b.cfg.repositories, r)
		}
	}
	return b
}

// Authenticate associates authentication with a repository id.
func (b *OperationConfigurationBuilder) Authenticate(repositoryID string, auth Authentication) *OperationConfigurationBuilder {
	if b.cfg.authentication == nil {
		b.cfg.authentication = make(map[string]Authentication)
	}
	b.cfg.authentication[repositoryID] = auth
	return b
}

// Build snapshots the builder into an immutable configuration.
func (b *OperationConfigurationBuilder) Build() *OperationConfiguration {
	cfg := b.cfg
	cfg.repositories = slices.Clone(b.cfg.repositories)
	cfg.authentication = maps.Clone(b.cfg.authentication)
	return &cfg
}
