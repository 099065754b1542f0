// Package config loads operation configuration from m2.yaml or m2.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

var configFileNames = []string{domain.ConfigFileYAML, domain.ConfigFileYML, domain.ConfigFileTOML}

var envPlaceholder = regexp.MustCompile(`\$\{env:([A-Za-z_][A-Za-z0-9_]*)\}`)

// Loader implements ports.ConfigLoader.
type Loader struct {
	Logger ports.Logger
	// LookupEnv resolves ${env:NAME} placeholders. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// NewLoader creates a new configuration loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, LookupEnv: os.LookupEnv}
}

// Load reads the configuration at path. A directory is searched upward for a configuration
// file; when none is found the empty configuration is returned and all defaults apply.
func (l *Loader) Load(path string) (*domain.OperationConfiguration, error) {
	if path == "" {
		path = "."
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrNotFound, domain.ErrConfigReadFailed.Error()), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	configPath := path
	if info.IsDir() {
		found, ok, err := findConfiguration(path)
		if err != nil {
			return nil, err
		}
		if !ok {
			return domain.NewOperationConfigurationBuilder().Build(), nil
		}
		configPath = found
	}

	file, err := readFile(configPath)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	cfg, err := l.build(file)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return cfg, nil
}

func findConfiguration(start string) (string, bool, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}
	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

func readFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var file File
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &file); err != nil {
			return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
		}
		return &file, nil
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return &file, nil
}

func (l *Loader) build(file *File) (*domain.OperationConfiguration, error) {
	b := domain.NewOperationConfigurationBuilder()

	if file.LocalRepository != "" {
		local, err := l.expand(file.LocalRepository)
		if err != nil {
			return nil, err
		}
		if !filepath.IsAbs(local) {
			return nil, zerr.With(zerr.Wrap(domain.ErrRelativeLocalRepository, "load configuration"), "localRepository", local)
		}
		b.LocalRepository(filepath.Clean(local))
	}

	if file.Repositories != nil {
		repos := make([]domain.RepositoryConfiguration, 0, len(*file.Repositories))
		for i, dto := range *file.Repositories {
			repo, err := l.repository(dto)
			if err != nil {
				return nil, zerr.With(err, "repository_index", i)
			}
			repos = append(repos, repo)
		}
		b.Repositories(repos...)
	}

	ids := make([]string, 0, len(file.Authentication))
	for id := range file.Authentication {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		auth, err := l.authentication(file.Authentication[id])
		if err != nil {
			return nil, zerr.With(err, "repository", id)
		}
		b.Authenticate(id, auth)
	}

	cfg := b.Build()
	l.warnUnusedAuthentication(cfg)
	return cfg, nil
}

func (l *Loader) warnUnusedAuthentication(cfg *domain.OperationConfiguration) {
	if l.Logger == nil {
		return
	}
	repos, set := cfg.Repositories()
	if !set {
		repos = []domain.RepositoryConfiguration{{ID: domain.CentralRepositoryID}}
	}
	for _, id := range cfg.AuthenticatedRepositories() {
		if !slices.ContainsFunc(repos, func(r domain.RepositoryConfiguration) bool { return r.ID == id }) {
			l.Logger.Warn(fmt.Sprintf("authentication configured for unknown repository %q", id))
		}
	}
}

func (l *Loader) repository(dto RepositoryDTO) (domain.RepositoryConfiguration, error) {
	url, err := l.expand(dto.URL)
	if err != nil {
		return domain.RepositoryConfiguration{}, err
	}
	if dto.ID == "" || url == "" {
		return domain.RepositoryConfiguration{}, zerr.Wrap(domain.ErrConfiguration, "repository requires id and url")
	}
	layout, err := domain.ParseRepositoryLayout(dto.Layout)
	if err != nil {
		return domain.RepositoryConfiguration{}, err
	}
	releases, err := policy(dto.Releases)
	if err != nil {
		return domain.RepositoryConfiguration{}, zerr.With(err, "policy", "releases")
	}
	snapshots, err := policy(dto.Snapshots)
	if err != nil {
		return domain.RepositoryConfiguration{}, zerr.With(err, "policy", "snapshots")
	}
	return domain.RepositoryConfiguration{
		ID:        dto.ID,
		Layout:    layout,
		URL:       url,
		Releases:  releases,
		Snapshots: snapshots,
	}, nil
}

func policy(dto *PolicyDTO) (*domain.RepositoryPolicyConfiguration, error) {
	if dto == nil {
		return nil, nil
	}
	if _, err := domain.ParseUpdatePolicy(dto.UpdatePolicy); err != nil {
		return nil, err
	}
	checksum, err := domain.ParseChecksumPolicy(dto.ChecksumPolicy)
	if err != nil {
		return nil, err
	}
	return domain.NewRepositoryPolicyConfiguration(dto.Enabled, dto.UpdatePolicy, checksum), nil
}

func (l *Loader) authentication(dto AuthenticationDTO) (domain.Authentication, error) {
	fields := []*string{&dto.Username, &dto.Password, &dto.PrivateKey, &dto.Passphrase}
	for _, f := range fields {
		v, err := l.expand(*f)
		if err != nil {
			return nil, err
		}
		*f = v
	}

	switch {
	case dto.PrivateKey != "" && dto.Username == "":
		return domain.PrivateKeyAuthentication{KeyPath: dto.PrivateKey, Passphrase: dto.Passphrase}, nil
	case dto.Username != "" && dto.PrivateKey == "":
		return domain.AccountAuthentication{Username: dto.Username, Password: dto.Password}, nil
	default:
		return nil, zerr.Wrap(domain.ErrConfiguration, "authentication requires either username or privateKey")
	}
}

// expand replaces ${env:NAME} placeholders. Unset variables are an error.
func (l *Loader) expand(s string) (string, error) {
	var missing []string
	out := envPlaceholder.ReplaceAllStringFunc(s, func(m string) string {
		name := envPlaceholder.FindStringSubmatch(m)[1]
		v, ok := l.LookupEnv(name)
		if !ok {
			missing = append(missing, name)
		}
		return v
	})
	if len(missing) > 0 {
		return "", zerr.With(zerr.Wrap(domain.ErrConfiguration, fmt.Sprintf("environment variable %s is not set", missing[0])), "variable", missing[0])
	}
	return out, nil
}
