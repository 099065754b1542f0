package maven

import (
	"bytes"
	"context"
	"os"
	"slices"

	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/zerr"
)

// scopePropagation maps the scope of a dependency and the declared scope of one of its
// own dependencies to the scope the transitive dependency receives. Missing entries drop it.
var scopePropagation = map[string]map[string]string{
	domain.ScopeCompile:  {domain.ScopeCompile: domain.ScopeCompile, domain.ScopeRuntime: domain.ScopeRuntime},
	domain.ScopeProvided: {domain.ScopeCompile: domain.ScopeProvided, domain.ScopeRuntime: domain.ScopeProvided},
	domain.ScopeRuntime:  {domain.ScopeCompile: domain.ScopeRuntime, domain.ScopeRuntime: domain.ScopeRuntime},
	domain.ScopeTest:     {domain.ScopeCompile: domain.ScopeTest, domain.ScopeRuntime: domain.ScopeTest},
}

// CollectDependencies builds the dependency graph below req.Dependencies breadth first.
// For every groupId:artifactId:extension:classifier the occurrence nearest to the root wins;
// later occurrences are omitted from the graph. Optional, test and provided dependencies
// of dependencies are not followed.
func (r *Resolver) CollectDependencies(ctx context.Context, s *ports.Session, req ports.CollectRequest) (*ports.DependencyNode, error) {
	if err := requireLocal(s); err != nil {
		return nil, err
	}

	c := &collector{
		r:        r,
		s:        s,
		selected: make(map[string]struct{}),
		versions: make(map[string][]string),
	}
	root := &ports.DependencyNode{Dependency: req.Root}

	var level []collectItem
	for _, d := range req.Dependencies {
		if d.Scope == "" {
			d.Scope = domain.DefaultScope
		}
		artifact, err := c.selectVersion(ctx, d.Artifact, req.Repositories)
		if err != nil {
			return nil, err
		}
		d.Artifact = artifact
		if !c.claim(d.Artifact) {
			continue
		}
		node := &ports.DependencyNode{Dependency: &d}
		root.Children = append(root.Children, node)
		level = append(level, collectItem{node: node, exclusions: slices.Clone(d.Exclusions), repos: req.Repositories})
	}

	for len(level) > 0 {
		next, err := c.expand(ctx, level)
		if err != nil {
			return nil, err
		}
		level = next
	}
	return root, nil
}

type collectItem struct {
	node       *ports.DependencyNode
	exclusions []domain.ExclusionOption
	repos      []ports.RemoteRepository
}

type collector struct {
	r        *Resolver
	s        *ports.Session
	selected map[string]struct{}
	versions map[string][]string
}

func conflictKey(c domain.ArtifactCoordinates) string {
	return c.GroupID() + ":" + c.ArtifactID() + ":" + c.Extension() + ":" + c.Classifier()
}

// claim marks c as selected and reports whether it was not selected before.
func (c *collector) claim(a domain.ArtifactCoordinates) bool {
	key := conflictKey(a)
	if _, ok := c.selected[key]; ok {
		return false
	}
	c.selected[key] = struct{}{}
	return true
}

// expand reads the descriptors of one graph level in a single batch and returns the next level.
func (c *collector) expand(ctx context.Context, level []collectItem) ([]collectItem, error) {
	reqs := make([]ports.ArtifactRequest, len(level))
	for i, item := range level {
		reqs[i] = ports.ArtifactRequest{Artifact: item.node.Dependency.Artifact.ProjectCoordinates(), Repositories: item.repos}
	}
	results, err := c.r.ResolveArtifacts(ctx, c.s, reqs)
	if err != nil {
		return nil, err
	}

	var next []collectItem
	for i, item := range level {
		// Artifacts without a descriptor have no known dependencies.
		if !results[i].Resolved() {
			continue
		}
		children, err := c.children(ctx, item, results[i].File)
		if err != nil {
			return nil, err
		}
		next = append(next, children...)
	}
	return next, nil
}

func (c *collector) children(ctx context.Context, item collectItem, pomFile string) ([]collectItem, error) {
	dep := item.node.Dependency
	content, err := os.ReadFile(pomFile) //nolint:gosec // descriptor in the local repository
	if err != nil {
		return nil, zerr.With(domain.Fail(domain.ErrResolution, err), "artifact", dep.Artifact.String())
	}
	model, err := c.r.BuildModel(ctx, c.s, ports.ModelBuildingRequest{
		Source:   ports.ModelSource{Location: pomFile, Content: content},
		Resolver: &sessionModelResolver{r: c.r, s: c.s, repos: item.repos},
	})
	if err != nil {
		return nil, zerr.With(domain.Fail(domain.ErrResolution, err), "artifact", dep.Artifact.String())
	}

	repos := item.repos
	if !c.s.IgnoreArtifactDescriptorRepositories() {
		repos = withModelRepositories(repos, model.Repositories)
	}

	var out []collectItem
	for _, md := range model.Dependencies {
		scope, ok := scopePropagation[dep.Scope][md.EffectiveScope()]
		if !ok || md.IsOptional() {
			continue
		}
		coords, err := md.Coordinates()
		if err != nil {
			return nil, zerr.With(zerr.With(err, "artifact", dep.Artifact.String()), "dependency", md.ManagementKey())
		}
		if slices.ContainsFunc(item.exclusions, func(e domain.ExclusionOption) bool { return e.Matches(coords) }) {
			continue
		}
		coords, err = c.selectVersion(ctx, coords, repos)
		if err != nil {
			return nil, zerr.With(err, "artifact", dep.Artifact.String())
		}
		if !c.claim(coords) {
			continue
		}

		exclusions := md.ExclusionOptions()
		node := &ports.DependencyNode{Dependency: &ports.Dependency{Artifact: coords, Scope: scope, Exclusions: exclusions}}
		item.node.Children = append(item.node.Children, node)
		out = append(out, collectItem{
			node:       node,
			exclusions: append(slices.Clone(item.exclusions), exclusions...),
			repos:      repos,
		})
	}
	return out, nil
}

// selectVersion replaces a version range by the highest available matching version.
func (c *collector) selectVersion(ctx context.Context, a domain.ArtifactCoordinates, repos []ports.RemoteRepository) (domain.ArtifactCoordinates, error) {
	if !IsVersionRange(a.Version()) {
		return a, nil
	}
	vr, err := ParseVersionRange(a.Version())
	if err != nil {
		return a, zerr.With(err, "artifact", a.String())
	}
	available, err := c.availableVersions(ctx, a.GroupID(), a.ArtifactID(), repos)
	if err != nil {
		return a, err
	}
	v, err := vr.Highest(available)
	if err != nil {
		return a, zerr.With(domain.Fail(domain.ErrResolution, err), "artifact", a.String())
	}
	return a.WithVersion(v), nil
}

func (c *collector) availableVersions(ctx context.Context, groupID, artifactID string, repos []ports.RemoteRepository) ([]string, error) {
	key := groupID + ":" + artifactID
	if v, ok := c.versions[key]; ok {
		return v, nil
	}

	var versions []string
	for _, repo := range repos {
		if !repo.Releases.Enabled && !repo.Snapshots.Enabled {
			continue
		}
		t, err := newTransport(repo, c.r.transport)
		if err != nil {
			return nil, err
		}
		m, data, err := fetchMetadata(ctx, t, repo, groupID, artifactID)
		if err != nil {
			return nil, zerr.With(domain.Fail(domain.ErrResolution, err), "repository", repo.ID)
		}
		if m == nil {
			continue
		}
		staged := c.s.LocalRepositoryManager().PathForMetadata(groupID, artifactID, repo)
		if err := writeFileAtomic(staged, bytes.NewReader(data)); err == nil {
			c.s.Notify(ctx, ports.RepositoryEvent{Type: ports.EventFileTouched, Repository: repo.ID, File: staged})
		}
		for _, v := range m.Versioning.Versions {
			if repo.Policy(domain.IsSnapshotVersion(v)).Enabled && !slices.Contains(versions, v) {
				versions = append(versions, v)
			}
		}
	}
	c.versions[key] = versions
	return versions, nil
}

func withModelRepositories(repos []ports.RemoteRepository, declared []domain.ModelRepository) []ports.RemoteRepository {
	out := slices.Clone(repos)
	for _, d := range declared {
		if d.ID == "" || d.URL == "" || slices.ContainsFunc(out, func(r ports.RemoteRepository) bool { return r.ID == d.ID }) {
			continue
		}
		layout, err := domain.ParseRepositoryLayout(d.Layout)
		if err != nil || layout == domain.LayoutUnspecified {
			layout = domain.LayoutDefault
		}
		out = append(out, ports.RemoteRepository{
			ID:        d.ID,
			URL:       d.URL,
			Layout:    layout,
			Releases:  ports.RepositoryPolicy{Enabled: true, UpdatePolicy: domain.UpdateDaily, ChecksumPolicy: domain.ChecksumWarn},
			Snapshots: ports.RepositoryPolicy{Enabled: false, UpdatePolicy: domain.UpdateDaily, ChecksumPolicy: domain.ChecksumWarn},
		})
	}
	return out
}

// sessionModelResolver locates parent and imported POMs through the session's repositories.
type sessionModelResolver struct {
	r     *Resolver
	s     *ports.Session
	repos []ports.RemoteRepository
}

func (m *sessionModelResolver) ResolveModel(ctx context.Context, groupID, artifactID, version string) (ports.ModelSource, error) {
	c, err := domain.NewArtifactCoordinates(groupID, artifactID, "", domain.PomExtension, version)
	if err != nil {
		return ports.ModelSource{}, err
	}
	results, err := m.r.ResolveArtifacts(ctx, m.s, []ports.ArtifactRequest{{Artifact: c, Repositories: m.repos}})
	if err != nil {
		return ports.ModelSource{}, err
	}
	if !results[0].Resolved() {
		return ports.ModelSource{}, results[0].Err()
	}
	content, err := os.ReadFile(results[0].File)
	if err != nil {
		return ports.ModelSource{}, zerr.With(domain.Fail(domain.ErrResolution, err), "artifact", c.String())
	}
	return ports.ModelSource{Location: results[0].File, Content: content}, nil
}
