package domain

import (
	"slices"
	"strings"
)

// Scope groups recognized by ScopeProjection.Get.
const (
	ScopeCompilation     = "Compilation"
	ScopeExecution       = "Execution"
	ScopeTestCompilation = "TestCompilation"
	ScopeTestExecution   = "TestExecution"
)

// Maven scopes.
const (
	ScopeCompile  = "compile"
	ScopeProvided = "provided"
	ScopeRuntime  = "runtime"
	ScopeTest     = "test"
	ScopeSystem   = "system"
	ScopeImport   = "import"
)

var scopeGroups = map[string][]string{
	ScopeCompilation:     {ScopeCompile, ScopeProvided},
	ScopeExecution:       {ScopeCompile, ScopeRuntime},
	ScopeTestCompilation: {ScopeCompile, ScopeProvided, ScopeTest},
	ScopeTestExecution:   {ScopeCompile, ScopeRuntime, ScopeTest},
}

// ResolvedDependencyArtifact is one artifact of a resolved dependency graph and
// the scope the graph assigned it.
type ResolvedDependencyArtifact struct {
	Coordinates ArtifactCoordinates
	Scope       string
}

func (a ResolvedDependencyArtifact) String() string {
	return a.Coordinates.String() + " (" + a.Scope + ")"
}

// ResolvedDependencies is the flattened, deduplicated result of a dependency collection.
type ResolvedDependencies struct {
	artifacts []ResolvedDependencyArtifact
	index     map[ArtifactCoordinates]int
}

// NewResolvedDependencies returns an empty result set.
func NewResolvedDependencies() *ResolvedDependencies {
	return &ResolvedDependencies{index: make(map[ArtifactCoordinates]int)}
}

// Add records an artifact unless its coordinates are already present.
// It reports whether the artifact was added.
func (r *ResolvedDependencies) Add(c ArtifactCoordinates, scope string) bool {
	if _, ok := r.index[c]; ok {
		return false
	}
	r.index[c] = len(r.artifacts)
	r.artifacts = append(r.artifacts, ResolvedDependencyArtifact{Coordinates: c, Scope: scope})
	return true
}

// Artifacts returns the artifacts in discovery order.
func (r *ResolvedDependencies) Artifacts() []ResolvedDependencyArtifact {
	return slices.Clone(r.artifacts)
}

// Coordinates returns the coordinates in discovery order.
func (r *ResolvedDependencies) Coordinates() []ArtifactCoordinates {
	out := make([]ArtifactCoordinates, len(r.artifacts))
	for i, a := range r.artifacts {
		out[i] = a.Coordinates
	}
	return out
}

// Scope returns the scope recorded for c.
func (r *ResolvedDependencies) Scope(c ArtifactCoordinates) (string, bool) {
	i, ok := r.index[c]
	if !ok {
		return "", false
	}
	return r.artifacts[i].Scope, true
}

// Len returns the number of artifacts.
func (r *ResolvedDependencies) Len() int { return len(r.artifacts) }

// Scopes returns the scope projection of the result.
func (r *ResolvedDependencies) Scopes() ScopeProjection { return ScopeProjection{deps: r} }

// Extensions returns the extension projection of the result.
func (r *ResolvedDependencies) Extensions() ExtensionProjection { return ExtensionProjection{deps: r} }

func (r *ResolvedDependencies) filter(keep func(ResolvedDependencyArtifact) bool) *ResolvedDependencies {
	out := NewResolvedDependencies()
	for _, a := range r.artifacts {
		if keep(a) {
			out.Add(a.Coordinates, a.Scope)
		}
	}
	return out
}

// ScopeProjection filters resolved dependencies by scope.
type ScopeProjection struct {
	deps *ResolvedDependencies
}

// Get returns the artifacts whose scope matches spec. spec is a scope group name,
// a raw scope, or a "|"-separated set of either. An empty spec matches nothing.
func (p ScopeProjection) Get(spec string) *ResolvedDependencies {
	scopes := make(map[string]struct{})
	for _, part := range splitSet(spec) {
		if group, ok := scopeGroups[part]; ok {
			for _, s := range group {
				scopes[s] = struct{}{}
			}
			continue
		}
		scopes[part] = struct{}{}
	}
	return p.deps.filter(func(a ResolvedDependencyArtifact) bool {
		_, ok := scopes[a.Scope]
		return ok
	})
}

// ExtensionProjection filters resolved dependencies by extension.
type ExtensionProjection struct {
	deps *ResolvedDependencies
}

// Get returns the artifacts whose extension is listed in spec, a single extension
// or a "|"-separated set. An empty spec matches nothing.
func (p ExtensionProjection) Get(spec string) *ResolvedDependencies {
	exts := splitSet(spec)
	return p.deps.filter(func(a ResolvedDependencyArtifact) bool {
		return slices.Contains(exts, a.Coordinates.Extension())
	})
}

func splitSet(spec string) []string {
	if spec == "" {
		return nil
	}
	var out []string
	for part := range strings.SplitSeq(spec, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
