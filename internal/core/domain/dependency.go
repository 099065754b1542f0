package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// DefaultScope is the scope of a dependency that does not declare one.
const DefaultScope = "compile"

// Wildcard matches any value in an exclusion pattern.
const Wildcard = "*"

// ExclusionOption excludes transitive dependencies matching a pattern.
// Empty fields are absent and match anything once translated for the resolver.
type ExclusionOption struct {
	GroupID    string
	ArtifactID string
	Classifier string
	Extension  string
}

// ParseExclusion parses "group[:artifact[:classifier[:extension]]]".
func ParseExclusion(s string) (ExclusionOption, error) {
	if s == "" || strings.ContainsAny(s, " \t") {
		return ExclusionOption{}, zerr.With(zerr.Wrap(ErrInvalidExclusion, "parse exclusion"), "input", s)
	}
	parts := strings.Split(s, ":")
	if len(parts) > 4 || parts[0] == "" {
		return ExclusionOption{}, zerr.With(zerr.Wrap(ErrInvalidExclusion, "parse exclusion"), "input", s)
	}
	parts = append(parts, make([]string, 4-len(parts))...)
	return ExclusionOption{
		GroupID:    parts[0],
		ArtifactID: parts[1],
		Classifier: parts[2],
		Extension:  parts[3],
	}, nil
}

// Pattern returns the exclusion with absent fields replaced by the wildcard.
func (e ExclusionOption) Pattern() ExclusionOption {
	return ExclusionOption{
		GroupID:    orWildcard(e.GroupID),
		ArtifactID: orWildcard(e.ArtifactID),
		Classifier: orWildcard(e.Classifier),
		Extension:  orWildcard(e.Extension),
	}
}

// Matches reports whether the coordinates fall under the exclusion.
func (e ExclusionOption) Matches(c ArtifactCoordinates) bool {
	p := e.Pattern()
	return matchPart(p.GroupID, c.GroupID()) &&
		matchPart(p.ArtifactID, c.ArtifactID()) &&
		matchPart(p.Classifier, c.Classifier()) &&
		matchPart(p.Extension, c.Extension())
}

func (e ExclusionOption) String() string {
	p := e.Pattern()
	return p.GroupID + ":" + p.ArtifactID + ":" + p.Classifier + ":" + p.Extension
}

func orWildcard(s string) string {
	if s == "" {
		return Wildcard
	}
	return s
}

func matchPart(pattern, value string) bool {
	return pattern == Wildcard || pattern == value
}

// DependencyOption carries per-coordinate resolution options.
type DependencyOption struct {
	// Scope is the requested scope; empty means DefaultScope.
	Scope string
	// Optional marks the dependency optional; nil means unset.
	Optional *bool
	// Exclusions are applied to the dependency's transitive closure.
	Exclusions []ExclusionOption
}

// EffectiveScope returns the scope, defaulting to DefaultScope.
func (o DependencyOption) EffectiveScope() string {
	if o.Scope == "" {
		return DefaultScope
	}
	return o.Scope
}

// IsOptional reports whether the dependency is optional.
func (o DependencyOption) IsOptional() bool {
	return o.Optional != nil && *o.Optional
}

// DependencyRequest pairs coordinates with their resolution options.
type DependencyRequest struct {
	Coordinates ArtifactCoordinates
	Option      DependencyOption
}

// DedupeDependencyRequests collapses requests with equal coordinates. The first
// occurrence keeps its position, the last occurrence's option wins.
func DedupeDependencyRequests(reqs []DependencyRequest) []DependencyRequest {
	index := make(map[ArtifactCoordinates]int, len(reqs))
	out := make([]DependencyRequest, 0, len(reqs))
	for _, r := range reqs {
		if i, ok := index[r.Coordinates]; ok {
			out[i].Option = r.Option
			continue
		}
		index[r.Coordinates] = len(out)
		out = append(out, r)
	}
	return out
}
