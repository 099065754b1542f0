package maven

import (
	"context"
	"encoding/xml"
	"errors"
	"maps"
	"regexp"
	"slices"

	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/zerr"
)

const maxInterpolationDepth = 10

var propertyReference = regexp.MustCompile(`\$\{([^}]+)\}`)

// BuildModel builds the effective model of req.Source: parents are inherited, properties
// interpolated, imported BOMs merged into dependency management and management applied
// to the declared dependencies.
func (r *Resolver) BuildModel(ctx context.Context, s *ports.Session, req ports.ModelBuildingRequest) (*domain.ProjectModel, error) {
	extra := make(map[string]string)
	if s != nil {
		maps.Copy(extra, s.Properties())
	}
	maps.Copy(extra, req.Properties)

	b := &modelBuilder{
		ctx:       ctx,
		resolver:  req.Resolver,
		validator: req.Validator,
		extra:     extra,
		visiting:  make(map[string]bool),
	}
	if b.validator == nil {
		b.validator = defaultValidator{}
	}
	return b.build(req.Source)
}

type modelBuilder struct {
	ctx       context.Context
	resolver  ports.ModelResolver
	validator ports.ModelValidator
	extra     map[string]string
	visiting  map[string]bool
}

func (b *modelBuilder) build(src ports.ModelSource) (*domain.ProjectModel, error) {
	m, err := b.assemble(src)
	if err != nil {
		return nil, err
	}
	key := modelKey(m)
	if b.visiting[key] {
		return nil, zerr.With(zerr.Wrap(domain.ErrCycleDetected, "import dependency management"), "model", key)
	}
	b.visiting[key] = true
	defer delete(b.visiting, key)

	interpolate(m, b.extra)
	if err := b.importManagement(m); err != nil {
		return nil, zerr.With(err, "location", src.Location)
	}
	applyManagement(m)
	if err := b.validator.ValidateEffective(m); err != nil {
		return nil, zerr.With(validationError(err), "location", src.Location)
	}
	return m, nil
}

// assemble reads src and merges its parent chain into it without interpolating.
func (b *modelBuilder) assemble(src ports.ModelSource) (*domain.ProjectModel, error) {
	m, err := decodeModel(src)
	if err != nil {
		return nil, err
	}
	if err := b.validator.ValidateRaw(m); err != nil {
		return nil, zerr.With(validationError(err), "location", src.Location)
	}
	if m.Parent == nil {
		return m, nil
	}

	p := m.Parent
	key := p.GroupID + ":" + p.ArtifactID + ":" + p.Version
	if b.visiting["parent:"+key] {
		return nil, zerr.With(zerr.Wrap(domain.ErrCycleDetected, "resolve parent"), "parent", key)
	}
	if b.resolver == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrModelBuilding, "parent requires a model resolver"), "parent", key)
	}
	b.visiting["parent:"+key] = true
	defer delete(b.visiting, "parent:"+key)

	psrc, err := b.resolver.ResolveModel(b.ctx, p.GroupID, p.ArtifactID, p.Version)
	if err != nil {
		return nil, zerr.With(zerr.With(domain.Fail(domain.ErrModelBuilding, err), "parent", key), "location", src.Location)
	}
	parent, err := b.assemble(psrc)
	if err != nil {
		return nil, err
	}
	inherit(m, parent)
	return m, nil
}

func decodeModel(src ports.ModelSource) (*domain.ProjectModel, error) {
	var m domain.ProjectModel
	if err := xml.Unmarshal(src.Content, &m); err != nil {
		return nil, zerr.With(domain.Fail(domain.ErrModelBuilding, err), "location", src.Location)
	}
	if m.Properties == nil {
		m.Properties = make(domain.ModelProperties)
	}
	return &m, nil
}

func modelKey(m *domain.ProjectModel) string {
	return m.EffectiveGroupID() + ":" + m.ArtifactID + ":" + m.EffectiveVersion()
}

// inherit merges parent into child. Values declared by the child win.
func inherit(child, parent *domain.ProjectModel) {
	if child.GroupID == "" {
		child.GroupID = parent.EffectiveGroupID()
	}
	if child.Version == "" {
		child.Version = parent.EffectiveVersion()
	}

	props := maps.Clone(parent.Properties)
	if props == nil {
		props = make(domain.ModelProperties)
	}
	maps.Copy(props, child.Properties)
	child.Properties = props

	child.DependencyManagement = mergeDependencies(child.DependencyManagement, parent.DependencyManagement)
	child.Dependencies = mergeDependencies(child.Dependencies, parent.Dependencies)
	for _, repo := range parent.Repositories {
		if !slices.ContainsFunc(child.Repositories, func(r domain.ModelRepository) bool { return r.ID == repo.ID }) {
			child.Repositories = append(child.Repositories, repo)
		}
	}
}

// mergeDependencies appends the entries of extra whose management key is not in own.
func mergeDependencies(own, extra []domain.ModelDependency) []domain.ModelDependency {
	keys := make(map[string]struct{}, len(own))
	for _, d := range own {
		keys[d.ManagementKey()] = struct{}{}
	}
	out := slices.Clone(own)
	for _, d := range extra {
		if _, ok := keys[d.ManagementKey()]; ok {
			continue
		}
		keys[d.ManagementKey()] = struct{}{}
		out = append(out, d)
	}
	return out
}

// interpolate expands ${...} references in the fields that influence resolution.
// Model properties take precedence over extra; unknown references are left in place.
func interpolate(m *domain.ProjectModel, extra map[string]string) {
	props := maps.Clone(extra)
	maps.Copy(props, m.Properties)

	builtins := map[string]string{
		"groupId":    m.EffectiveGroupID(),
		"artifactId": m.ArtifactID,
		"version":    m.EffectiveVersion(),
		"packaging":  m.EffectivePackaging(),
		"name":       m.Name,
	}
	for k, v := range builtins {
		props["project."+k] = v
		props["pom."+k] = v
	}
	if m.Parent != nil {
		for k, v := range map[string]string{"groupId": m.Parent.GroupID, "artifactId": m.Parent.ArtifactID, "version": m.Parent.Version} {
			props["project.parent."+k] = v
			props["parent."+k] = v
		}
	}

	expand := func(s string) string {
		for range maxInterpolationDepth {
			next := propertyReference.ReplaceAllStringFunc(s, func(ref string) string {
				if v, ok := props[ref[2:len(ref)-1]]; ok {
					return v
				}
				return ref
			})
			if next == s {
				break
			}
			s = next
		}
		return s
	}

	m.GroupID = expand(m.GroupID)
	m.ArtifactID = expand(m.ArtifactID)
	m.Version = expand(m.Version)
	m.Packaging = expand(m.Packaging)
	for k, v := range m.Properties {
		m.Properties[k] = expand(v)
	}
	for _, deps := range [][]domain.ModelDependency{m.Dependencies, m.DependencyManagement} {
		for i := range deps {
			d := &deps[i]
			d.GroupID = expand(d.GroupID)
			d.ArtifactID = expand(d.ArtifactID)
			d.Version = expand(d.Version)
			d.Type = expand(d.Type)
			d.Classifier = expand(d.Classifier)
			d.Scope = expand(d.Scope)
			d.Optional = expand(d.Optional)
			for j := range d.Exclusions {
				d.Exclusions[j].GroupID = expand(d.Exclusions[j].GroupID)
				d.Exclusions[j].ArtifactID = expand(d.Exclusions[j].ArtifactID)
			}
		}
	}
	for i := range m.Repositories {
		m.Repositories[i].URL = expand(m.Repositories[i].URL)
	}
}

// importManagement replaces import-scoped pom entries of dependency management with
// the management of the referenced BOMs. Entries declared directly win over imported ones.
func (b *modelBuilder) importManagement(m *domain.ProjectModel) error {
	var own, imported []domain.ModelDependency
	for _, d := range m.DependencyManagement {
		if d.Scope != domain.ScopeImport || d.Type != domain.PomExtension {
			own = append(own, d)
			continue
		}
		if b.resolver == nil {
			return zerr.With(zerr.Wrap(domain.ErrModelBuilding, "import requires a model resolver"), "import", d.ManagementKey())
		}
		src, err := b.resolver.ResolveModel(b.ctx, d.GroupID, d.ArtifactID, d.Version)
		if err != nil {
			return zerr.With(domain.Fail(domain.ErrModelBuilding, err), "import", d.GroupID+":"+d.ArtifactID+":"+d.Version)
		}
		bom, err := b.build(src)
		if err != nil {
			return err
		}
		imported = mergeDependencies(imported, bom.DependencyManagement)
	}
	m.DependencyManagement = mergeDependencies(own, imported)
	return nil
}

// applyManagement fills unset version, scope, optional and exclusions of dependencies
// from dependency management.
func applyManagement(m *domain.ProjectModel) {
	managed := make(map[string]domain.ModelDependency, len(m.DependencyManagement))
	for _, d := range m.DependencyManagement {
		managed[d.ManagementKey()] = d
	}
	for i := range m.Dependencies {
		d := &m.Dependencies[i]
		md, ok := managed[d.ManagementKey()]
		if !ok {
			continue
		}
		if d.Version == "" {
			d.Version = md.Version
		}
		if d.Scope == "" {
			d.Scope = md.Scope
		}
		if d.Optional == "" {
			d.Optional = md.Optional
		}
		if len(d.Exclusions) == 0 {
			d.Exclusions = slices.Clone(md.Exclusions)
		}
	}
}

func validationError(err error) error {
	if errors.Is(err, domain.ErrModelValidation) {
		return err
	}
	return domain.Fail(domain.ErrModelValidation, err)
}

// defaultValidator enforces the fields dependency resolution relies on.
type defaultValidator struct{}

func (defaultValidator) ValidateRaw(m *domain.ProjectModel) error {
	if m.ArtifactID == "" {
		return zerr.With(zerr.Wrap(domain.ErrModelValidation, "missing artifactId"), "field", "artifactId")
	}
	return nil
}

func (defaultValidator) ValidateEffective(m *domain.ProjectModel) error {
	return ValidateEffectiveModel(m)
}

// ValidateEffectiveModel checks that the project and each dependency carry full coordinates.
func ValidateEffectiveModel(m *domain.ProjectModel) error {
	required := [...]struct{ field, value string }{
		{"groupId", m.GroupID},
		{"artifactId", m.ArtifactID},
		{"version", m.Version},
	}
	for _, r := range required {
		if r.value == "" {
			return zerr.With(zerr.Wrap(domain.ErrModelValidation, "missing "+r.field), "field", r.field)
		}
	}
	for _, d := range m.Dependencies {
		if d.GroupID == "" || d.ArtifactID == "" || d.Version == "" {
			return zerr.With(zerr.Wrap(domain.ErrModelValidation, "incomplete dependency"), "dependency", d.ManagementKey())
		}
		if propertyReference.MatchString(d.Version) {
			return zerr.With(zerr.Wrap(domain.ErrModelValidation, "unresolved property in dependency version"), "dependency", d.ManagementKey())
		}
	}
	return nil
}
