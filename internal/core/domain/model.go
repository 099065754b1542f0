package domain

import (
	"encoding/xml"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// ProjectModel is the subset of a POM the resolver understands.
// Sections that never influence dependency resolution are kept so validators can inspect or strip them.
type ProjectModel struct {
	XMLName    xml.Name        `xml:"project"`
	Parent     *ModelParent    `xml:"parent"`
	GroupID    string          `xml:"groupId"`
	ArtifactID string          `xml:"artifactId"`
	Version    string          `xml:"version"`
	Packaging  string          `xml:"packaging"`
	Name       string          `xml:"name"`
	Properties ModelProperties `xml:"properties"`

	DependencyManagement []ModelDependency `xml:"dependencyManagement>dependencies>dependency"`
	Dependencies         []ModelDependency `xml:"dependencies>dependency"`
	Repositories         []ModelRepository `xml:"repositories>repository"`
	PluginRepositories   []ModelRepository `xml:"pluginRepositories>pluginRepository"`

	Modules                []string           `xml:"modules>module"`
	Profiles               []ModelProfile     `xml:"profiles>profile"`
	Developers             []ModelContributor `xml:"developers>developer"`
	Contributors           []ModelContributor `xml:"contributors>contributor"`
	Licenses               []ModelLicense     `xml:"licenses>license"`
	MailingLists           []ModelMailingList `xml:"mailingLists>mailingList"`
	SCM                    *ModelSection      `xml:"scm"`
	IssueManagement        *ModelSection      `xml:"issueManagement"`
	CIManagement           *ModelSection      `xml:"ciManagement"`
	DistributionManagement *ModelSection      `xml:"distributionManagement"`
	Build                  *ModelBuild        `xml:"build"`
	Reporting              *ModelBuild        `xml:"reporting"`
}

// ModelParent references the parent project.
type ModelParent struct {
	GroupID      string `xml:"groupId"`
	ArtifactID   string `xml:"artifactId"`
	Version      string `xml:"version"`
	RelativePath string `xml:"relativePath"`
}

// ModelDependency is a dependency declaration.
type ModelDependency struct {
	GroupID    string           `xml:"groupId"`
	ArtifactID string           `xml:"artifactId"`
	Version    string           `xml:"version"`
	Type       string           `xml:"type"`
	Classifier string           `xml:"classifier"`
	Scope      string           `xml:"scope"`
	Optional   string           `xml:"optional"`
	Exclusions []ModelExclusion `xml:"exclusions>exclusion"`
}

// ManagementKey identifies the dependency for dependency management purposes.
func (d ModelDependency) ManagementKey() string {
	t := d.Type
	if t == "" {
		t = DefaultExtension
	}
	return d.GroupID + ":" + d.ArtifactID + ":" + t + ":" + d.Classifier
}

// EffectiveScope returns the declared scope, defaulting to DefaultScope.
func (d ModelDependency) EffectiveScope() string {
	if d.Scope == "" {
		return DefaultScope
	}
	return d.Scope
}

// IsOptional parses the optional flag. Anything but a boolean true is false.
func (d ModelDependency) IsOptional() bool {
	v, err := strconv.ParseBool(strings.TrimSpace(d.Optional))
	return err == nil && v
}

// Coordinates returns the coordinates of the artifact the dependency refers to.
// The type is mapped to an extension; "test-jar" implies the "tests" classifier.
func (d ModelDependency) Coordinates() (ArtifactCoordinates, error) {
	classifier := d.Classifier
	if d.Type == "test-jar" && classifier == "" {
		classifier = "tests"
	}
	return NewArtifactCoordinates(d.GroupID, d.ArtifactID, classifier, ExtensionForPackaging(d.Type), d.Version)
}

// ExclusionOptions returns the exclusions with unspecified fields left absent.
func (d ModelDependency) ExclusionOptions() []ExclusionOption {
	out := make([]ExclusionOption, 0, len(d.Exclusions))
	for _, e := range d.Exclusions {
		out = append(out, ExclusionOption{GroupID: e.GroupID, ArtifactID: e.ArtifactID})
	}
	return out
}

// ModelExclusion excludes a transitive dependency.
type ModelExclusion struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
}

// ModelRepository is a repository declared in a POM.
type ModelRepository struct {
	ID     string `xml:"id"`
	URL    string `xml:"url"`
	Layout string `xml:"layout"`
}

// ModelProfile is a build profile. Only its identity is kept.
type ModelProfile struct {
	ID           string            `xml:"id"`
	Dependencies []ModelDependency `xml:"dependencies>dependency"`
}

// ModelContributor is a developer or contributor entry.
type ModelContributor struct {
	ID    string `xml:"id"`
	Name  string `xml:"name"`
	Email string `xml:"email"`
}

// ModelLicense is a license entry.
type ModelLicense struct {
	Name string `xml:"name"`
	URL  string `xml:"url"`
}

// ModelMailingList is a mailing list entry.
type ModelMailingList struct {
	Name string `xml:"name"`
}

// ModelSection is a descriptive section with a URL.
type ModelSection struct {
	URL string `xml:"url"`
}

// ModelBuild holds build or reporting plugins.
type ModelBuild struct {
	Plugins []ModelPlugin `xml:"plugins>plugin"`
}

// ModelPlugin is a build plugin reference.
type ModelPlugin struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
}

// ModelProperties holds the free-form <properties> section.
type ModelProperties map[string]string

// UnmarshalXML decodes each child element into a key/value pair.
func (p *ModelProperties) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	props := make(ModelProperties)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var value string
			if err := d.DecodeElement(&value, &t); err != nil {
				return err
			}
			props[t.Name.Local] = strings.TrimSpace(value)
		case xml.EndElement:
			*p = props
			return nil
		}
	}
}

// MarshalXML encodes the properties as child elements in key order.
func (p ModelProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, k := range slices.Sorted(maps.Keys(p)) {
		if err := e.EncodeElement(p[k], xml.StartElement{Name: xml.Name{Local: k}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// EffectiveGroupID returns the group id, inherited from the parent when absent.
func (m *ProjectModel) EffectiveGroupID() string {
	if m.GroupID == "" && m.Parent != nil {
		return m.Parent.GroupID
	}
	return m.GroupID
}

// EffectiveVersion returns the version, inherited from the parent when absent.
func (m *ProjectModel) EffectiveVersion() string {
	if m.Version == "" && m.Parent != nil {
		return m.Parent.Version
	}
	return m.Version
}

// EffectivePackaging returns the packaging, defaulting to "jar".
func (m *ProjectModel) EffectivePackaging() string {
	if m.Packaging == "" {
		return DefaultExtension
	}
	return m.Packaging
}

// StripNonDependencySections drops every section that does not contribute to dependency resolution.
func (m *ProjectModel) StripNonDependencySections() {
	m.Repositories = nil
	m.PluginRepositories = nil
	m.Modules = nil
	m.Profiles = nil
	m.Developers = nil
	m.Contributors = nil
	m.Licenses = nil
	m.MailingLists = nil
	m.SCM = nil
	m.IssueManagement = nil
	m.CIManagement = nil
	m.DistributionManagement = nil
	m.Build = nil
	m.Reporting = nil
}
