package maven

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"slices"
	"time"

	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/zerr"
)

const metadataTimestampLayout = "20060102150405"

// Metadata is the group/artifact level maven-metadata.xml.
type Metadata struct {
	XMLName    xml.Name           `xml:"metadata"`
	GroupID    string             `xml:"groupId"`
	ArtifactID string             `xml:"artifactId"`
	Versioning MetadataVersioning `xml:"versioning"`
}

// MetadataVersioning lists the versions a repository holds.
type MetadataVersioning struct {
	Latest      string   `xml:"latest,omitempty"`
	Release     string   `xml:"release,omitempty"`
	Versions    []string `xml:"versions>version"`
	LastUpdated string   `xml:"lastUpdated,omitempty"`
}

// AddVersion records v and recomputes latest and release.
func (m *Metadata) AddVersion(v string, now time.Time) {
	if !slices.Contains(m.Versioning.Versions, v) {
		m.Versioning.Versions = append(m.Versioning.Versions, v)
	}
	slices.SortStableFunc(m.Versioning.Versions, CompareVersions)

	m.Versioning.Latest = ""
	m.Versioning.Release = ""
	for _, ver := range m.Versioning.Versions {
		m.Versioning.Latest = ver
		if !domain.IsSnapshotVersion(ver) {
			m.Versioning.Release = ver
		}
	}
	m.Versioning.LastUpdated = now.UTC().Format(metadataTimestampLayout)
}

// Encode renders the metadata as indented XML.
func (m *Metadata) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func decodeMetadata(data []byte) (*Metadata, error) {
	var m Metadata
	if err := xml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// fetchMetadata reads the remote metadata of groupID:artifactID. A missing file yields nil.
func fetchMetadata(ctx context.Context, t transport, repo ports.RemoteRepository, groupID, artifactID string) (*Metadata, []byte, error) {
	rel := MetadataPath(repo.Layout, groupID, artifactID)
	body, err := t.Get(ctx, rel)
	if errors.Is(err, domain.ErrArtifactNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, nil, zerr.With(domain.Fail(domain.ErrTransfer, err), "file", rel)
	}
	m, err := decodeMetadata(data)
	if err != nil {
		return nil, nil, zerr.With(domain.Fail(domain.ErrTransfer, err), "file", rel)
	}
	return m, data, nil
}
