package maven

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/zerr"
)

// localMetadataRepository names the metadata file maintained for installed artifacts.
var localMetadataRepository = ports.RemoteRepository{ID: "local"}

// Install copies the artifacts into the session's local repository and records their
// versions in maven-metadata-local.xml.
func (r *Resolver) Install(ctx context.Context, s *ports.Session, req ports.InstallRequest) error {
	if err := requireLocal(s); err != nil {
		return err
	}
	lrm := s.LocalRepositoryManager()

	for _, a := range req.Artifacts {
		dst := lrm.PathForLocalArtifact(a.Coordinates)
		if err := copyInto(a.File, dst); err != nil {
			return installError(a, err)
		}
		s.Notify(ctx, ports.RepositoryEvent{Type: ports.EventArtifactInstalled, Artifact: a.Coordinates, File: dst})
		s.Notify(ctx, ports.RepositoryEvent{Type: ports.EventFileTouched, Artifact: a.Coordinates, File: dst})
	}

	for _, ga := range groupArtifacts(req.Artifacts) {
		path := lrm.PathForMetadata(ga.groupID, ga.artifactID, localMetadataRepository)
		if err := r.updateLocalMetadata(path, ga); err != nil {
			return zerr.With(zerr.With(domain.Fail(domain.ErrInstallFailed, err), "metadata", path), "artifact", ga.groupID+":"+ga.artifactID)
		}
		s.Notify(ctx, ports.RepositoryEvent{Type: ports.EventFileTouched, File: path})
	}
	return nil
}

func installError(a domain.PublishArtifact, err error) error {
	return zerr.With(zerr.With(domain.Fail(domain.ErrInstallFailed, err), "artifact", a.Coordinates.String()), "file", a.File)
}

func copyInto(src, dst string) error {
	if sameFile(src, dst) {
		return nil
	}
	f, err := os.Open(src) //nolint:gosec // caller-named file
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(domain.ErrNotFound, "open artifact"), "path", src)
		}
		return err
	}
	defer func() { _ = f.Close() }()
	return writeFileAtomic(dst, f)
}

func sameFile(a, b string) bool {
	ia, err := os.Stat(a)
	if err != nil {
		return false
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ia, ib)
}

func (r *Resolver) updateLocalMetadata(path string, ga groupArtifact) error {
	m := &Metadata{GroupID: ga.groupID, ArtifactID: ga.artifactID}
	if data, err := os.ReadFile(filepath.Clean(path)); err == nil {
		if existing, err := decodeMetadata(data); err == nil {
			m = existing
		}
	}
	for _, v := range ga.versions {
		m.AddVersion(v, r.now())
	}
	data, err := m.Encode()
	if err != nil {
		return err
	}
	return writeFileAtomic(path, bytes.NewReader(data))
}

type groupArtifact struct {
	groupID, artifactID string
	versions            []string
}

// groupArtifacts groups the versions of the artifacts by groupId:artifactId in first-seen order.
func groupArtifacts(artifacts []domain.PublishArtifact) []groupArtifact {
	var out []groupArtifact
	index := make(map[string]int)
	for _, a := range artifacts {
		c := a.Coordinates
		key := c.GroupID() + ":" + c.ArtifactID()
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, groupArtifact{groupID: c.GroupID(), artifactID: c.ArtifactID()})
		}
		out[i].versions = appendUnique(out[i].versions, c.Version())
	}
	return out
}

func appendUnique(s []string, v string) []string {
	if slices.Contains(s, v) {
		return s
	}
	return append(s, v)
}
