package maven

import (
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
)

// ArtifactPath returns the slash-separated path of c relative to a repository root.
func ArtifactPath(layout domain.RepositoryLayout, c domain.ArtifactCoordinates) string {
	if layout == domain.LayoutLegacy {
		ext := c.Extension()
		if ext == "" {
			ext = domain.DefaultExtension
		}
		return path.Join(c.GroupID(), ext+"s", c.FileName())
	}
	return path.Join(groupPath(c.GroupID()), c.ArtifactID(), c.Version(), c.FileName())
}

// MetadataPath returns the path of the group/artifact level repository metadata.
func MetadataPath(layout domain.RepositoryLayout, groupID, artifactID string) string {
	if layout == domain.LayoutLegacy {
		return path.Join(groupID, "poms", domain.MetadataFileName)
	}
	return path.Join(groupPath(groupID), artifactID, domain.MetadataFileName)
}

func groupPath(groupID string) string {
	return strings.ReplaceAll(groupID, ".", "/")
}

var _ ports.LocalRepositoryManager = (*LocalRepository)(nil)

// LocalRepository maps artifacts into a local repository using the default layout.
type LocalRepository struct {
	baseDir string
}

// NewLocalRepository returns a manager rooted at the absolute form of baseDir.
func NewLocalRepository(baseDir string) *LocalRepository {
	if abs, err := filepath.Abs(baseDir); err == nil {
		baseDir = abs
	}
	return &LocalRepository{baseDir: filepath.Clean(baseDir)}
}

// BaseDir returns the root of the local repository.
func (l *LocalRepository) BaseDir() string { return l.baseDir }

// PathForLocalArtifact returns where c lives in the local repository.
func (l *LocalRepository) PathForLocalArtifact(c domain.ArtifactCoordinates) string {
	return filepath.Join(l.baseDir, filepath.FromSlash(ArtifactPath(domain.LayoutDefault, c)))
}

// PathForRemoteArtifact returns the staging file a download of c from repo is written to.
func (l *LocalRepository) PathForRemoteArtifact(c domain.ArtifactCoordinates, repo ports.RemoteRepository) string {
	return l.PathForLocalArtifact(c) + "." + repo.ID + domain.PartFileSuffix
}

// PathForMetadata returns where the metadata of groupID:artifactID obtained from repo is kept.
func (l *LocalRepository) PathForMetadata(groupID, artifactID string, repo ports.RemoteRepository) string {
	name := "maven-metadata-" + repo.ID + ".xml"
	return filepath.Join(l.baseDir, filepath.FromSlash(groupPath(groupID)), artifactID, name)
}
