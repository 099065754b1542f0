package domain

import "path/filepath"

const (
	// LockFileName is the advisory lock file created inside a local repository.
	LockFileName = "saker.m2.repository.lock"

	// DefaultLocalRepositoryDir is the local repository location relative to the user home.
	DefaultLocalRepositoryDir = ".m2/repository"

	// CentralRepositoryID is the id of the default remote repository.
	CentralRepositoryID = "central"

	// CentralRepositoryURL is the URL of the default remote repository.
	CentralRepositoryURL = "https://repo.maven.apache.org/maven2/"

	// DefaultBuildDir is the default build directory of the CLI host.
	DefaultBuildDir = ".m2build"

	// StoreDirName is the name of the build record store directory.
	StoreDirName = "store"

	// DownloadsDirName is the output tree of download operations.
	DownloadsDirName = "downloads"

	// StagingDirName holds per-execution deploy staging repositories.
	StagingDirName = "deploy-staging"

	// MetadataFileName is the repository metadata file of a group/artifact.
	MetadataFileName = "maven-metadata.xml"

	// PartFileSuffix marks in-flight downloads from a remote repository.
	PartFileSuffix = ".part"

	// ConfigFileYAML is the preferred configuration file name.
	ConfigFileYAML = "m2.yaml"

	// ConfigFileYML is the alternative YAML configuration file name.
	ConfigFileYML = "m2.yml"

	// ConfigFileTOML is the TOML configuration file name.
	ConfigFileTOML = "m2.toml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultLocalRepositoryPath returns the default local repository below home.
func DefaultLocalRepositoryPath(home string) string {
	return filepath.Join(home, DefaultLocalRepositoryDir)
}

// DefaultStorePath returns the build record store below a build directory.
func DefaultStorePath(buildDir string) string {
	return filepath.Join(buildDir, StoreDirName)
}

// DefaultDownloadsPath returns the downloads output tree below a build directory.
func DefaultDownloadsPath(buildDir string) string {
	return filepath.Join(buildDir, DownloadsDirName)
}

// DefaultStagingPath returns the deploy staging root below a build directory.
func DefaultStagingPath(buildDir string) string {
	return filepath.Join(buildDir, StagingDirName)
}
