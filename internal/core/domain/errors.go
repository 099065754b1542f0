package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrFormat is the root of every malformed-input error (coordinates, exclusions, specifiers).
	ErrFormat = zerr.New("invalid format")

	// ErrInvalidCoordinates is returned when artifact coordinates cannot be parsed or constructed.
	ErrInvalidCoordinates = zerr.Wrap(ErrFormat, "invalid artifact coordinates")

	// ErrInvalidExclusion is returned when an exclusion pattern cannot be parsed.
	ErrInvalidExclusion = zerr.Wrap(ErrFormat, "invalid exclusion, expected format: group:artifact[:classifier[:extension]]")

	// ErrInvalidDeploySpecifier is returned when a deployment specifier has more than one colon.
	ErrInvalidDeploySpecifier = zerr.Wrap(ErrFormat, "invalid deploy specifier, expected format: [classifier:]extension")

	// ErrCoordinatesNotBare is returned when install/deploy targets carry a classifier or extension.
	ErrCoordinatesNotBare = zerr.Wrap(ErrFormat, "coordinates must not contain classifier or extension")

	// ErrConfiguration is returned when the operation configuration or environment is unusable.
	ErrConfiguration = zerr.New("invalid configuration")

	// ErrHomeDirectoryUnavailable is returned when the default local repository cannot be located.
	ErrHomeDirectoryUnavailable = zerr.Wrap(ErrConfiguration, "failed to determine user home directory")

	// ErrRelativeLocalRepository is returned when a configured local repository path is not absolute.
	ErrRelativeLocalRepository = zerr.Wrap(ErrConfiguration, "local repository path must be absolute")

	// ErrInvalidLayout is returned when a repository layout is not "default" or "legacy".
	ErrInvalidLayout = zerr.Wrap(ErrConfiguration, "invalid repository layout, expected 'default' or 'legacy'")

	// ErrInvalidChecksumPolicy is returned when a checksum policy is not "ignore", "warn" or "fail".
	ErrInvalidChecksumPolicy = zerr.Wrap(ErrConfiguration, "invalid checksum policy, expected 'ignore', 'warn' or 'fail'")

	// ErrInvalidUpdatePolicy is returned when an update policy cannot be parsed.
	ErrInvalidUpdatePolicy = zerr.Wrap(ErrConfiguration, "invalid update policy, expected 'always', 'daily', 'never' or 'interval:N'")

	// ErrUnsupportedAuthentication is returned when a transport cannot use the configured authentication.
	ErrUnsupportedAuthentication = zerr.Wrap(ErrConfiguration, "authentication is not supported by the repository transport")

	// ErrUnsupportedTransport is returned when a repository URL scheme has no transport.
	ErrUnsupportedTransport = zerr.Wrap(ErrConfiguration, "unsupported repository URL scheme")

	// ErrMissingRepository is returned when a named repository is not part of the configuration.
	ErrMissingRepository = zerr.Wrap(ErrConfiguration, "repository not found in configuration")

	// ErrLockAcquisition is returned when the local repository lock cannot be acquired.
	ErrLockAcquisition = zerr.New("failed to acquire local repository lock")

	// ErrChecksum is returned when checksum verification fails under the 'fail' policy.
	ErrChecksum = zerr.New("checksum verification failed")

	// ErrChecksumMismatch is the cause reported when a downloaded file does not match its checksum.
	ErrChecksumMismatch = zerr.New("checksum mismatch")

	// ErrChecksumMissing is the cause reported when a remote provides no checksum for a file.
	ErrChecksumMissing = zerr.New("checksum not available")

	// ErrResolution is returned when an artifact or dependency graph cannot be resolved.
	ErrResolution = zerr.New("failed to resolve artifact")

	// ErrArtifactNotFound is returned when a repository does not contain the requested file.
	ErrArtifactNotFound = zerr.New("artifact not found")

	// ErrVersionRangeUnsatisfied is returned when no available version matches a range.
	ErrVersionRangeUnsatisfied = zerr.New("no version satisfies range")

	// ErrModelBuilding is returned when a POM cannot be parsed or its effective model built.
	ErrModelBuilding = zerr.New("failed to build project model")

	// ErrModelValidation is returned when a POM model fails validation.
	ErrModelValidation = zerr.New("invalid project model")

	// ErrCycleDetected is returned when a parent or import chain refers back to itself.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrTransfer is returned when a transport operation fails.
	ErrTransfer = zerr.New("transfer failed")

	// ErrInstallFailed is returned when installing an artifact into the local repository fails.
	ErrInstallFailed = zerr.New("failed to install artifact")

	// ErrDeployFailed is returned when deploying artifacts to a remote repository fails.
	ErrDeployFailed = zerr.New("failed to deploy artifacts")

	// ErrNotFound is returned when a caller-named input file does not exist.
	ErrNotFound = zerr.New("file not found")

	// ErrSessionReadOnly is returned when a sealed resolver session is mutated.
	ErrSessionReadOnly = zerr.New("resolver session is read-only")

	// ErrNoCoordinates is returned when an operation is invoked without any coordinates.
	ErrNoCoordinates = zerr.New("no artifact coordinates specified")

	// ErrDescriptorFailed is returned when a content descriptor cannot be computed.
	ErrDescriptorFailed = zerr.New("failed to compute content descriptor")

	// ErrOutputFailed is returned when a file cannot be published into the output tree.
	ErrOutputFailed = zerr.New("failed to write output file")

	// ErrStoreCreateFailed is returned when the build record store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build record store directory")

	// ErrStoreReadFailed is returned when a build record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build record")

	// ErrStoreUnmarshalFailed is returned when a build record cannot be unmarshaled.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build record")

	// ErrStoreMarshalFailed is returned when a build record cannot be marshaled.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build record")

	// ErrStoreWriteFailed is returned when a build record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build record")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")
)

// Fail reports cause as a failure of the given kind. errors.Is matches both kind and
// cause, and the message chain reads "<kind>: <cause>". Attach context with zerr.With.
func Fail(kind, cause error) error {
	if cause == nil {
		return zerr.Wrap(kind, "")
	}
	return &failure{kind: kind, cause: cause}
}

type failure struct {
	kind  error
	cause error
}

func (f *failure) Error() string { return f.Message() + ": " + f.cause.Error() }

// Message returns the message of the kind without the cause.
func (f *failure) Message() string { return f.kind.Error() }

// Metadata is empty; context lives on the zerr layers around a failure.
func (f *failure) Metadata() map[string]any { return map[string]any{} }

func (f *failure) Unwrap() error { return f.cause }

func (f *failure) Is(target error) bool { return errors.Is(f.kind, target) }
