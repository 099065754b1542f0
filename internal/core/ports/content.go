package ports

import "go.trai.ch/m2/internal/core/domain"

// ContentDescriptors computes content identity tokens for files.
//
//go:generate mockgen -source=content.go -destination=mocks/mock_content.go -package=mocks
type ContentDescriptors interface {
	// Descriptor returns the descriptor of the file at path.
	// A missing file yields domain.MissingContent and no error.
	Descriptor(path string) (domain.ContentDescriptor, error)
	// Invalidate forgets any cached state for the given paths.
	Invalidate(paths ...string)
}
