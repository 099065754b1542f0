package domain

import (
	"fmt"
	"time"
)

// ContentDescriptor identifies the content of a file at a point in time.
// Descriptors are comparable; two equal descriptors mean the file is unchanged.
type ContentDescriptor struct {
	Exists  bool      `json:"exists"`
	Size    int64     `json:"size,omitempty"`
	ModTime time.Time `json:"modTime,omitzero"`
	Hash    uint64    `json:"hash,omitempty"`
}

// MissingContent describes a path with no file.
var MissingContent = ContentDescriptor{}

// Equal reports whether both descriptors identify the same content.
func (d ContentDescriptor) Equal(o ContentDescriptor) bool {
	return d.Exists == o.Exists && d.Size == o.Size && d.Hash == o.Hash && d.ModTime.Equal(o.ModTime)
}

func (d ContentDescriptor) String() string {
	if !d.Exists {
		return "<missing>"
	}
	return fmt.Sprintf("%016x/%d", d.Hash, d.Size)
}
