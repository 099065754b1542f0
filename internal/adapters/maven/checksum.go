package maven

import (
	"context"
	"crypto/md5"  //nolint:gosec // repository checksums are defined as md5
	"crypto/sha1" //nolint:gosec // repository checksums are defined as sha1
	"encoding/hex"
	"errors"
	"hash"
	"io"
	"os"
	"strings"

	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/zerr"
)

// checksumAlgorithm is a repository checksum flavour, in order of preference.
type checksumAlgorithm struct {
	ext string
	new func() hash.Hash
}

var checksumAlgorithms = []checksumAlgorithm{
	{ext: ".sha1", new: sha1.New},
	{ext: ".md5", new: md5.New},
}

func fileChecksum(path string, newHash func() hash.Hash) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path is a staged download
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := newHash()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func bytesChecksum(content []byte, newHash func() hash.Hash) string {
	h := newHash()
	_, _ = h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}

// verifyChecksum compares the staged file against the first checksum the remote provides.
// It returns domain.ErrChecksumMissing when no checksum exists and
// domain.ErrChecksumMismatch when the content differs.
func verifyChecksum(ctx context.Context, t transport, rel, file string) error {
	for _, alg := range checksumAlgorithms {
		expected, err := readChecksum(ctx, t, rel+alg.ext)
		if errors.Is(err, domain.ErrArtifactNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		actual, err := fileChecksum(file, alg.new)
		if err != nil {
			return zerr.With(domain.Fail(domain.ErrTransfer, err), "path", file)
		}
		if !strings.EqualFold(expected, actual) {
			e := zerr.With(zerr.Wrap(domain.ErrChecksumMismatch, "verify "+rel+alg.ext), "expected", expected)
			return zerr.With(e, "actual", actual)
		}
		return nil
	}
	return zerr.With(zerr.Wrap(domain.ErrChecksumMissing, "verify checksum"), "file", rel)
}

// readChecksum reads a checksum file. Only the first token counts, some tools append the file name.
func readChecksum(ctx context.Context, t transport, rel string) (string, error) {
	body, err := t.Get(ctx, rel)
	if err != nil {
		return "", err
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(io.LimitReader(body, 1024))
	if err != nil {
		return "", zerr.With(domain.Fail(domain.ErrTransfer, err), "file", rel)
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return "", zerr.With(zerr.Wrap(domain.ErrChecksumMissing, "empty checksum file"), "file", rel)
	}
	return fields[0], nil
}

// putWithChecksums uploads content followed by its sha1 and md5 checksum files.
func putWithChecksums(ctx context.Context, t transport, rel string, content []byte) error {
	if err := t.Put(ctx, rel, content); err != nil {
		return err
	}
	for _, alg := range checksumAlgorithms {
		if err := t.Put(ctx, rel+alg.ext, []byte(bytesChecksum(content, alg.new))); err != nil {
			return err
		}
	}
	return nil
}
