package host

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.FileMirror = (*Files)(nil)
	_ ports.OutputTree = (*Files)(nil)
)

// Files resolves caller-named files against a working directory and publishes
// outputs below a build directory.
type Files struct {
	workDir     string
	buildDir    string
	descriptors ports.ContentDescriptors
}

// NewFiles creates a Files rooted at the absolute forms of workDir and buildDir.
// A relative buildDir is resolved against workDir.
func NewFiles(workDir, buildDir string, descriptors ports.ContentDescriptors) (*Files, error) {
	wd, err := filepath.Abs(workDir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "resolve working directory"), "path", workDir)
	}
	if !filepath.IsAbs(buildDir) {
		buildDir = filepath.Join(wd, buildDir)
	}
	return &Files{workDir: wd, buildDir: filepath.Clean(buildDir), descriptors: descriptors}, nil
}

// Root returns the build directory.
func (f *Files) Root() string { return f.buildDir }

// Resolve returns the absolute form of path, relative paths are taken from the working directory.
func (f *Files) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(f.workDir, path)
}

// Mirror checks that path names a regular file, reports it as an input and returns its absolute path.
func (f *Files) Mirror(_ context.Context, path string, rec ports.DependencyRecorder) (string, error) {
	abs := f.Resolve(path)
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(domain.ErrNotFound, "mirror file"), "path", abs)
		}
		return "", zerr.With(zerr.Wrap(err, "mirror file"), "path", abs)
	}
	if !info.Mode().IsRegular() {
		return "", zerr.With(zerr.Wrap(domain.ErrNotFound, "not a regular file"), "path", abs)
	}

	d, err := f.descriptors.Descriptor(abs)
	if err != nil {
		return "", err
	}
	if rec != nil {
		rec.ReportInput(abs, d)
	}
	return abs, nil
}

// Read returns the content of the file at path and reports it as an input.
func (f *Files) Read(ctx context.Context, path string, rec ports.DependencyRecorder) ([]byte, error) {
	abs, err := f.Mirror(ctx, path, rec)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs) //nolint:gosec // caller-named input file
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "read file"), "path", abs)
	}
	return data, nil
}

// Publish copies src to rel below the downloads tree unless an identical file is already there.
func (f *Files) Publish(_ context.Context, rel, src string, rec ports.DependencyRecorder) (string, error) {
	root := domain.DefaultDownloadsPath(f.buildDir)
	dst := filepath.Join(root, filepath.FromSlash(rel))
	if r, err := filepath.Rel(root, dst); err != nil || r == "." || strings.HasPrefix(r, "..") {
		return "", zerr.With(zerr.Wrap(domain.ErrOutputFailed, "output path escapes the output tree"), "path", rel)
	}

	same, err := sameContent(src, dst)
	if err != nil {
		return "", outputError(dst, err)
	}
	if !same {
		if err := copyFile(src, dst); err != nil {
			return "", outputError(dst, err)
		}
		f.descriptors.Invalidate(dst)
	}

	d, err := f.descriptors.Descriptor(dst)
	if err != nil {
		return "", err
	}
	if rec != nil {
		rec.ReportOutput(dst, d)
	}
	return dst, nil
}

func outputError(path string, cause error) error {
	return zerr.With(domain.Fail(domain.ErrOutputFailed, cause), "path", path)
}

// sameContent reports whether dst exists with the same size and hash as src.
func sameContent(src, dst string) (bool, error) {
	di, err := os.Stat(dst)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	si, err := os.Stat(src)
	if err != nil {
		return false, err
	}
	if !di.Mode().IsRegular() || di.Size() != si.Size() {
		return false, nil
	}

	sh, err := fileHash(src)
	if err != nil {
		return false, err
	}
	dh, err := fileHash(dst)
	if err != nil {
		return false, err
	}
	return sh == dh, nil
}

func fileHash(path string) (uint64, error) {
	file, err := os.Open(path) //nolint:gosec // path is an artifact or output file
	if err != nil {
		return 0, err
	}
	defer file.Close() //nolint:errcheck // Best effort close in defer

	h := xxhash.New()
	if _, err := io.Copy(h, file); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // artifact file in the local repository
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return err
	}
	if info, err := os.Lstat(dst); err == nil && info.IsDir() {
		if err := os.RemoveAll(dst); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dst)
}
