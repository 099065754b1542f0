// Package serve exposes a local repository over HTTP so other machines can resolve from it
// and deploy into it.
package serve

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/zerr"
)

// MaxUploadSize bounds the body of a single PUT.
const MaxUploadSize = 1 << 30

var (
	errInvalidPath  = zerr.New("invalid repository path")
	errReservedPath = zerr.New("path is reserved by the repository")
)

// Handler serves files of a local repository.
type Handler struct {
	root     string
	locker   ports.RepositoryLocker
	logger   ports.Logger
	writable bool
}

// NewHandler returns a router serving root. PUT requests are accepted only when writable
// and are written under the repository lock.
func NewHandler(root string, locker ports.RepositoryLocker, logger ports.Logger, writable bool) http.Handler {
	h := &Handler{root: filepath.Clean(root), locker: locker, logger: logger, writable: writable}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/*", h.get)
	r.Head("/*", h.get)
	r.Put("/*", h.put)
	return r
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	path, err := h.resolve(chi.URLParam(r, "*"))
	if err != nil {
		reject(w, r, err, http.StatusNotFound)
		return
	}

	f, err := os.Open(path) //nolint:gosec // path is confined to the repository root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		h.fail(w, err)
		return
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	info, err := f.Stat()
	if err != nil {
		h.fail(w, err)
		return
	}
	if info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (h *Handler) put(w http.ResponseWriter, r *http.Request) {
	if !h.writable {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "repository is read-only", http.StatusMethodNotAllowed)
		return
	}
	path, err := h.resolve(chi.URLParam(r, "*"))
	if err != nil {
		reject(w, r, err, http.StatusForbidden)
		return
	}

	body := http.MaxBytesReader(w, r.Body, MaxUploadSize)
	err = h.locker.WithLock(r.Context(), h.root, func(context.Context) error {
		return writeFile(path, body)
	})
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// resolve maps a request path to a file below the repository root. The lock file and
// staging files are never exposed.
func (h *Handler) resolve(param string) (string, error) {
	if param == "" {
		return "", zerr.With(zerr.Wrap(errInvalidPath, "resolve path"), "path", "/")
	}
	for _, seg := range strings.Split(param, "/") {
		if seg == ".." || strings.ContainsRune(seg, '\\') || strings.ContainsRune(seg, 0) {
			return "", zerr.With(zerr.Wrap(errInvalidPath, "resolve path"), "path", param)
		}
	}
	path := filepath.Join(h.root, filepath.FromSlash(param))
	base := filepath.Base(path)
	if strings.EqualFold(base, domain.LockFileName) || strings.HasSuffix(base, domain.PartFileSuffix) {
		return "", zerr.With(zerr.Wrap(errReservedPath, "resolve path"), "path", param)
	}
	return path, nil
}

// reject answers a request whose path did not resolve; reserved paths get status.
func reject(w http.ResponseWriter, r *http.Request, err error, status int) {
	if !errors.Is(err, errReservedPath) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if status == http.StatusNotFound {
		http.NotFound(w, r)
		return
	}
	http.Error(w, http.StatusText(status), status)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	if h.logger != nil {
		h.logger.Error(err)
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeFile(dst string, r io.Reader) error {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "create directory")
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, r); err != nil {
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
