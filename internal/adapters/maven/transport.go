package maven

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports"
	"go.trai.ch/zerr"
)

// transport moves files between a remote repository and the local machine.
type transport interface {
	// Get opens the file at rel. A missing file fails with domain.ErrArtifactNotFound.
	Get(ctx context.Context, rel string) (io.ReadCloser, error)
	// Put stores content at rel.
	Put(ctx context.Context, rel string, content []byte) error
}

type transportConfig struct {
	client   *http.Client
	attempts int
	delay    time.Duration
}

func newTransport(repo ports.RemoteRepository, cfg transportConfig) (transport, error) {
	u, err := url.Parse(repo.URL)
	if err != nil {
		return nil, zerr.With(zerr.With(domain.Fail(domain.ErrConfiguration, err), "repository", repo.ID), "url", repo.URL)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if repo.Credentials != nil && repo.Credentials.PrivateKeyPath != "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedAuthentication, "private key authentication over "+u.Scheme), "repository", repo.ID)
		}
		base := repo.URL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		return &httpTransport{base: base, creds: repo.Credentials, cfg: cfg}, nil
	case "file":
		if u.Path == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfiguration, "file repository without path"), "repository", repo.ID)
		}
		return &fileTransport{root: filepath.FromSlash(u.Path)}, nil
	default:
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrUnsupportedTransport, "select transport"), "repository", repo.ID), "scheme", u.Scheme)
	}
}

type httpTransport struct {
	base  string
	creds *ports.Credentials
	cfg   transportConfig
}

func (t *httpTransport) Get(ctx context.Context, rel string) (io.ReadCloser, error) {
	target := t.base + rel
	var body io.ReadCloser
	err := retry(ctx, t.cfg.attempts, t.cfg.delay, func() error {
		resp, err := t.do(ctx, http.MethodGet, target, nil)
		if err != nil {
			return err
		}
		if resp.StatusCode == http.StatusOK {
			body = resp.Body
			return nil
		}
		drain(resp)
		return statusError(http.MethodGet, target, resp.StatusCode)
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (t *httpTransport) Put(ctx context.Context, rel string, content []byte) error {
	target := t.base + rel
	return retry(ctx, t.cfg.attempts, t.cfg.delay, func() error {
		resp, err := t.do(ctx, http.MethodPut, target, content)
		if err != nil {
			return err
		}
		drain(resp)
		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusNoContent, http.StatusAccepted:
			return nil
		default:
			return statusError(http.MethodPut, target, resp.StatusCode)
		}
	})
}

func (t *httpTransport) do(ctx context.Context, method, target string, content []byte) (*http.Response, error) {
	var body io.Reader
	if content != nil {
		body = bytes.NewReader(content)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, zerr.With(domain.Fail(domain.ErrTransfer, err), "url", target)
	}
	if content != nil {
		req.ContentLength = int64(len(content))
	}
	if t.creds != nil && t.creds.Username != "" {
		req.SetBasicAuth(t.creds.Username, t.creds.Password)
	}

	resp, err := t.cfg.client.Do(req)
	if err != nil {
		wrapped := zerr.With(domain.Fail(domain.ErrTransfer, err), "url", target)
		if ctx.Err() != nil {
			return nil, wrapped
		}
		return nil, &retryableError{err: wrapped}
	}
	return resp, nil
}

func statusError(method, target string, status int) error {
	switch {
	case status == http.StatusNotFound || status == http.StatusGone:
		return zerr.With(zerr.Wrap(domain.ErrArtifactNotFound, method+" "+target), "status", status)
	case status >= http.StatusInternalServerError || status == http.StatusTooManyRequests:
		return &retryableError{err: zerr.With(zerr.Wrap(domain.ErrTransfer, method+" "+target), "status", status)}
	default:
		return zerr.With(zerr.Wrap(domain.ErrTransfer, method+" "+target), "status", status)
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

type fileTransport struct {
	root string
}

func (t *fileTransport) Get(_ context.Context, rel string) (io.ReadCloser, error) {
	p := filepath.Join(t.root, filepath.FromSlash(rel))
	f, err := os.Open(p) //nolint:gosec // path is below the configured repository root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrArtifactNotFound, "open "+rel), "path", p)
		}
		return nil, zerr.With(domain.Fail(domain.ErrTransfer, err), "path", p)
	}
	return f, nil
}

func (t *fileTransport) Put(_ context.Context, rel string, content []byte) error {
	p := filepath.Join(t.root, filepath.FromSlash(rel))
	if err := writeFileAtomic(p, bytes.NewReader(content)); err != nil {
		return zerr.With(domain.Fail(domain.ErrTransfer, err), "path", p)
	}
	return nil
}

// writeFileAtomic writes r to a temporary file next to dst and renames it into place.
func writeFileAtomic(dst string, r io.Reader) error {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, dst)
}
