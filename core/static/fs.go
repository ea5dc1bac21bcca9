// Package static serves embedded assets.
package static

import (
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/schemadeck/core/handler"
)

type fsConfig struct {
	fs          fs.FS
	stripPrefix string
	subPath     string
	maxAge      time.Duration
}

// FSOption configures FS.
type FSOption func(*fsConfig)

// WithFSStripPrefix removes prefix from the URL path before lookup, so
// "/assets/site.css" maps to "site.css" with prefix "/assets".
func WithFSStripPrefix(prefix string) FSOption {
	return func(c *fsConfig) { c.stripPrefix = prefix }
}

// WithSubFS serves the subdirectory path of the filesystem.
func WithSubFS(path string) FSOption {
	return func(c *fsConfig) { c.subPath = path }
}

// WithMaxAge sets a public Cache-Control max-age on served files.
func WithMaxAge(d time.Duration) FSOption {
	return func(c *fsConfig) { c.maxAge = d }
}

// FS serves files from fsys. Directories are only served when they hold an
// index.html, so listings are never exposed.
//
// It panics when the sub path is invalid or the filesystem root cannot be
// opened.
func FS[C handler.Context](fsys fs.FS, opts ...FSOption) handler.HandlerFunc[C] {
	cfg := &fsConfig{fs: fsys}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.subPath != "" {
		sub, err := fs.Sub(fsys, cfg.subPath)
		if err != nil {
			panic("static.FS: invalid sub-path '" + cfg.subPath + "': " + err.Error())
		}
		cfg.fs = sub
	}
	if _, err := cfg.fs.Open("."); err != nil {
		panic("static.FS: filesystem is not accessible: " + err.Error())
	}

	fileServer := http.FileServer(noListingFS{fs: http.FS(cfg.fs)})
	if cfg.stripPrefix != "" {
		fileServer = http.StripPrefix(cfg.stripPrefix, fileServer)
	}

	var cacheControl string
	if cfg.maxAge > 0 {
		cacheControl = "public, max-age=" + strconv.Itoa(int(cfg.maxAge.Seconds()))
	}

	return func(ctx C) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			if cacheControl != "" {
				w.Header().Set("Cache-Control", cacheControl)
			}
			fileServer.ServeHTTP(w, r)
			return nil
		}
	}
}

type noListingFS struct {
	fs http.FileSystem
}

func (n noListingFS) Open(path string) (http.File, error) {
	f, err := n.fs.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		index := strings.TrimSuffix(path, "/") + "/index.html"
		idx, err := n.fs.Open(index)
		if err != nil {
			_ = f.Close()
			return nil, fs.ErrNotExist
		}
		_ = idx.Close()
	}
	return f, nil
}
