package server

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
)

//go:embed static/*
var staticFiles embed.FS

// asset is an embedded static file with its response headers worked out
// ahead of the first request.
type asset struct {
	data        []byte
	contentType string
	etag        string
}

// assetCatalog holds every file under static/, keyed by its path relative
// to that directory (for example "css/site.css").
type assetCatalog map[string]asset

func loadAssets(fsys fs.FS) (assetCatalog, error) {
	catalog := assetCatalog{}
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("read asset %s: %w", name, err)
		}
		sum := sha256.Sum256(data)
		catalog[name] = asset{
			data:        data,
			contentType: assetContentType(name, data),
			etag:        `"` + hex.EncodeToString(sum[:8]) + `"`,
		}
		return nil
	})
	return catalog, err
}

func embeddedAssets() (assetCatalog, error) {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, err
	}
	return loadAssets(sub)
}

func assetContentType(name string, data []byte) string {
	ctype := mime.TypeByExtension(strings.ToLower(path.Ext(name)))
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}
	if strings.HasPrefix(ctype, "text/") && !strings.Contains(strings.ToLower(ctype), "charset=") {
		ctype += "; charset=utf-8"
	}
	return ctype
}

// serve writes the named asset. A request whose If-None-Match carries the
// current ETag gets a 304 with no body. It reports false when no such
// asset exists.
func (c assetCatalog) serve(w http.ResponseWriter, r *http.Request, name string) bool {
	a, ok := c[name]
	if !ok {
		return false
	}
	w.Header().Set("ETag", a.etag)
	if match := r.Header.Get("If-None-Match"); match != "" && strings.Contains(match, a.etag) {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	w.Header().Set("Content-Type", a.contentType)
	_, _ = w.Write(a.data)
	return true
}
