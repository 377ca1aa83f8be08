// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package web embeds the static browser assets: layout stylesheet, motion
// script and contact form script.
package web

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

//go:embed static
var staticFS embed.FS

// CacheControl is sent with every static asset. File names are not
// content-hashed, so revalidation relies on the ETag.
const CacheControl = "public, max-age=3600, must-revalidate"

// Assets serves the embedded files with strong ETags.
type Assets struct {
	fsys  fs.FS
	etags map[string]string
	files http.Handler
}

// NewAssets indexes the embedded files.
func NewAssets() (*Assets, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, err
	}
	return newAssets(sub)
}

func newAssets(fsys fs.FS) (*Assets, error) {
	etags := make(map[string]string)
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		etags[p] = ETag(data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Assets{fsys: fsys, etags: etags, files: http.FileServerFS(fsys)}, nil
}

// Names lists the embedded files.
func (a *Assets) Names() []string {
	out := make([]string, 0, len(a.etags))
	for n := range a.etags {
		out = append(out, n)
	}
	return out
}

// ServeHTTP serves r.URL.Path relative to the asset root. Directory
// listings are not served.
func (a *Assets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	tag, ok := a.etags[name]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("ETag", tag)
	w.Header().Set("Cache-Control", CacheControl)
	a.files.ServeHTTP(w, r)
}

// ETag returns a strong entity tag for data.
func ETag(data []byte) string {
	sum := sha256.Sum256(data)
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}
