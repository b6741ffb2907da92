package ui

import (
	"bytes"
	"compress/gzip"
	"crypto/md5" // #nosec G501
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify"
	"github.com/vlatan/repo-sitemap/internal/models"
	"github.com/vlatan/repo-sitemap/web"
)

// StaticFiles gets the map containing the static files
func (s *service) StaticFiles() models.StaticFiles {
	return s.staticFiles
}

// Create minified versions of the static files and cache them in memory.
func parseStaticFiles(m *minify.M, dir string) models.StaticFiles {

	sf := make(models.StaticFiles)

	// Function used to process each file/dir in the root, including the root
	walkDirFunc := func(path string, info fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip directories
		if info.IsDir() {
			return nil
		}

		// Embedded files have zero mod time,
		// it's kept for the Last-Modified header anyway.
		stat, err := fs.Stat(web.Files, path)
		if err != nil {
			return err
		}

		b, err := fs.ReadFile(web.Files, path)
		if err != nil {
			return err
		}

		// Set media type
		var mediaType string
		switch filepath.Ext(info.Name()) {
		case ".css":
			mediaType = "text/css"
		case ".js":
			mediaType = "application/javascript"
		}

		// Create Etag as a hexadecimal md5 hash of the file content
		etag := fmt.Sprintf("%x", md5.Sum(b)) // #nosec G401

		// Ensure the name starts with "/"
		name := path
		if !strings.HasPrefix(name, "/") {
			name = "/" + name
		}

		sf[name] = &models.FileInfo{
			MediaType: mediaType,
			ModTime:   stat.ModTime(),
			Etag:      etag,
		}

		// We're done for non CSS, JS files
		if mediaType == "" {
			return nil
		}

		// Minify the content
		mb, err := m.Bytes(mediaType, b)
		if err != nil {
			return err
		}

		sf[name].Bytes = mb

		// Gzip the content
		buf := new(bytes.Buffer)
		gz := gzip.NewWriter(buf)

		if _, err = gz.Write(mb); err != nil {
			return err
		}

		// Close the writer explicitly to flush all the bytes
		if err = gz.Close(); err != nil {
			return err
		}

		sf[name].Compressed = buf.Bytes()
		return nil
	}

	// Walk the directory and process each file
	if err := fs.WalkDir(web.Files, dir, walkDirFunc); err != nil {
		log.Fatalf("couldn't parse the static files; %v", err)
	}

	return sf
}
