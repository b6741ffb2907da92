package ui

import (
	"bytes"
	"html/template"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/vlatan/repo-sitemap/web"
	"github.com/yuin/goldmark"
)

// Page gets a rendered markdown page by its file name without extension
func (s *service) Page(name string) (template.HTML, bool) {
	page, ok := s.pages[name]
	return page, ok
}

// Convert the markdown pages to HTML once
func parsePages(md goldmark.Markdown, dir string) map[string]template.HTML {

	pages := make(map[string]template.HTML)

	walkDirFunc := func(path string, info fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}

		b, err := fs.ReadFile(web.Files, path)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err = md.Convert(b, &buf); err != nil {
			return err
		}

		name := strings.TrimSuffix(filepath.Base(path), ".md")
		pages[name] = template.HTML(buf.String()) // #nosec G203
		return nil
	}

	if err := fs.WalkDir(web.Files, dir, walkDirFunc); err != nil {
		log.Fatalf("couldn't parse the markdown pages; %v", err)
	}

	return pages
}
