package ui

import (
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"path/filepath"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"github.com/tdewolff/minify"
	"github.com/vlatan/repo-sitemap/internal/models"
	"github.com/vlatan/repo-sitemap/internal/utils"
	"github.com/vlatan/repo-sitemap/web"
)

// These are files/dirs within the embedded filesystem 'web'
const base = "templates/base.html"
const partials = "templates/partials"

// Functions available in every template, on top of sprig's
func funcMap() template.FuncMap {
	fm := sprig.HtmlFuncMap()
	fm["plural"] = utils.Plural
	fm["active"] = func(current, path string) string {
		if current == path {
			return "active"
		}
		return ""
	}
	return fm
}

// Parse the templates and create a template map
func parseTemplates(m *minify.M) models.TemplateMap {

	templateMap := make(models.TemplateMap)
	baseTemplate := template.Must(parseTemplateFiles(m, nil, base))

	// Function used to process each file/dir in the root, including the root
	walkDirFunc := func(path string, info fs.DirEntry, err error) error {

		// Returning back the error will cause WalkDir to stop walking the entire tree.
		if err != nil {
			return err
		}

		// Skip directories
		if info.IsDir() {
			return nil
		}

		baseTmpl, err := baseTemplate.Clone()
		if err != nil {
			log.Fatalf("couldn't clone the base '%s' template", base)
		}

		name := filepath.Base(path)
		templateMap[name] = template.Must(parseTemplateFiles(m, baseTmpl, path))
		return nil
	}

	// Walk the directory and parse each template in partials
	if err := fs.WalkDir(web.Files, partials, walkDirFunc); err != nil {
		log.Fatal(err)
	}

	return templateMap
}

// Minify and parse the HTML templates as per the tdewolff/minify docs.
func parseTemplateFiles(m *minify.M, tmpl *template.Template, filepaths ...string) (*template.Template, error) {

	for _, fp := range filepaths {

		b, err := fs.ReadFile(web.Files, fp)
		if err != nil {
			return nil, err
		}

		name := filepath.Base(fp)
		if tmpl == nil {
			tmpl = template.New(name).Funcs(funcMap())
		} else {
			tmpl = tmpl.New(name)
		}

		if ext := strings.TrimPrefix(filepath.Ext(name), "."); ext != "html" {
			return nil, fmt.Errorf("unknown media type: %s", fp)
		}

		mb, err := m.Bytes("text/html", b)
		if err != nil {
			return nil, err
		}

		tmpl, err = tmpl.Parse(string(mb))
		if err != nil {
			return nil, err
		}
	}

	return tmpl, nil
}
