package ui

import (
	"html/template"
	"io"
	"net/http"
	"regexp"

	"github.com/gorilla/sessions"
	"github.com/tdewolff/minify"
	"github.com/tdewolff/minify/css"
	"github.com/tdewolff/minify/html"
	"github.com/tdewolff/minify/js"
	"github.com/vlatan/repo-sitemap/internal/config"
	"github.com/vlatan/repo-sitemap/internal/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type Service interface {
	// Store flash message in a session
	StoreFlashMessage(w http.ResponseWriter, r *http.Request, m *models.FlashMessage)
	// Get the map containing the static files
	StaticFiles() models.StaticFiles
	// Get a rendered markdown page by name
	Page(name string) (template.HTML, bool)
	// Create new template data
	NewData(w http.ResponseWriter, r *http.Request) *models.TemplateData
	// Write JSON to response
	WriteJSON(w http.ResponseWriter, r *http.Request, statusCode int, data any)
	// Write HTML template to response
	RenderHTML(w http.ResponseWriter, r *http.Request, templateName string, data *models.TemplateData)
	// Write JSON error to response
	JSONError(w http.ResponseWriter, r *http.Request, statusCode int)
	// Write HTML error page to response
	HTMLError(w http.ResponseWriter, r *http.Request, statusCode int, data *models.TemplateData)
	// ExecuteErrorTemplate executes error.html template
	ExecuteErrorTemplate(w io.Writer, status int, data *models.TemplateData) error
}

type service struct {
	templates   models.TemplateMap
	staticFiles models.StaticFiles
	pages       map[string]template.HTML
	store       sessions.Store
	config      *config.Config
}

var validJS = regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$")

// New minifies and parses the embedded templates, static files and pages.
// Terminates the process if any of them is broken.
func New(store sessions.Store, config *config.Config) Service {

	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFuncRegexp(validJS, js.Minify)

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	return &service{
		templates:   parseTemplates(m),
		staticFiles: parseStaticFiles(m, "static"),
		pages:       parsePages(md, "pages"),
		store:       store,
		config:      config,
	}
}
