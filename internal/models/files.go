package models

import (
	"html/template"
	"time"
)

type FileInfo struct {
	Bytes      []byte
	Compressed []byte
	MediaType  string
	Etag       string
	ModTime    time.Time
}

// Static files keyed by their URL path
type StaticFiles map[string]*FileInfo

// Parsed templates keyed by their file name
type TemplateMap map[string]*template.Template
