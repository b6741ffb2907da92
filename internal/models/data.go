package models

import (
	"html/template"
	"time"
)

// Flash message object to store to session for the next page
type FlashMessage struct {
	Message  string
	Category string
}

// Specific data for the error pages
type HTMLErrorData struct {
	Title   string
	Heading string
	Text    string
}

// Data struct to pass to templates
type TemplateData struct {
	StaticFiles   StaticFiles
	AppName       string
	Title         string
	CurrentURI    string
	RepoURL       string
	ErrorMessage  string
	Report        *Report
	Content       template.HTML
	FlashMessages []*FlashMessage
	HTMLErrorData *HTMLErrorData
	CSRFField     template.HTML
}

// Add version query string to file
func (td *TemplateData) AddVersion(path string) string {
	if fi, ok := td.StaticFiles[path]; ok {
		return path + "?v=" + fi.Etag
	}
	return path
}

// Get time now
func (td *TemplateData) Now() time.Time {
	return time.Now()
}

// Error served to JSON clients
type JSONErrorData struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
