package models

import "net/http"

type contextKey struct {
	name string
}

// Universal context key to get the page data from context
var DataContextKey = contextKey{name: "data"}

// GetDataFromContext gets the template data from context
func GetDataFromContext(r *http.Request) *TemplateData {
	data, _ := r.Context().Value(DataContextKey).(*TemplateData)
	return data // nil if data not in context
}
