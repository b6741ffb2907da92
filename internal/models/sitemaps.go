package models

import "encoding/xml"

// Namespace of the sitemap protocol
const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapItem is one row of the sitemap table
type SitemapItem struct {
	Location     string `json:"loc"`
	LastModified string `json:"lastmod,omitempty"`
}

// URLSet is the root <urlset> element of a sitemap
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL is a <url> entry in <urlset>
type URL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}
